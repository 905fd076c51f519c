package handlers

import (
	"crypto/tls"
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/spec-kit/signup-flow/internal/config"
	apperrors "github.com/spec-kit/signup-flow/pkg/util/errorutil"
)

// ProxyHandler forwards API calls from the front end to the backend, keeping the path.
type ProxyHandler struct {
	target       *url.URL
	prefix       string
	changeOrigin bool
	client       *fasthttp.Client
	logger       *zap.Logger
}

// NewProxyHandler validates the target and builds the upstream client.
// Secure=false skips TLS certificate verification for https targets.
func NewProxyHandler(cfg config.ProxyConfig, logger *zap.Logger) (*ProxyHandler, error) {
	target, err := url.Parse(strings.TrimRight(cfg.Target, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse proxy target: %w", err)
	}
	if target.Scheme != "http" && target.Scheme != "https" {
		return nil, fmt.Errorf("proxy target %q must be http or https", cfg.Target)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ProxyHandler{
		target:       target,
		prefix:       cfg.Prefix,
		changeOrigin: cfg.ChangeOrigin,
		client: &fasthttp.Client{
			TLSConfig: &tls.Config{
				InsecureSkipVerify: !cfg.Secure, //nolint:gosec
				MinVersion:         tls.VersionTLS12,
			},
			NoDefaultUserAgentHeader: true,
			DisablePathNormalizing:   true,
		},
		logger: logger,
	}, nil
}

// Prefix returns the route prefix served by the proxy.
func (h *ProxyHandler) Prefix() string {
	return h.prefix
}


// Forward handles every method under the prefix.
func (h *ProxyHandler) Forward(c *fiber.Ctx) error {
	addr := h.target.String() + c.OriginalURL()

	req := c.Request()
	req.Header.Set(fiber.HeaderXForwardedProto, c.Protocol())
	if !h.changeOrigin {
		req.Header.Set(fiber.HeaderXForwardedHost, c.Hostname())
		req.UseHostHeader = true
	}

	if err := proxy.Do(c, addr, h.client); err != nil {
		h.logger.Warn("proxy upstream failed", zap.String("upstream", addr), zap.Error(err))
		return apperrors.NewUpstreamUnavailable(h.target.String(), err)
	}
	c.Response().Header.Del(fiber.HeaderServer)
	return nil
}
