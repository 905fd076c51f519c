package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/signup-flow/internal/api/dto"
	"github.com/spec-kit/signup-flow/internal/domain"
)

// RegisterPath is appended to the endpoint base to reach the registration endpoint.
const RegisterPath = "/api/auth/register"

const (
	MsgRegistrationFailed = "Registration failed."
	MsgNoToken            = "No token received from server."
)

const maxBodyBytes = 1 << 20

// HTTPDoer performs a single HTTP exchange. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RegistrationClient performs one registration exchange and classifies the response.
type RegistrationClient struct {
	http   HTTPDoer
	logger *zap.Logger
}

// NewRegistrationClient builds a client. A nil doer uses an http.Client without timeout.
func NewRegistrationClient(doer HTTPDoer, logger *zap.Logger) *RegistrationClient {
	if doer == nil {
		doer = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationClient{http: doer, logger: logger}
}

// Submit posts the input to endpointBase+RegisterPath exactly once. Every exit
// path yields an outcome; password equality is not re-checked here.
func (c *RegistrationClient) Submit(ctx context.Context, input domain.RegistrationInput, endpointBase string) domain.Outcome {
	target := strings.TrimRight(endpointBase, "/") + RegisterPath

	payload, err := json.Marshal(dto.RegisterRequest{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
	})
	if err != nil {
		return domain.NetworkUnreachable(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		c.logger.Warn("build registration request", zap.String("url", target), zap.Error(err))
		return domain.NetworkUnreachable(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("registration endpoint unreachable", zap.String("url", target), zap.Error(err))
		return domain.NetworkUnreachable(err)
	}
	defer resp.Body.Close()

	return c.classify(resp)
}

func (c *RegistrationClient) classify(resp *http.Response) domain.Outcome {
	if !isJSON(resp.Header.Get("Content-Type")) {
		c.logger.Warn("registration response is not JSON",
			zap.Int("status", resp.StatusCode),
			zap.String("content_type", resp.Header.Get("Content-Type")))
		return domain.MalformedResponse(resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.logger.Warn("read registration response", zap.Int("status", resp.StatusCode), zap.Error(err))
		return domain.MalformedResponse(resp.StatusCode)
	}

	body, err := decodeRegisterResponse(raw)
	if err != nil {
		c.logger.Warn("decode registration response", zap.Int("status", resp.StatusCode), zap.Error(err))
		return domain.MalformedResponse(resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if body.Message != "" {
			return domain.ServerRejected(body.Message)
		}
		return domain.ServerRejected(MsgRegistrationFailed)
	}

	if body.Token == "" {
		return domain.ServerRejected(MsgNoToken)
	}
	return domain.Success(body.Token, body.UserID)
}

// isJSON accepts application/json and structured +json media types.
func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(strings.ToLower(contentType), "application/json")
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// decodeRegisterResponse requires the body to be exactly one JSON value. Values
// that are not objects, and fields of unexpected types, read as absent.
func decodeRegisterResponse(raw []byte) (dto.RegisterResponse, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return dto.RegisterResponse{}, errors.New("empty body")
		}
		return dto.RegisterResponse{}, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return dto.RegisterResponse{}, errors.New("trailing data after JSON value")
	}

	obj, _ := v.(map[string]any)
	return dto.RegisterResponse{
		Token:   stringField(obj, "token"),
		UserID:  stringField(obj, "userId"),
		Message: stringField(obj, "message"),
	}, nil
}

func stringField(obj map[string]any, key string) string {
	switch val := obj[key].(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		return ""
	}
}
