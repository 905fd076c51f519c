package handlers

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/signup-flow/internal/config"
	apperrors "github.com/spec-kit/signup-flow/pkg/util/errorutil"
)

// StaticHandler serves the built front end and falls back to index.html for client-side routes.
type StaticHandler struct {
	dir   string
	mount string
}

// NewStaticHandler constructs handler.
func NewStaticHandler(cfg config.StaticConfig) *StaticHandler {
	return &StaticHandler{dir: cfg.Dir, mount: cfg.MountPath()}
}

// Register mounts the asset routes. It must run after every API route.
func (h *StaticHandler) Register(app *fiber.App) {
	app.Static(h.mount, h.dir, fiber.Static{Index: "index.html"})

	pattern := h.mount + "/*"
	if h.mount == "/" {
		pattern = "/*"
	}
	app.Get(pattern, h.Fallback)
}

// Fallback serves index.html for GET requests no asset matched.
func (h *StaticHandler) Fallback(c *fiber.Ctx) error {
	index := filepath.Join(h.dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperrors.NewNotFound("page")
		}
		return apperrors.NewInternalError(err)
	}
	return c.SendFile(index)
}
