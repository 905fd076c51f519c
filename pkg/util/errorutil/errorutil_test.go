package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	upstream := NewUpstreamUnavailable("http://localhost:3000", errors.New("connection refused"))
	de := ToDomainError(fmt.Errorf("proxy: %w", upstream))
	require.NotNil(t, de)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", de.Code)
	assert.Equal(t, http.StatusBadGateway, de.HTTPStatus)
	assert.Equal(t, "http://localhost:3000", de.Details["target"])
	assert.Contains(t, de.Error(), "connection refused")

	de = ToDomainError(fiber.NewError(http.StatusNotFound, "Cannot GET /nope"))
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)

	de = ToDomainError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.Equal(t, "internal server error", de.Message)
}
