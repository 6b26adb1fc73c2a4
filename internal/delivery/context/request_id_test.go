package context

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEchoContext(t *testing.T) echo.Context {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestRequestID_RoundTripThroughEchoStore(t *testing.T) {
	c := newEchoContext(t)

	SetRequestID(c, "req-123")

	assert.Equal(t, "req-123", GetRequestID(c))
}

func TestRequestID_MintedWhenMiddlewareDidNotRun(t *testing.T) {
	c := newEchoContext(t)

	id := GetRequestID(c)

	_, err := uuid.Parse(id)
	require.NoError(t, err)
}

func TestGetLoggerOrDefault(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	scoped := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))

	ctx := WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, GetLoggerOrDefault(ctx, fallback))
}
