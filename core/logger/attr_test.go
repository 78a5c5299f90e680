package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rendercookie/core/logger"
)

func TestGroup(t *testing.T) {
	t.Parallel()
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

// ============================================================================
// Error Handling Tests
// ============================================================================

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

// ============================================================================
// Cookie Tests
// ============================================================================

func TestCookieName(t *testing.T) {
	t.Parallel()
	attr := logger.CookieName("theme")
	require.Equal(t, "cookie", attr.Key)
	assert.Equal(t, "theme", attr.Value.String())
}

func TestBackend(t *testing.T) {
	t.Parallel()
	attr := logger.Backend("live")
	require.Equal(t, "backend", attr.Key)
	assert.Equal(t, "live", attr.Value.String())
}

func TestConnID(t *testing.T) {
	t.Parallel()
	attr := logger.ConnID("abc")
	require.Equal(t, "conn_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())

	assert.True(t, logger.ConnID("").Equal(slog.Attr{}))
}

// ============================================================================
// Network and HTTP Tests
// ============================================================================

func TestMethod(t *testing.T) {
	t.Parallel()
	attr := logger.Method("GET")
	require.Equal(t, "method", attr.Key)
	assert.Equal(t, "GET", attr.Value.String())
}

func TestPath(t *testing.T) {
	t.Parallel()
	attr := logger.Path("/api/users")
	require.Equal(t, "path", attr.Key)
	assert.Equal(t, "/api/users", attr.Value.String())
}

func TestStatusCode(t *testing.T) {
	t.Parallel()
	attr := logger.StatusCode(404)
	require.Equal(t, "status_code", attr.Key)
	assert.Equal(t, int64(404), attr.Value.Int64())
}

func TestRequestID(t *testing.T) {
	t.Parallel()
	attr := logger.RequestID("req-1")
	require.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "req-1", attr.Value.String())

	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
}

func TestDuration(t *testing.T) {
	t.Parallel()
	d := 5 * time.Second
	attr := logger.Duration(d)
	require.Equal(t, "duration", attr.Key)
	assert.Equal(t, d, attr.Value.Duration())
}

// ============================================================================
// Generic Metadata Tests
// ============================================================================

func TestComponent(t *testing.T) {
	t.Parallel()
	attr := logger.Component("prerender")
	require.Equal(t, "component", attr.Key)
	assert.Equal(t, "prerender", attr.Value.String())
}

func TestCount(t *testing.T) {
	t.Parallel()
	attr := logger.Count("pending", 3)
	require.Equal(t, "pending", attr.Key)
	assert.Equal(t, int64(3), attr.Value.Int64())
}

// ============================================================================
// Factory Tests
// ============================================================================

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output with attrs", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(
			logger.WithJSONFormatter(),
			logger.WithOutput(&buf),
			logger.WithAttr(slog.String("service", "test")),
		)
		log.Info("hello", logger.CookieName("a"))

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "hello", record["msg"])
		assert.Equal(t, "test", record["service"])
		assert.Equal(t, "a", record["cookie"])
	})

	t.Run("level filters records", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))
		log.Info("dropped")
		assert.Empty(t, buf.String())
		log.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("development enables debug", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithDevelopment("svc"), logger.WithOutput(&buf))
		log.Debug("debug line")
		assert.Contains(t, buf.String(), "debug line")
		assert.Contains(t, buf.String(), "env=development")
	})

	t.Run("discard", func(t *testing.T) {
		log := logger.Discard()
		require.NotNil(t, log)
		assert.NotPanics(t, func() { log.Error("nothing", logger.Error(errors.New("x"))) })
	})
}
