package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/rendercookie/core/health"
)

func serve(h http.Handler) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	return rec
}

func TestLiveness(t *testing.T) {
	t.Parallel()
	rec := serve(health.Liveness())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestNoContent(t *testing.T) {
	t.Parallel()
	rec := serve(health.NoContent())
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("backend down") }

	t.Run("no checks", func(t *testing.T) {
		rec := serve(health.Readiness(nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "READY", rec.Body.String())
	})

	t.Run("all pass", func(t *testing.T) {
		rec := serve(health.Readiness(nil, ok, ok))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("stops at first failure", func(t *testing.T) {
		called := false
		after := func(context.Context) error { called = true; return nil }

		rec := serve(health.Readiness(nil, ok, fail, after))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "NOT READY", rec.Body.String())
		assert.False(t, called)
	})
}
