package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/rendercookie/core/logger"
)

// Check reports whether a dependency is usable.
type Check func(context.Context) error

// Readiness runs every check in order. It returns "READY" if all pass and
// 503 Service Unavailable on the first failure.
func Readiness(log *slog.Logger, checks ...Check) http.Handler {
	if log == nil {
		log = logger.Discard()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
				writeText(w, http.StatusServiceUnavailable, "NOT READY")
				return
			}
		}
		writeText(w, http.StatusOK, "READY")
	})
}
