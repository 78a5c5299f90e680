// Package health provides net/http handlers for service health monitoring.
//
// Handlers:
//   - Liveness: process is running (no dependency checks)
//   - Readiness: all dependency checks pass
//   - NoContent: returns 204 for minimal overhead
//
// Usage:
//
//	mux.Handle("GET /health/live", health.Liveness())
//	mux.Handle("GET /health/ready", health.Readiness(log, checkBackends))
//	mux.Handle("GET /ping", health.NoContent())
//
// Checks follow the func(context.Context) error signature.
package health
