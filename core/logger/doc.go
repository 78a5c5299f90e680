// Package logger provides structured logging utilities built on Go's standard slog package.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithDevelopment("cookiectl"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Debug("staged cookie write",
//		logger.CookieName("theme"),
//		logger.Backend("request"),
//	)
//
// # Environment Configurations
//
//	// Development: text format, debug level, stdout
//	devLogger := logger.New(logger.WithDevelopment("myapp"))
//
//	// Production: JSON format, info level, stdout
//	prodLogger := logger.New(logger.WithProduction("myapp"))
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for nil or empty input, which slog drops,
// so they can be passed unconditionally:
//
//	log.Error("cookie write failed", logger.Error(err), logger.ConnID(id))
//
// Library packages default to Discard so nothing is printed unless a logger is
// injected.
package logger
