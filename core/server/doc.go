// Package server wraps http.Server with graceful shutdown and environment based
// configuration for the demo and tooling binaries.
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	return srv.Run(ctx, handler) // blocks until ctx is done, then drains
//
// No write timeout is applied so long-lived responses and live cookie
// connections are not cut off.
package server
