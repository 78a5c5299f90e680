package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/rendercookie/core/config"
	"github.com/dmitrymomot/rendercookie/core/logger"
)

// appConfig holds the process wide settings.
type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

var (
	app          appConfig
	log          = logger.Discard()
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:           "cookiectl",
	Short:         "cookiectl inspects and serves hybrid rendered cookies",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := config.Load(&app); err != nil {
			return err
		}
		var err error
		log, err = newLogger(app)
		return err
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func newLogger(cfg appConfig) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}

	env := logger.WithProduction("cookiectl")
	if cfg.Env == "development" {
		env = logger.WithDevelopment("cookiectl")
	}
	return logger.New(env, logger.WithLevel(level)), nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "json", "output format (json|yaml)")
}
