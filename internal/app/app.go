package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/healdata/dd-annotator/internal/adapter/httpretry"
	"github.com/healdata/dd-annotator/internal/config"
)

// Env is what every command needs before it can do work.
type Env struct {
	Config *config.Config
	Logger *slog.Logger
	HTTP   *httpretry.Client
}

// Setup loads an optional .env file, reads and validates the configuration,
// installs the logger and builds the shared retrying HTTP client.
func Setup(command string, dotenvPath string) (*Env, error) {
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", dotenvPath, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := NewLogger(cfg.Log).With(slog.String("command", command))
	logger.Info("starting",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	client := httpretry.New(httpretry.Config{
		Timeout:     cfg.HTTP.Timeout,
		MaxAttempts: cfg.HTTP.MaxAttempts,
		BackoffBase: cfg.HTTP.BackoffBase,
	}, logger)

	return &Env{Config: cfg, Logger: logger, HTTP: client}, nil
}
