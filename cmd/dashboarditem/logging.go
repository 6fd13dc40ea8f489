package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// setupLogging installs the default logger: text on stderr, plus JSON to
// cfg.LogFile when set. The returned func closes the log file.
func setupLogging(cfg *Config, stderr io.Writer) (*slog.Logger, func() error, error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.Debug || os.Getenv("DEBUG") != "" {
		opts.Level = slog.LevelDebug
	}

	closer := func() error { return nil }
	handler := slog.Handler(slog.NewTextHandler(stderr, opts))

	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: open %s: %w", cfg.LogFile, err)
		}
		handler = slogmulti.Fanout(handler, slog.NewJSONHandler(file, opts))
		closer = file.Close
	}

	logger := slog.New(handler).With(slog.String("service", "dashboarditem"))
	slog.SetDefault(logger)
	return logger, closer, nil
}
