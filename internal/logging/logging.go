// internal/logging/logging.go
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/obrien-tchaleu/crossludo/internal/config"
)

// New construit le journal décrit par la configuration.
// La fonction close retournée libère le fichier de sortie éventuel.
func New(cfg config.Logging) (*log.Logger, func() error, error) {
	logger := log.New()

	level := cfg.Level
	if level == "" {
		level = "info"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	logger.SetLevel(lvl)

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		return nil, nil, fmt.Errorf("%w: unknown log format %q", config.ErrInvalidConfig, cfg.Format)
	}

	if cfg.File == "" {
		return logger, func() error { return nil }, nil
	}

	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(file)

	return logger, func() error {
		logger.SetOutput(io.Discard)
		return file.Close()
	}, nil
}

// Discard retourne un journal muet
func Discard() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}
