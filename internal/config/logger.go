package config

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/simp-lee/logger"
	gormlogger "gorm.io/gorm/logger"
)

// defaultSlowQuery is the threshold above which a statement is logged as slow
// when database.slow_query is unset.
const defaultSlowQuery = 200 * time.Millisecond

// SetupLogger creates a *logger.Logger based on the provided LogConfig,
// sets it as the global default via slog.SetDefault, and returns it.
// The caller is responsible for calling Close() on the returned logger.
func SetupLogger(cfg *LogConfig) (*logger.Logger, error) {
	if cfg == nil {
		return nil, errors.New("log config is nil")
	}

	log, err := logger.New(BuildLoggerOpts(cfg)...)
	if err != nil {
		return nil, err
	}

	log.SetDefault()
	return log, nil
}

// BuildLoggerOpts translates cfg into logger options. It returns nil for a nil
// config. Invalid level values default to "info"; invalid format values fall
// back to "custom". File rotation options are only emitted when set.
func BuildLoggerOpts(cfg *LogConfig) []logger.Option {
	if cfg == nil {
		return nil
	}

	format := parseFormat(cfg.Format)

	colorEnabled := true
	if cfg.Color != nil {
		colorEnabled = *cfg.Color
	}

	// ContextMiddleware lifts request_id and primary_key out of the request
	// context onto every record.
	opts := []logger.Option{
		logger.WithLevel(parseLevel(cfg.Level)),
		logger.WithMiddleware(logger.ContextMiddleware()),
		logger.WithConsoleFormat(format),
		logger.WithConsoleColor(colorEnabled),
	}

	if cfg.FilePath == "" {
		return opts
	}

	opts = append(opts,
		logger.WithFilePath(cfg.FilePath),
		logger.WithFileFormat(format),
	)
	if cfg.MaxSizeMB > 0 {
		opts = append(opts, logger.WithMaxSizeMB(cfg.MaxSizeMB))
	}
	if cfg.RetentionDays > 0 {
		opts = append(opts, logger.WithRetentionDays(cfg.RetentionDays))
	}
	if cfg.MaxBackups > 0 {
		opts = append(opts, logger.WithMaxBackups(cfg.MaxBackups))
	}
	if cfg.CompressRotated != nil {
		opts = append(opts, logger.WithCompressRotated(*cfg.CompressRotated))
	}
	return opts
}

// newGormLogger routes GORM's statement log through the application logger so
// SQL lines carry the same request context attributes as the access log.
// A debug-enabled logger records every statement; otherwise only slow
// statements and errors. Missing rows are routine lookups and are not errors.
func newGormLogger(log *slog.Logger, slowQuery string) gormlogger.Interface {
	level := gormlogger.Warn
	if log.Enabled(context.Background(), slog.LevelDebug) {
		level = gormlogger.Info
	}

	threshold := defaultSlowQuery
	if d, err := time.ParseDuration(slowQuery); err == nil && d > 0 {
		threshold = d
	}

	return gormlogger.NewSlogLogger(log, gormlogger.Config{
		SlowThreshold:             threshold,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      true,
		LogLevel:                  level,
	})
}

func parseFormat(s string) logger.OutputFormat {
	switch strings.ToLower(s) {
	case "text":
		return logger.FormatText
	case "json":
		return logger.FormatJSON
	default:
		return logger.FormatCustom
	}
}

// parseLevel resolves a level name with slog's own parser, so offsets such as
// "debug+2" work too. Unrecognized values yield slog.LevelInfo.
func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
