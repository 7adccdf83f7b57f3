package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/adamkadda/bank-demo/internal/config"
	"github.com/google/uuid"
)

func Setup(cfg config.LogConfig) error {
	handler, err := newHandler(os.Stdout, cfg)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

func newHandler(out io.Writer, cfg config.LogConfig) (slog.Handler, error) {
	var level slog.Level

	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid LogConfig.Level value: %s", cfg.Level)
	}

	options := &slog.HandlerOptions{
		Level: level,
	}

	switch strings.ToLower(cfg.Style) {
	case "text":
		return slog.NewTextHandler(out, options), nil
	case "json":
		return slog.NewJSONHandler(out, options), nil
	default:
		return nil, fmt.Errorf("invalid LogConfig.Style value: %s", cfg.Style)
	}
}

type loggerContextKey struct{}

var loggerKey = loggerContextKey{}

func GetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerKey).(*slog.Logger)
	if !ok {
		panic("could not find logger in context")
	}

	return logger
}

func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			logger := slog.Default().With(
				slog.Group("request",
					slog.String("id", uuid.NewString()),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("origin", r.Header.Get("Origin")),
				),
			)

			ctx := context.WithValue(r.Context(), loggerKey, logger)
			r = r.WithContext(ctx)

			logger.Debug("Request started")

			lw := &loggingWriter{
				ResponseWriter: w,
				request:        r,
			}

			next.ServeHTTP(lw, r)

			logger.Info("Request completed",
				slog.Group("response",
					slog.Int("status", lw.status()),
					slog.Int("size", lw.size),
				),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
