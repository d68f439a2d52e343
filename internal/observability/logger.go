package observability

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/weather-lookup-service/internal/config"
)

// NewLogger builds the service logger on stdout and installs it as the slog default.
func NewLogger(cfg *config.Config) *slog.Logger {
	return sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
}

// NewStderrLogger builds a logger on stderr, leaving stdout free for
// command output.
func NewStderrLogger(cfg *config.Config) *slog.Logger {
	return newLogger(os.Stderr, cfg.LogFormat, cfg.LogLevel)
}

func newLogger(w io.Writer, format, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// PrintfLogger adapts a slog.Logger to printf-style client loggers such as
// resty.Logger.
type PrintfLogger struct {
	Logger *slog.Logger
}

func (l PrintfLogger) Errorf(format string, v ...any) {
	l.Logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l PrintfLogger) Warnf(format string, v ...any) {
	l.Logger.Warn(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l PrintfLogger) Debugf(format string, v ...any) {
	l.Logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
