package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rafabene/carteira-backend/internal/domain/ports"
)

// Campos padronizados dos logs
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDurationMs = "duration_ms"
	FieldUserID     = "user_id"
	FieldError      = "error"
)

// SlogLogger implementa ports.Logger usando slog do stdlib
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger cria um novo logger JSON em stdout
func NewSlogLogger(level string) ports.Logger {
	return NewSlogLoggerWithWriter(os.Stdout, level)
}

// NewSlogLoggerWithWriter permite direcionar a saída (usado em testes)
func NewSlogLoggerWithWriter(w io.Writer, level string) ports.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	handler := slog.NewJSONHandler(w, opts)
	return &SlogLogger{logger: slog.New(handler)}
}

// ParseLevel converte o nome do nível; valores desconhecidos viram info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// Component retorna um logger marcado com o nome do componente
func Component(l ports.Logger, name string) ports.Logger {
	return l.With(FieldComponent, name)
}

func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *SlogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *SlogLogger) With(args ...any) ports.Logger {
	return &SlogLogger{
		logger: l.logger.With(args...),
	}
}

// NopLogger descarta todas as mensagens
type NopLogger struct{}

func NewNopLogger() ports.Logger {
	return NopLogger{}
}

func (NopLogger) Info(string, ...any)        {}
func (NopLogger) Error(string, ...any)       {}
func (NopLogger) Debug(string, ...any)       {}
func (NopLogger) Warn(string, ...any)        {}
func (n NopLogger) With(...any) ports.Logger { return n }
