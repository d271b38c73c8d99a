package utilities

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/tablestaff/tablestaff/internal"
)

type Level int

const (
	Error Level = 1
	Info  Level = 2
	Debug Level = 3
	Trace Level = 4
)

func (l Level) String() string {
	switch l {
	default:
		return ""
	case Error:
		return "error"
	case Info:
		return "info"
	case Debug:
		return "debug"
	case Trace:
		return "trace"
	}
}

func atoLogLevel(a string) Level {
	switch strings.ToLower(a) {
	default:
		return Error
	case "info":
		return Info
	case "debug":
		return Debug
	case "trace":
		return Trace
	}
}

type Logger interface {
	Error(ctx context.Context, format string, v ...any)
	Info(ctx context.Context, format string, v ...any)
	Debug(ctx context.Context, format string, v ...any)
	Trace(ctx context.Context, format string, v ...any)
}

type logger struct {
	*log.Logger
	config struct {
		Level Level
	}
}

func NewLogger() interface {
	internal.Configurer
	Logger
} {
	return &logger{
		Logger: log.New(os.Stdout, "", log.Ltime|log.Ldate|log.Lmsgprefix),
	}
}

func (l *logger) Configure(envs map[string]string) error {
	l.config.Level = Error
	if logLevel, ok := envs["LOG_LEVEL"]; ok {
		l.config.Level = atoLogLevel(logLevel)
	}
	return nil
}

func (l *logger) printf(level Level, ctx context.Context, format string, v ...any) {
	if l.config.Level < level {
		return
	}
	prefix := fmt.Sprintf("[%s] ", level)
	if correlationId := internal.CorrelationIdFromCtx(ctx); correlationId != "" {
		prefix = fmt.Sprintf("[%s] (%s) ", level, correlationId)
	}
	l.Printf(prefix+format, v...)
}

func (l *logger) Error(ctx context.Context, format string, v ...any) {
	l.printf(Error, ctx, format, v...)
}

func (l *logger) Info(ctx context.Context, format string, v ...any) {
	l.printf(Info, ctx, format, v...)
}

func (l *logger) Debug(ctx context.Context, format string, v ...any) {
	l.printf(Debug, ctx, format, v...)
}

func (l *logger) Trace(ctx context.Context, format string, v ...any) {
	l.printf(Trace, ctx, format, v...)
}
