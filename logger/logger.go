package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

const defaultApp = "chat-dice"

var once sync.Once

var logger *zap.Logger

// Init builds the process logger for app at the given level. Only the first
// call to Init or Get has any effect; later calls return the same logger.
func Init(app, level string) *zap.Logger {
	once.Do(func() {
		stdout := zapcore.AddSync(os.Stdout)

		serviceLevel := zap.InfoLevel
		if level != "" {
			parsed, err := zapcore.ParseLevel(level)
			if err != nil {
				log.Println(
					fmt.Errorf("invalid log level, defaulting to INFO: %w", err),
				)
				parsed = zap.InfoLevel
			}
			serviceLevel = parsed
		}

		atomicLevel := zap.NewAtomicLevelAt(serviceLevel)
		developmentCfg := zap.NewDevelopmentEncoderConfig()
		developmentCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleEncoder := zapcore.NewConsoleEncoder(developmentCfg)

		core := zapcore.NewTee(
			zapcore.NewCore(consoleEncoder, stdout, atomicLevel),
		)

		logger = zap.New(core).With(zap.String("app", app))
	})

	return logger
}

// Get returns the process logger, initializing it from LOG_LEVEL if Init
// has not been called.
func Get() *zap.Logger {
	return Init(defaultApp, os.Getenv("LOG_LEVEL"))
}

// FromCtx returns the Logger associated with the ctx. If no logger
// is associated, the default logger is returned, unless it is nil
// in which case a disabled logger is returned.
func FromCtx(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	} else if l := logger; l != nil {
		return l
	}

	return zap.NewNop()
}

// WithCtx returns a copy of ctx with the Logger attached.
func WithCtx(ctx context.Context, l *zap.Logger) context.Context {
	if lp, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		if lp == l {
			// Do not store same logger.
			return ctx
		}
	}

	return context.WithValue(ctx, ctxKey{}, l)
}
