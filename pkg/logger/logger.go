package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.RWMutex
	log = zap.NewNop().Sugar()
)

// Init builds the process logger. "production" gets JSON output, anything else
// the development console encoder with debug level enabled.
func Init(environment string) {
	var (
		base *zap.Logger
		err  error
	)

	if environment == "production" {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		base, err = cfg.Build(zap.AddCallerSkip(1))
	} else {
		base, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	}
	if err != nil {
		base = zap.New(zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(os.Stderr),
			zap.DebugLevel,
		))
	}

	Set(base)
}

// Set swaps the underlying logger, mostly useful for tests.
func Set(l *zap.Logger) {
	mu.Lock()
	log = l.Sugar()
	mu.Unlock()
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Sync flushes buffered entries.
func Sync() {
	_ = current().Sync()
}

func Debug(msg string, args ...any) {
	current().Debugw(msg, fields(args)...)
}

func Info(msg string, args ...any) {
	current().Infow(msg, fields(args)...)
}

func Warn(msg string, args ...any) {
	current().Warnw(msg, fields(args)...)
}

func Error(msg string, args ...any) {
	current().Errorw(msg, fields(args)...)
}

func Fatal(msg string, args ...any) {
	current().Fatalw(msg, fields(args)...)
}

// fields turns the loose argument style used across the services into zap
// key/value pairs: a bare error becomes "error", a dangling value becomes "detail".
func fields(args []any) []any {
	out := make([]any, 0, len(args)+1)
	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case error:
			out = append(out, zap.Error(v))
		case zap.Field:
			out = append(out, v)
		case string:
			if i+1 < len(args) {
				out = append(out, v, args[i+1])
				i++
			} else {
				out = append(out, "detail", v)
			}
		default:
			out = append(out, "detail", v)
		}
	}
	return out
}
