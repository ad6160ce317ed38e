// Package ctxlog provides context-aware structured logging utilities.
package ctxlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type Config struct {
	// Dir receives one log file per process start. Empty means stderr only.
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

var (
	setupOnce sync.Once
	setupLog  *slog.Logger
)

// Setup installs the process logger as slog's default and stores it in ctx.
// Only the first call configures anything; later calls reuse that logger.
func Setup(ctx context.Context, name string, config Config) context.Context {
	setupOnce.Do(func() {
		setupLog = newLogger(name, config)
		slog.SetDefault(setupLog)
	})
	return Store(ctx, setupLog)
}

func newLogger(name string, config Config) *slog.Logger {
	var level slog.Level
	if config.Level != "" {
		err := level.UnmarshalText([]byte(config.Level))
		if err != nil {
			panic(fmt.Errorf("ctxlog: parse level: %w", err))
		}
	}

	var w io.Writer = os.Stderr
	if config.Dir != "" {
		err := os.MkdirAll(config.Dir, 0755)
		if err != nil {
			panic(fmt.Errorf("ctxlog: create log dir: %w", err))
		}

		logFile, err := os.Create(filepath.Join(config.Dir, name+"-"+time.Now().Format("2006-01-02-15-04-05.log")))
		if err != nil {
			panic(fmt.Errorf("ctxlog: create log file: %w", err))
		}

		w = io.MultiWriter(os.Stderr, logFile)
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})).With("app", name)
}

type ctxKey struct{}

var key ctxKey

func Store(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, key, log)
}

func Get(ctx context.Context) *slog.Logger {
	log, ok := ctx.Value(key).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return log
}

// Close closes closer and logs, rather than drops, any error.
func Close(ctx context.Context, name string, closer io.Closer) error {
	err := closer.Close()
	if err != nil {
		Get(ctx).Error("failed to close", "closer", name, "error", err)
		return err
	}
	return nil
}

func With(ctx context.Context, kv ...any) context.Context {
	return Store(ctx, Get(ctx).With(kv...))
}
