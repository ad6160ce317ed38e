package main

import (
	"bwtnet/internal/config"
	"bwtnet/internal/ctxlog"
	"bwtnet/internal/db"
	"bwtnet/internal/rec"
	"bwtnet/internal/server"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func run(ctx context.Context, c config.Config) (err error) {
	defer rec.Error(&err)

	logger := ctxlog.Get(ctx)

	var store server.Store
	if c.DB.File != "" {
		logger.Info("opening db", "file", c.DB.File)
		d, err := db.Open(c.DB)
		if err != nil {
			return err
		}
		defer ctxlog.Close(ctx, "db", d)
		store = d
	} else {
		logger.Info("no db configured, results are not stored")
	}

	logger.Info("starting server")
	srv := server.New(c.Server, store)

	return srv.Run(ctx)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	file := "config.yaml"
	if len(os.Args) > 1 {
		file = os.Args[1]
	}

	c, err := config.Load(ctx, file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ctx = ctxlog.Setup(ctx, "bwtserver", c.Log)

	logger := ctxlog.Get(ctx)

	err = run(ctx, c)
	if err != nil {
		logger.Error("server stopped unexpectedly", "error", err)
		os.Exit(1)
	}
	logger.Info("server gracefully stopped")
}
