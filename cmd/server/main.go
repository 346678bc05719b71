package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/janisto/helldev-server/internal/platform/config"
	applog "github.com/janisto/helldev-server/internal/platform/logging"
	"github.com/janisto/helldev-server/internal/server"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code: 0 after a graceful shutdown, 1 when the
// configuration is invalid or the listener cannot be bound.
func run(args []string) int {
	ctx := context.Background()
	defer func() {
		if err := applog.Sync(); err != nil && !errors.Is(err, syscall.EINVAL) {
			applog.LogError(ctx, "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(ctx, "logger init error", err)
	}

	cfg, err := config.Load(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		applog.LogError(ctx, "configuration error", err)
		return 1
	}
	if err := applog.SetLevel(cfg.LogLevel); err != nil {
		applog.LogError(ctx, "configuration error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	applog.LogInfo(ctx, "starting server", zap.String("version", Version), zap.String("addr", cfg.Addr()))
	if err := server.New(cfg, Version).Run(ctx); err != nil {
		applog.LogError(ctx, "server failed", err, zap.String("addr", cfg.Addr()))
		return 1
	}
	return 0
}
