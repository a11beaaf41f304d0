package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/km-arc/go-validator/framework/app"
	"github.com/km-arc/go-validator/framework/config"
	"github.com/km-arc/go-validator/framework/logger"
)

func main() {
	cfg, err := config.Load() // loads .env when present
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		application.Logger.Error("server exited", logger.Error(err))
		stop()
		os.Exit(1)
	}
}
