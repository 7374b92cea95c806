package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/isdelr/ecolearn/internal/app"
	"github.com/isdelr/ecolearn/internal/config"
	"github.com/isdelr/ecolearn/internal/logger"
	"github.com/isdelr/ecolearn/internal/view"
	"github.com/rs/zerolog/log"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	logger.Init(cfg.LogLevel)

	if len(args) >= 2 && args[1] == "serve" {
		if err := serve(cfg); err != nil {
			log.Error().Err(err).Msg("Fixture backend failed")
			return 1
		}
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize client")
		return 1
	}
	defer a.Close()
	a.Restore(ctx)

	cli := &commandLine{app: a, out: os.Stdout, in: bufio.NewReader(os.Stdin)}
	if err := cli.run(ctx, args); err != nil {
		if errors.Is(err, errHelp) {
			return 2
		}
		view.ErrorBanner(os.Stderr, err)
		return 1
	}
	return 0
}
