package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/ecolearn/internal/api"
	"github.com/isdelr/ecolearn/internal/config"
	"github.com/isdelr/ecolearn/internal/fixtures"
	"github.com/isdelr/ecolearn/internal/monitoring"
	ws "github.com/isdelr/ecolearn/internal/websocket"
	"github.com/rs/zerolog/log"
)

// serve runs the fixture backend until SIGINT or SIGTERM.
func serve(cfg *config.Config) error {
	store, err := fixtures.NewStore()
	if err != nil {
		return err
	}
	issuer := fixtures.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	hub := ws.NewHub()
	go hub.Run()
	defer hub.Stop()

	// Set up and run the background scheduler
	scheduler, err := monitoring.NewScheduler(store, cfg.PlantingSchedule)
	if err != nil {
		return err
	}
	scheduler.OnConfirmed(func(n int) {
		hub.Publish(ws.ActionPlantingsConfirmed, ws.PlantingsConfirmed{Confirmed: n})
	})
	go scheduler.Run()

	limiter := api.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	stopCleanup := limiter.StartCleanup(time.Minute, 10*time.Minute)
	defer stopCleanup()

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           api.NewRouter(cfg, store, issuer, hub, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Fixture backend starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		scheduler.Stop()
		return fmt.Errorf("listen: %w", err)
	}
	log.Info().Msg("Shutting down fixture backend...")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Fixture backend exiting")
	return nil
}
