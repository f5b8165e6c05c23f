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

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"learnai.dev/ai-basics/internal/api"
	"learnai.dev/ai-basics/internal/config"
	"learnai.dev/ai-basics/internal/core"
	"learnai.dev/ai-basics/internal/scheduler"
	"learnai.dev/ai-basics/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the demo API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func runServer() error {
	cfg := config.AppConfig

	dbStore, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer dbStore.Close()

	tables, err := dbStore.LoadTables()
	if err != nil {
		return err
	}
	logger.Info("Response tables loaded",
		zap.Int("output", tables.Output.Len()),
		zap.Int("chat", tables.Chat.Len()))

	// Every page callback and timer runs on this loop
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop := scheduler.NewLoop(logger)
	go loop.Run(ctx)

	customizer := core.NewCustomizer(tables, dbStore, logger)
	sessions := core.NewSessionService(loop, loop, tables, customizer, cfg.Timing, cfg.MaxSessions, logger)

	apiHandler := api.NewAPIHandler(sessions, api.AuthConfig{
		JWTSecret:     cfg.JWTSecret,
		AdminPassword: cfg.AdminPassword,
	}, logger)
	router := api.NewRouter(apiHandler)

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server. Press Ctrl+C to quit.", zap.String("addr", serverAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serveErr:
		return fmt.Errorf("could not listen on %s: %w", serverAddr, err)
	}
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exiting gracefully")
	return nil
}
