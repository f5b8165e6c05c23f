package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"learnai.dev/ai-basics/internal/config"
	"learnai.dev/ai-basics/internal/core"
	"learnai.dev/ai-basics/internal/scheduler"
	"learnai.dev/ai-basics/internal/store"
	"learnai.dev/ai-basics/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the demos in the terminal",
	PreRun: func(cmd *cobra.Command, args []string) {
		// Log lines on stderr would tear the screen.
		if logFile == "" {
			logger = zap.NewNop()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
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

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		loop := scheduler.NewLoop(logger)
		go loop.Run(ctx)

		var page *core.Page
		loop.Do(func() {
			page = core.NewPage(loop, tables, cfg.Timing)
		})
		return tui.New(page, loop).Run()
	},
}
