package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"learnai.dev/ai-basics/internal/config"
	"learnai.dev/ai-basics/internal/logging"
)

var (
	// Logger, built from LOG_LEVEL before any subcommand runs
	logger *zap.Logger

	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "aibasics",
	Short: "Basics of AI - interactive educational demos",
	Long: `aibasics serves the "Basics of AI" demos: tab navigation, a simulated
training run, word-by-word answer generation and a keyword chatbot.

Nothing here is a real model. Every answer comes from a fixed keyword table
that can be extended at runtime. Extensions are forgotten on restart unless
DATABASE_URL points at a sqlite file (opt-in persistence the web demo never had).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadConfig()

		var paths []string
		if logFile != "" {
			paths = append(paths, logFile)
		}
		var err error
		logger, err = logging.New(config.AppConfig.LogLevel, paths...)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	rootCmd.AddCommand(serveCmd, tuiCmd, responsesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
