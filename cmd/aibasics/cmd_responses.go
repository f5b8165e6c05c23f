package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"learnai.dev/ai-basics/internal/config"
	"learnai.dev/ai-basics/internal/core"
	"learnai.dev/ai-basics/internal/store"
)

var addTable string

var responsesCmd = &cobra.Command{
	Use:   "responses",
	Short: "Inspect or extend the keyword response tables",
	Long: `Inspect or extend the keyword response tables.

Changes are written to DATABASE_URL. With the default in-memory database they
only last for this command, like the browser demo forgetting them on reload.
Pointing DATABASE_URL at a file keeps them for the next "serve" or "tui"; that
is an extension beyond the demo, which keeps no state between visits.`,
}

var responsesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the keywords of both tables in match order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCustomizer(func(c *core.Customizer) error {
			listing := c.ListResponses()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Output responses: %s\n", strings.Join(listing.Output, ", "))
			fmt.Fprintf(out, "Chat responses: %s\n", strings.Join(listing.Chat, ", "))
			return nil
		})
	},
}

var responsesAddCmd = &cobra.Command{
	Use:   "add KEYWORD RESPONSE",
	Short: "Add or overwrite a response",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCustomizer(func(c *core.Customizer) error {
			if err := c.Add(addTable, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s response for: %s\n", addTable, strings.ToLower(args[0]))
			return nil
		})
	},
}

func init() {
	responsesAddCmd.Flags().StringVar(&addTable, "table", core.ChatTableName, "table to add to (output or chat)")
	responsesCmd.AddCommand(responsesListCmd, responsesAddCmd)
}

func withCustomizer(fn func(*core.Customizer) error) error {
	dbStore, err := store.NewSQLiteStore(config.AppConfig.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer dbStore.Close()

	tables, err := dbStore.LoadTables()
	if err != nil {
		return err
	}
	return fn(core.NewCustomizer(tables, dbStore, logger))
}
