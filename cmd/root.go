package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/scraper-ui/internal/config"
)

// configModeKey is the command annotation naming the config validation mode.
const configModeKey = "config-mode"

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:          "scraper-ui",
	Short:        "Web and terminal client for the scraper service",
	Long:         "Submits URLs to the scraper backend, browses and searches scraping history, and shows scraped page content, either as a web UI (serve) or from the terminal.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		mode := cmd.Annotations[configModeKey]
		if mode == "" {
			mode = "client"
		}
		if err := c.Validate(mode); err != nil {
			return err
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
