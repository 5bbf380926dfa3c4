package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clarynt/clarynt/internal/config"
)

var rootCmd = &cobra.Command{
	Use:          "clarynt",
	Short:        "Clarynt - Colorado AI Act compliance documentation generator",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `Clarynt classifies AI systems under the Colorado AI Act (SB 24-205),
retrieves the relevant sections of the Act, and generates the compliance
documents each classification requires.`,
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves runtime configuration for a command invocation.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cannot load configuration: %w", err)
	}
	return cfg, nil
}
