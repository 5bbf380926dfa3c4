package cmd

import (
	"github.com/spf13/cobra"

	"github.com/clarynt/clarynt/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the compliance API server",
	Long: `Serve exposes report generation, outcome documentation, checklists,
the compliance assistant, and saved projects over HTTP.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides CLARYNT_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	srv, err := server.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	return srv.Run()
}
