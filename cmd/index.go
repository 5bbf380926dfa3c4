package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clarynt/clarynt/internal/embeddings"
	"github.com/clarynt/clarynt/internal/regindex"
)

var indexForce bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build or refresh the regulatory retrieval index",
	Long: `Index chunks every markdown file in the regs directory, embeds the
chunks, and caches the result. An up-to-date cache is reused; pass --force
to rebuild unconditionally.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexForce, "force", false, "rebuild even when the cache is current")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	prov, err := embeddings.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	printSection("Index")
	printInfo("", fmt.Sprintf("corpus: %s", cfg.RegsDir))

	idx, err := regindex.BuildOrLoad(cmd.Context(), prov, cfg.RegsDir, cfg.IndexPath, regindex.BuildOptions{
		Force: indexForce,
	})
	if err != nil {
		printErr("", err.Error())
		return fmt.Errorf("cannot build index: %w", err)
	}

	printOK("", fmt.Sprintf("%d chunks indexed (model %s, dim %d)", len(idx.Chunks), idx.Manifest.ModelID, idx.Manifest.Dim))
	printInfo("", fmt.Sprintf("cache: %s", cfg.IndexPath))
	return nil
}
