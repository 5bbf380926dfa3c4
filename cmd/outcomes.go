package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/clarynt/clarynt/internal/assemble"
	"github.com/clarynt/clarynt/internal/outcome"
)

var outcomesCmd = &cobra.Command{
	Use:   "outcomes [outcome]",
	Short: "List classification outcomes and their required documents",
	Long: `Without arguments, outcomes lists every classification with the
documents it requires. With an outcome identifier (e.g. outcome8), it
prints that classification's full requirements text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOutcomes,
}

func init() {
	rootCmd.AddCommand(outcomesCmd)
}

func runOutcomes(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		o := outcome.Outcome(args[0])
		if !outcome.Known(o) {
			return fmt.Errorf("unknown outcome %q (expected outcome1..outcome9)", args[0])
		}
		title, requirements := outcome.Resolve(cfg.RegsDir, o)
		fmt.Printf("# %s (%s)\n\n%s\n", title, o, requirements)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "OUTCOME\tTITLE\tDOCUMENTS")
	for _, o := range outcome.All() {
		kinds := assemble.RequiredKinds(o)
		names := make([]string, len(kinds))
		for i, k := range kinds {
			names[i] = string(k)
		}
		docs := strings.Join(names, ", ")
		if docs == "" {
			docs = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", o, outcome.Title(o), docs)
	}
	return w.Flush()
}
