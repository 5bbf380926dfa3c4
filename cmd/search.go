package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/clarynt/clarynt/internal/embeddings"
	"github.com/clarynt/clarynt/internal/regindex"
)

var (
	searchK       int
	searchKeyword bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the regulatory index",
	Long: `Search retrieves the sections of the Act most similar to the query.

Semantic search embeds the query and ranks chunks by cosine similarity.
When the embeddings API is unavailable, or with --keyword, a plain
keyword match over the cached chunks is used instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchK, "top", "k", 4, "number of results")
	searchCmd.Flags().BoolVar(&searchKeyword, "keyword", false, "keyword match instead of semantic search")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")

	idx, err := regindex.Load(cfg.IndexPath)
	if err != nil {
		printMiss("", fmt.Sprintf("no index at %s (run 'clarynt index' first)", cfg.IndexPath))
		return fmt.Errorf("cannot load index: %w", err)
	}

	var hits []regindex.Chunk
	if searchKeyword {
		hits = regindex.KeywordSearch(idx.Chunks, query, searchK)
	} else {
		prov, err := embeddings.NewFromConfig(cfg)
		if err != nil {
			return err
		}
		hits, err = regindex.Retrieve(cmd.Context(), prov, idx, query, searchK)
		if errors.Is(err, regindex.ErrRetrievalUnavailable) {
			printWarn("", "embeddings API unavailable, falling back to keyword match")
			hits = regindex.KeywordSearch(idx.Chunks, query, searchK)
		} else if err != nil {
			return fmt.Errorf("cannot search: %w", err)
		}
	}

	if len(hits) == 0 {
		printMiss("", "no matching sections")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tTITLE\tSOURCE\tEXCERPT")
	for _, h := range hits {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", h.Key, h.Title, h.Source, excerpt(h.Text, 80))
	}
	return w.Flush()
}

func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
