package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/clarynt/clarynt/internal/assemble"
	"github.com/clarynt/clarynt/internal/llm"
	"github.com/clarynt/clarynt/internal/outcome"
)

var (
	generateOutcome     string
	generateAnswersPath string
	generateOutDir      string
	generateChecklist   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the compliance documents an outcome requires",
	Long: `Generate produces every document required by the given classification
outcome and writes each as a markdown file into the output directory.
Answers from the compliance assessment can be supplied as a YAML file of
key/value pairs to personalize the documents.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateOutcome, "outcome", "", "classification outcome (outcome1..outcome9)")
	generateCmd.Flags().StringVar(&generateAnswersPath, "answers", "", "YAML file of assessment answers")
	generateCmd.Flags().StringVarP(&generateOutDir, "out", "o", "docs", "output directory")
	generateCmd.Flags().BoolVar(&generateChecklist, "checklist", false, "also generate the action checklist")
	_ = generateCmd.MarkFlagRequired("outcome")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	o := outcome.Outcome(generateOutcome)
	if !outcome.Known(o) {
		return fmt.Errorf("unknown outcome %q (expected outcome1..outcome9)", generateOutcome)
	}

	answers, err := readAnswers(generateAnswersPath)
	if err != nil {
		return err
	}

	printSection("Generate")
	printInfo("", fmt.Sprintf("classification: %s", outcome.Title(o)))

	kinds := assemble.RequiredKinds(o)
	if len(kinds) == 0 && !generateChecklist {
		printSkip("", "this classification requires no documents")
		return nil
	}

	gen, err := llm.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	if len(kinds) > 0 {
		set, err := assemble.Assemble(cmd.Context(), gen, o, answers)
		if err != nil {
			return fmt.Errorf("cannot generate documents: %w", err)
		}
		if err := os.MkdirAll(generateOutDir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory %s: %w", generateOutDir, err)
		}
		names := make([]string, 0, len(set.Documents))
		for k := range set.Documents {
			names = append(names, string(k))
		}
		sort.Strings(names)
		for _, name := range names {
			path := filepath.Join(generateOutDir, name+".md")
			if err := os.WriteFile(path, []byte(set.Documents[assemble.DocumentKind(name)]), 0o644); err != nil {
				return fmt.Errorf("cannot write %s: %w", path, err)
			}
			printOK(name, path)
		}
		printInfo("", fmt.Sprintf("tokens: %d total (%d prompt, %d completion)",
			set.Usage.TotalTokens, set.Usage.PromptTokens, set.Usage.CompletionTokens))
	}

	if generateChecklist {
		cl, err := assemble.GenerateChecklist(cmd.Context(), gen, cfg.RegsDir, o, answers)
		if err != nil {
			return err
		}
		printBullet("Action checklist:")
		for _, item := range cl.Items {
			fmt.Printf("  * %s\n", item)
		}
	}
	return nil
}

func readAnswers(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read answers file %s: %w", path, err)
	}
	answers := map[string]string{}
	if err := yaml.Unmarshal(raw, &answers); err != nil {
		return nil, fmt.Errorf("cannot parse answers file %s: %w", path, err)
	}
	return answers, nil
}
