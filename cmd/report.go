package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clarynt/clarynt/internal/embeddings"
	"github.com/clarynt/clarynt/internal/llm"
	"github.com/clarynt/clarynt/internal/regindex"
	"github.com/clarynt/clarynt/internal/report"
	"github.com/clarynt/clarynt/internal/store"
)

var (
	reportName      string
	reportPurpose   string
	reportUseCase   string
	reportRiskNotes string
	reportNotes     string
	reportMetaPath  string
	reportOutPath   string
	reportEphemeral bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Draft a full compliance report for one AI system",
	Long: `Report retrieves the most relevant sections of the Act for the
described system and drafts a cited compliance report. The report is saved
as a project in the local database unless --ephemeral is set.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportName, "name", "", "system name")
	reportCmd.Flags().StringVar(&reportPurpose, "purpose", "", "intended purpose")
	reportCmd.Flags().StringVar(&reportUseCase, "use-case", "", "use case domain")
	reportCmd.Flags().StringVar(&reportRiskNotes, "risk-notes", "", "known risks")
	reportCmd.Flags().StringVar(&reportNotes, "notes", "", "free-text notes")
	reportCmd.Flags().StringVar(&reportMetaPath, "meta", "", "YAML model metadata file")
	reportCmd.Flags().StringVarP(&reportOutPath, "out", "o", "", "write report markdown to file instead of stdout")
	reportCmd.Flags().BoolVar(&reportEphemeral, "ephemeral", false, "do not save the report as a project")
	_ = reportCmd.MarkFlagRequired("name")
	_ = reportCmd.MarkFlagRequired("purpose")
	_ = reportCmd.MarkFlagRequired("use-case")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gen, err := llm.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	prov, err := embeddings.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	var modelMeta string
	if reportMetaPath != "" {
		raw, err := os.ReadFile(reportMetaPath)
		if err != nil {
			return fmt.Errorf("cannot read metadata file %s: %w", reportMetaPath, err)
		}
		modelMeta, err = report.NormalizeModelMeta(raw)
		if err != nil {
			return err
		}
	}

	idx, err := regindex.Load(cfg.IndexPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			printWarn("", fmt.Sprintf("cannot load index: %v", err))
		}
		printWarn("", "no regulatory index, drafting without citations")
		idx = nil
	}

	in := report.Input{
		SystemName:      reportName,
		IntendedPurpose: reportPurpose,
		UseCase:         reportUseCase,
		RiskNotes:       reportRiskNotes,
		FreeTextNotes:   reportNotes,
	}
	res, err := report.Generate(cmd.Context(), report.Deps{
		Generator:  gen,
		Provider:   prov,
		Index:      idx,
		PricePer1K: cfg.PricePer1K,
	}, in, modelMeta)
	if err != nil {
		return err
	}

	if reportOutPath != "" {
		if err := os.WriteFile(reportOutPath, []byte(res.Report), 0o644); err != nil {
			return fmt.Errorf("cannot write report to %s: %w", reportOutPath, err)
		}
		printOK("", reportOutPath)
	} else {
		fmt.Println(res.Report)
	}

	if !reportEphemeral {
		sourcesJSON, err := json.Marshal(res.Sources)
		if err != nil {
			return fmt.Errorf("cannot encode sources: %w", err)
		}
		projects, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		p := &store.Project{
			SystemName:      in.SystemName,
			IntendedPurpose: in.IntendedPurpose,
			UseCase:         in.UseCase,
			ReportMD:        res.Report,
			SourcesJSON:     string(sourcesJSON),
			TotalTokens:     res.Usage.TotalTokens,
			CostUSD:         res.CostUSD,
		}
		if err := projects.Save(cmd.Context(), p); err != nil {
			return err
		}
		printInfo("", fmt.Sprintf("saved as project %d", p.ID))
	}
	printInfo("", fmt.Sprintf("tokens: %d, cost: $%.4f", res.Usage.TotalTokens, res.CostUSD))
	return nil
}
