package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clarynt/clarynt/internal/chat"
	"github.com/clarynt/clarynt/internal/embeddings"
	"github.com/clarynt/clarynt/internal/llm"
	"github.com/clarynt/clarynt/internal/outcome"
	"github.com/clarynt/clarynt/internal/regindex"
)

var (
	chatOutcome string
	chatRole    string
)

var chatCmd = &cobra.Command{
	Use:   "chat <question>",
	Short: "Ask the SB 24-205 compliance assistant one question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatOutcome, "outcome", "", "classification outcome for context")
	chatCmd.Flags().StringVar(&chatRole, "role", "", "compliance role (developer, deployer, both)")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
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

	idx, err := regindex.Load(cfg.IndexPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			printWarn("", fmt.Sprintf("cannot load index: %v", err))
		}
		idx = nil
	}

	resp, err := chat.Ask(cmd.Context(), chat.Deps{
		Generator: gen,
		Provider:  prov,
		Index:     idx,
	}, chat.Request{
		Message: strings.Join(args, " "),
		Outcome: outcome.Outcome(chatOutcome),
		Role:    chatRole,
	})
	if err != nil {
		return err
	}

	fmt.Println(resp.Message)
	if len(resp.Citations) > 0 {
		printBullet("Citations:")
		for _, cit := range resp.Citations {
			printInfo(cit.Key, fmt.Sprintf("%s (%s)", cit.Title, cit.Source))
		}
	}
	if len(resp.SuggestedQuestions) > 0 {
		printBullet("You could also ask:")
		for _, q := range resp.SuggestedQuestions {
			fmt.Printf("  * %s\n", q)
		}
	}
	return nil
}
