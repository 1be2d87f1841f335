package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saturogrp-blip/Grand/internal/llm"
	"github.com/saturogrp-blip/Grand/internal/suggest"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <organization>",
	Short: "Ask a language model for new questions for one organization",
	Long: "Ask the configured language model for new questions. Suggestions are printed\n" +
		"only; banks are never modified. The provider is chosen with GRAND_LLM_PROVIDER\n" +
		"or discovered from the API keys in the environment.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		count, _ := cmd.Flags().GetInt("count")

		c, err := loadCatalog()
		if err != nil {
			return err
		}

		llmCfg, err := llm.ConfigFromEnv()
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		provider, err := llm.New(ctx, llmCfg, s.EventRepo())
		if err != nil {
			return err
		}

		qs, err := suggest.New(provider, suggest.DefaultConfig()).Suggest(ctx, c, args[0], count)
		if err != nil {
			return fmt.Errorf("suggest questions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(qs) == 0 {
			fmt.Fprintln(out, "No new questions suggested.")
			return nil
		}
		fmt.Fprintf(out, "Suggested questions for %s (%s):\n\n", args[0], provider.ModelID())
		for i, q := range qs {
			fmt.Fprintf(out, "%3d. %s\n", i+1, q)
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().IntP("count", "n", 5, "Number of questions to request")
}
