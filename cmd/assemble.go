package cmd

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saturogrp-blip/Grand/internal/interview"
	"github.com/saturogrp-blip/Grand/internal/logging"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Build the question list for one interview",
	Long: "Combine an organization's bank with the mandatory list.\n\n" +
		"--mandatory has no default: prepend asks mandatory questions first, append asks\n" +
		"them last, merge asks them first and drops bank questions that repeat them.",
	Args: cobra.NoArgs,
	RunE: runAssemble,
}

func init() {
	f := assembleCmd.Flags()
	f.String("org", "", "Organization bank to draw from (required)")
	f.String("mandatory", "", "Mandatory strategy: "+strings.Join(interview.Strategies, ", ")+" (required)")
	f.Int("sample", 0, "Draw this many bank questions (0 = whole bank)")
	f.Uint64("seed", 0, "Sampling seed (default random)")
	f.Bool("save", false, "Store the set for a later walkthrough")
	_ = assembleCmd.MarkFlagRequired("org")
	_ = assembleCmd.MarkFlagRequired("mandatory")
}

func runAssemble(cmd *cobra.Command, args []string) error {
	org, _ := cmd.Flags().GetString("org")
	strategyVal, _ := cmd.Flags().GetString("mandatory")
	sampleN, _ := cmd.Flags().GetInt("sample")
	seed, _ := cmd.Flags().GetUint64("seed")
	save, _ := cmd.Flags().GetBool("save")

	strategy, err := interview.ParseStrategy(strategyVal)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("seed") {
		seed = rand.Uint64()
	}

	c, err := loadCatalog()
	if err != nil {
		return err
	}
	set, err := interview.Assemble(c, interview.Options{
		Organization: org,
		Strategy:     strategy,
		Sample:       sampleN,
		Seed:         seed,
	})
	if err != nil {
		return err
	}
	logging.FromContext(cmd.Context()).Debug("interview set assembled",
		"org", set.Organization, "strategy", set.Strategy, "questions", len(set.Questions), "seed", set.Seed)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s interview (%s, %d questions, %d mandatory)\n\n",
		set.Organization, set.Strategy, len(set.Questions), set.MandatoryCount())
	for i, q := range set.Questions {
		mark := "   "
		if q.Mandatory {
			mark = "[M]"
		}
		fmt.Fprintf(out, "%3d. %s %s\n", i+1, mark, q.Text)
	}

	if !save {
		return nil
	}
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.SetRepo().SaveSet(cmd.Context(), setRecord(set)); err != nil {
		return fmt.Errorf("save interview set: %w", err)
	}
	fmt.Fprintf(out, "\nSaved set %s\nStart the walkthrough with: grand interview %s\n", set.ID, set.ID)
	return nil
}
