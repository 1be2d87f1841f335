package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/saturogrp-blip/Grand/internal/logging"
	"github.com/saturogrp-blip/Grand/internal/store"
	"github.com/saturogrp-blip/Grand/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that the backend can run from the current directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		record, _ := cmd.Flags().GetBool("record")

		vc := cfg.Verify
		out := colorprofile.NewWriter(cmd.OutOrStdout(), os.Environ())
		rep := verify.New(workDir, verify.Standard(workDir, vc), verify.HintsFrom(vc), out).Run(ctx)

		if record {
			if err := recordRun(cmd, rep); err != nil {
				return err
			}
			logging.FromContext(ctx).Info("verification run recorded", "id", rep.ID)
		}

		if !rep.OK() {
			return &ExitError{Code: rep.ExitCode()}
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().Bool("record", false, "Store the run in the history database")
}

func recordRun(cmd *cobra.Command, rep *verify.Report) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.RunRepo().AppendRun(cmd.Context(), runRecord(rep)); err != nil {
		return fmt.Errorf("record verification run: %w", err)
	}
	return nil
}

func runRecord(rep *verify.Report) store.RunRecord {
	rec := store.RunRecord{
		ID:        rep.ID,
		Dir:       rep.Dir,
		Passed:    rep.Passed,
		Failed:    rep.Failed,
		CreatedAt: rep.StartedAt,
	}
	for _, r := range rep.Results {
		rec.Results = append(rec.Results, store.CheckRecord{
			Name:       r.Name,
			Level:      r.Outcome.Level.String(),
			Message:    r.Outcome.Message,
			DurationMs: r.Duration.Milliseconds(),
		})
	}
	return rec
}
