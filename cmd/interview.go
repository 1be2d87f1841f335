package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saturogrp-blip/Grand/internal/logging"
	"github.com/saturogrp-blip/Grand/internal/store"
	"github.com/saturogrp-blip/Grand/internal/walkthrough"
)

var interviewCmd = &cobra.Command{
	Use:   "interview <set-id>",
	Short: "Walk through a saved interview set and take notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rec, err := s.SetRepo().GetSet(ctx, args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("interview set %s not found (see: grand history sets)", args[0])
		}
		if err != nil {
			return fmt.Errorf("load interview set: %w", err)
		}
		set, err := setFromRecord(*rec)
		if err != nil {
			return err
		}
		if len(set.Questions) == 0 {
			return fmt.Errorf("interview set %s has no questions", set.ID)
		}

		notes, err := walkthrough.Run(ctx, set, rec.Notes)
		if err != nil {
			return err
		}
		if err := s.SetRepo().SaveNotes(ctx, set.ID, notes); err != nil {
			return fmt.Errorf("save notes: %w", err)
		}
		logging.FromContext(ctx).Info("interview notes saved", "set", set.ID, "notes", len(notes))
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d notes for set %s\n", len(notes), set.ID)
		return nil
	},
}
