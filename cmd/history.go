package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saturogrp-blip/Grand/internal/store"
)

const timeFormat = "2006-01-02 15:04:05"

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show stored verification runs, interview sets and LLM calls",
}

var historyRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded verification runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		runs, err := s.RunRepo().ListRuns(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query runs: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "No verification runs recorded. Use: grand verify --record")
			return nil
		}
		fmt.Fprintf(out, "%-5s  %-19s  %-6s  %-6s  %s\n", "Seq", "Time", "Passed", "Failed", "Directory")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, r := range runs {
			fmt.Fprintf(out, "%-5d  %-19s  %-6d  %-6d  %s\n",
				r.Sequence, r.CreatedAt.Local().Format(timeFormat), r.Passed, r.Failed, r.Dir)
			for _, c := range r.Results {
				if c.Level == "fail" {
					fmt.Fprintf(out, "       ✗ %s: %s\n", c.Name, c.Message)
				}
			}
		}
		return nil
	},
}

var historySetsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List saved interview sets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sets, err := s.SetRepo().ListSets(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sets: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(sets) == 0 {
			fmt.Fprintln(out, "No interview sets saved. Use: grand assemble --save")
			return nil
		}
		fmt.Fprintf(out, "%-36s  %-19s  %-16s  %-8s  %-5s  %s\n", "ID", "Time", "Organization", "Strategy", "Qs", "Notes")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, r := range sets {
			fmt.Fprintf(out, "%-36s  %-19s  %-16s  %-8s  %-5d  %d\n",
				r.ID, r.CreatedAt.Local().Format(timeFormat), r.Organization, r.Strategy, len(r.Questions), len(r.Notes))
		}
		return nil
	},
}

var historyLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "List recorded LLM requests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().ListLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM events found.")
			return nil
		}
		fmt.Fprintf(out, "%-5s  %-19s  %-14s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"Seq", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			model := e.Model
			if len(model) > 28 {
				model = model[:28]
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-14s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.Sequence, e.Timestamp.Local().Format(timeFormat), e.Purpose, model,
				e.InputTokens, e.OutputTokens, e.LatencyMs, ok)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{historyRunsCmd, historySetsCmd, historyLLMCmd} {
		c.Flags().IntP("limit", "n", 20, "Number of entries to show")
		historyCmd.AddCommand(c)
	}
	historyLLMCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. suggest)")
}
