package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saturogrp-blip/Grand/internal/banks"
)

var banksCmd = &cobra.Command{
	Use:   "banks",
	Short: "Inspect, export and validate question banks",
}

var banksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List organizations and their question counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-24s  %s\n", "Organization", "Questions")
		fmt.Fprintln(out, strings.Repeat("─", 36))
		for _, org := range c.Organizations() {
			b, _ := c.Bank(org)
			fmt.Fprintf(out, "%-24s  %d\n", org, b.Len())
		}
		fmt.Fprintf(out, "\n%d organizations, %d mandatory questions\n", c.Len(), len(c.Mandatory()))
		return nil
	},
}

var banksShowCmd = &cobra.Command{
	Use:   "show <organization>",
	Short: "Print one organization's bank, or the mandatory list",
	Long:  "Print one organization's questions. Use \"mandatory\" to print the mandatory list.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		var qs []string
		if args[0] == "mandatory" {
			qs = c.Mandatory()
		} else {
			b, ok := c.Bank(args[0])
			if !ok {
				return fmt.Errorf("unknown organization %q: known organizations are %s",
					args[0], strings.Join(c.Organizations(), ", "))
			}
			qs = b.Questions()
		}
		out := cmd.OutOrStdout()
		for i, q := range qs {
			fmt.Fprintf(out, "%3d. %s\n", i+1, q)
		}
		return nil
	},
}

var banksExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the catalog as json, yaml or js",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		formatVal, _ := cmd.Flags().GetString("format")
		format, err := banks.ParseFormat(formatVal)
		if err != nil {
			return err
		}
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		return banks.Export(cmd.OutOrStdout(), c, format)
	},
}

var banksValidateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Check a bank directory or catalog file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		var c *banks.Catalog
		if info.IsDir() {
			c, err = banks.LoadDir(path)
		} else {
			c, err = banks.LoadCatalogFile(path)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		total := 0
		for _, org := range c.Organizations() {
			b, _ := c.Bank(org)
			total += b.Len()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d organizations, %d questions, %d mandatory)\n",
			path, c.Len(), total, len(c.Mandatory()))
		return nil
	},
}

func init() {
	banksExportCmd.Flags().StringP("format", "f", "json", "Export format: json, yaml or js")

	banksCmd.AddCommand(banksListCmd)
	banksCmd.AddCommand(banksShowCmd)
	banksCmd.AddCommand(banksExportCmd)
	banksCmd.AddCommand(banksValidateCmd)
}
