package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/saturogrp-blip/Grand/internal/banks"
	"github.com/saturogrp-blip/Grand/internal/config"
	"github.com/saturogrp-blip/Grand/internal/logging"
	"github.com/saturogrp-blip/Grand/internal/store"
)

// ExitError carries a process exit code. An empty Message means the command
// already reported the failure.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Message
}

var (
	// cfg and workDir are resolved once per invocation by setup.
	cfg     config.Config
	workDir string
)

var rootCmd = &cobra.Command{
	Use:   "grand",
	Short: "Interview question banks and backend checks for the Grand curator system",
	Long: "Grand manages the interview question banks of the Grand Interview Curator System:\n" +
		"it verifies the backend environment, assembles interview sets, walks interviewers\n" +
		"through them and suggests new questions.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default grand.yaml, or GRAND_CONFIG)")
	pf.String("db", "", "Path to SQLite database file (overrides GRAND_DB env var)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: text, json")

	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(banksCmd)
	rootCmd.AddCommand(assembleCmd)
	rootCmd.AddCommand(interviewCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and installs the logger on the command context.
func setup(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	path, _ := cmd.Flags().GetString("config")

	c, err := config.Load(dir, path)
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		c.LogLevel = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		c.LogFormat = v
	}
	if err := c.Validate(); err != nil {
		return err
	}

	logger := logging.New(c.LogLevel, c.LogFormat, cmd.ErrOrStderr())
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithLogger(ctx, logger))

	cfg, workDir = c, dir
	logger.Debug("configuration loaded", "dir", dir, "db", c.DBPath, "banks_dir", c.BanksDir)
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path (GRAND_DB or db_path), then data/grand.db.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// loadCatalog returns the configured bank directory, or the built-in banks.
func loadCatalog() (*banks.Catalog, error) {
	if cfg.BanksDir != "" {
		return banks.LoadDir(cfg.BanksDir)
	}
	return banks.Default()
}
