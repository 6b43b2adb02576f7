// Package cli implements the smartreply demo CLI commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/smartreplyhq/smartreply"
	"github.com/smartreplyhq/smartreply/backend"
	"github.com/smartreplyhq/smartreply/meter"
	"github.com/smartreplyhq/smartreply/quota"
)

var (
	configPath string
	baseURL    string
	storePath  string
	verbose    bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "smartreply",
	Short: "Draft AI email replies from the terminal",
	Long:  "A small client for the SmartReply service. Paste an email in, get a drafted reply out, with a local daily usage allowance.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	RootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL (overrides config and $SMARTREPLY_BASE_URL)")
	RootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Usage database path (default: $SMARTREPLY_STORE or ~/.smartreply/usage.db)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log submission events to stderr")
}

func loadConfig() (smartreply.Config, error) {
	var cfg smartreply.Config

	if configPath != "" {
		loaded, err := smartreply.LoadConfig(configPath)
		if err != nil {
			return smartreply.Config{}, err
		}
		cfg = loaded
	}

	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("SMARTREPLY_BASE_URL")
	}
	if cfg.BaseURL == "" {
		return smartreply.Config{}, fmt.Errorf("a base URL is required (--base-url, config file, or $SMARTREPLY_BASE_URL)")
	}

	return cfg, nil
}

func usageDBPath(cfg smartreply.Config) string {
	if storePath != "" {
		return storePath
	}
	if env := os.Getenv("SMARTREPLY_STORE"); env != "" {
		return env
	}
	if cfg.StoragePath != "" {
		return cfg.StoragePath
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".smartreply", "usage.db")
}

// newOrchestrator wires the HTTP client and the SQLite-backed quota
// store. The returned cleanup closes the database.
func newOrchestrator() (*smartreply.Orchestrator, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	db, err := quota.NewSQLiteBackend(usageDBPath(cfg))
	if err != nil {
		return nil, nil, err
	}

	gen := backend.New(cfg.BaseURL, backend.WithTimeout(cfg.Timeout()))

	opts := []smartreply.Option{
		smartreply.WithQuotaStore(quota.NewStore(db)),
	}
	if verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		opts = append(opts, smartreply.WithMeter(meter.NewLogMeter(logger)))
	}

	orch, err := smartreply.New(cfg, gen, opts...)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return orch, func() { db.Close() }, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
