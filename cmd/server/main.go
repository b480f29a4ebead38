// Package main provides the entry point for the client dashboard server and its CLI helpers.
package main

import (
	"fmt"
	"os"

	"github.com/BerylCAtieno/client-dashboard/internal/config"
	"github.com/BerylCAtieno/client-dashboard/internal/dashboard"
	"github.com/BerylCAtieno/client-dashboard/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var profilePath string

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Client dashboard server",
	Long:  "Serves editable marketing-agency client dashboards: SWOT and goal lists, target audiences with personas, and competitor comparison.",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "", "Dashboard profile YAML (overrides DASHBOARD_PROFILE)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration, the logger and the dashboard profile shared by every command.
func setup() (*config.Config, *zap.Logger, dashboard.Profile, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, dashboard.Profile{}, err
	}
	if profilePath != "" {
		cfg.ProfilePath = profilePath
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, dashboard.Profile{}, fmt.Errorf("failed to create logger: %w", err)
	}

	profile, err := dashboard.LoadProfile(cfg.ProfilePath)
	if err != nil {
		return nil, nil, dashboard.Profile{}, err
	}
	return cfg, logger, profile, nil
}
