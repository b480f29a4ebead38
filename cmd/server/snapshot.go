package main

import (
	"encoding/json"
	"fmt"

	"github.com/BerylCAtieno/client-dashboard/internal/dashboard"
	"github.com/BerylCAtieno/client-dashboard/internal/report"
	"github.com/BerylCAtieno/client-dashboard/internal/schemas"
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print the initial dashboard state as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, _, profile, err := setup()
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(dashboard.NewState(profile), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}
		if err := schemas.ValidateSnapshot(data); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the summary report for the initial dashboard state",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, _, profile, err := setup()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), report.Build(dashboard.NewState(profile)).Text())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd, reportCmd)
}
