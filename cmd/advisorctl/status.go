package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"advisor_backend/internal/app/di"
	statususecase "advisor_backend/internal/feature/status/usecase"
)

var statusCmd = &cobra.Command{
	Use:   "status <session-id>",
	Short: "Print the status record of a session as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		infra, err := di.OpenStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer infra.Close()

		tracker := statususecase.NewTracker(di.NewStatusStore(infra.Redis, infra.DB))
		rec, err := tracker.Current(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
