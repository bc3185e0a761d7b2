package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"retrace/internal/api"
)

func newCollectCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "collect <snapshot.json>",
		Short: "Fingerprint a listing snapshot and store new reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			summary, err := api.Collect(cmd.Context(), api.CollectRequest{
				Config:       cfg,
				SnapshotPath: args[0],
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, summary)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Pass %s over salt %s\n", summary.PassID, summary.Salt)
			fmt.Fprintf(out, "Captured %d reviews: %d new, %d already stored\n",
				summary.Captured, summary.Inserted, summary.Known)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}
