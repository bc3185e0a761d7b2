package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"retrace/internal/api"
	"retrace/internal/ledger"
)

func newLedgerCommand(ctx *commandContext) *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect and update the action ledger",
	}

	ledgerCmd.AddCommand(newLedgerShowCommand(ctx))
	ledgerCmd.AddCommand(newLedgerMarkCommand(ctx))

	return ledgerCmd
}

func newLedgerShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <record-id>",
		Short: "Show ledger state for a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			entry, err := api.GetLedgerEntry(cmd.Context(), cfg, args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, entry)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Record:    %s\n", entry.RecordID)
			fmt.Fprintf(out, "Completed: %s\n", yesNo(entry.Completed))
			if entry.Outcome != nil {
				fmt.Fprintf(out, "Action:    %s\n", entry.Outcome.Action)
				if entry.Outcome.Detail != "" {
					fmt.Fprintf(out, "Detail:    %s\n", entry.Outcome.Detail)
				}
				fmt.Fprintf(out, "At:        %s\n", entry.Outcome.CompletedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}

func newLedgerMarkCommand(ctx *commandContext) *cobra.Command {
	var action string
	var detail string

	cmd := &cobra.Command{
		Use:   "mark <record-id>",
		Short: "Record a confirmed downstream action for a record",
		Long: "Record that the downstream action for a stored record was confirmed " +
			"by the platform. Mark only after confirmation, never after a mere " +
			"attempt; marking twice is a no-op.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			err = api.MarkCompleted(cmd.Context(), api.MarkCompletedRequest{
				Config:   cfg,
				RecordID: args[0],
				Outcome:  ledger.Outcome{Action: action, Detail: detail},
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s completed (%s)\n", args[0], action)
			return nil
		},
	}

	cmd.Flags().StringVar(&action, "action", "reply_posted", "Action name to record")
	cmd.Flags().StringVar(&detail, "detail", "", "Optional action detail")
	return cmd
}
