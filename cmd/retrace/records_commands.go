package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"retrace/internal/api"
)

func newRecordsCommand(ctx *commandContext) *cobra.Command {
	recordsCmd := &cobra.Command{
		Use:   "records",
		Short: "Inspect stored review records",
	}

	recordsCmd.AddCommand(newRecordsListCommand(ctx))
	recordsCmd.AddCommand(newRecordsShowCommand(ctx))
	recordsCmd.AddCommand(newRecordsReplyCommand(ctx))

	return recordsCmd
}

func newRecordsListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			views, err := api.ListRecords(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, views)
			}

			if len(views) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stored records")
				return nil
			}

			rows := make([][]string, 0, len(views))
			for _, view := range views {
				rows = append(rows, []string{
					view.StableID,
					fmt.Sprintf("%d", view.Position),
					view.Date,
					formatRating(view.Rating),
					yesNo(view.ReplyText != ""),
					truncateText(view.Text, 40),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Stable ID", "Pos", "Date", "Rating", "Reply", "Text"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}

func newRecordsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <stable-id>",
		Short: "Show one stored record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			view, err := api.GetRecord(cmd.Context(), cfg, args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, view)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Stable ID:  %s\n", view.StableID)
			fmt.Fprintf(out, "Record ID:  %s\n", view.ID)
			fmt.Fprintf(out, "Position:   %d\n", view.Position)
			fmt.Fprintf(out, "Salt:       %s\n", view.Salt)
			fmt.Fprintf(out, "Date:       %s\n", orDash(view.Date))
			fmt.Fprintf(out, "Rating:     %s\n", orDash(formatRating(view.Rating)))
			fmt.Fprintf(out, "Collected:  %s\n", view.CreatedAt)
			fmt.Fprintf(out, "Text:       %s\n", view.Text)
			if view.ReplyText != "" {
				fmt.Fprintf(out, "Reply:      %s\n", view.ReplyText)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}

func newRecordsReplyCommand(ctx *commandContext) *cobra.Command {
	var replyText string

	cmd := &cobra.Command{
		Use:   "reply <stable-id>",
		Short: "Attach composed reply text to a stored record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if replyText == "" {
				return fmt.Errorf("--text is required")
			}

			if err := api.AttachReply(cmd.Context(), cfg, args[0], replyText); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Attached reply to %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&replyText, "text", "", "Reply text to attach")
	return cmd
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
