package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"retrace/internal/api"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "match <stable-id> <snapshot.json>",
		Short: "Locate a stored review inside a fresh listing snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			report, err := api.Match(cmd.Context(), api.MatchRequest{
				Config:       cfg,
				StableID:     args[0],
				SnapshotPath: args[1],
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Result: %s (stage %s)\n", report.Kind, report.Stage)
			if report.Confidence > 0 {
				fmt.Fprintf(out, "Confidence: %.2f\n", report.Confidence)
			}
			fmt.Fprintf(out, "Action completed: %s\n", yesNo(report.ActionCompleted))

			if report.Located != nil {
				fmt.Fprintln(out, renderTable(
					[]string{"Stable ID", "Pos", "Date", "Rating", "Text"},
					[][]string{candidateRow(*report.Located)},
					[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight, alignLeft},
				))
			}
			if len(report.Candidates) > 0 {
				rows := make([][]string, 0, len(report.Candidates))
				for _, candidate := range report.Candidates {
					rows = append(rows, candidateRow(candidate))
				}
				fmt.Fprintln(out, "Qualifying candidates (do not act until a future snapshot disambiguates):")
				fmt.Fprintln(out, renderTable(
					[]string{"Stable ID", "Pos", "Date", "Rating", "Text"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight, alignLeft},
				))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}

func candidateRow(view api.CandidateView) []string {
	return []string{
		view.StableID,
		fmt.Sprintf("%d", view.Position),
		view.Date,
		formatRating(view.Rating),
		truncateText(view.Text, 48),
	}
}

func formatRating(rating float64) string {
	if rating <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f", rating)
}

func truncateText(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}
