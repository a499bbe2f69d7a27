package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/climassist/internal/store"
	"github.com/abhisek/climassist/internal/trail"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent quiz attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		module, _ := cmd.Flags().GetString("module")

		env, err := openEnvironment(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		events, err := env.store.EventRepo().QueryCompletions(cmd.Context(), store.QueryOpts{
			Limit:    limit,
			ModuleID: module,
		})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No quiz attempts found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-20s  %-7s  %4s  %s\n",
			"Seq", "Timestamp", "Module", "Score", "%", "Passed")
		fmt.Fprintln(out, strings.Repeat("─", 72))

		for _, e := range events {
			ok := "✓"
			if !e.Passed {
				ok = "✗"
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-20s  %-7s  %4d  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.ModuleID, 20),
				fmt.Sprintf("%d/%d", e.Score, e.Total),
				trail.Percent(e.Score, e.Total),
				ok)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of attempts to show")
	historyCmd.Flags().String("module", "", "Only show attempts for this module")
}
