package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/climassist/internal/trail"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show per-module progress and earned rewards",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnvironment(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		tracker, rewardSvc, err := env.tracker(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-20s  %-32s  %-10s  %8s  %5s\n",
			"ID", "Title", "Status", "Attempts", "Best")
		fmt.Fprintln(out, strings.Repeat("─", 84))

		for _, m := range env.catalog.ListModules() {
			st := tracker.Status(m.ID)
			status := "new"
			switch {
			case st.IsCompleted:
				status = "completed"
			case st.Attempts > 0:
				status = "attempted"
			}
			best := "-"
			if st.Attempts > 0 {
				best = fmt.Sprintf("%d%%", trail.Percent(st.BestScore, len(m.Quiz)))
			}
			fmt.Fprintf(out, "%-20s  %-32s  %-10s  %8d  %5s\n",
				m.ID, truncate(m.Title, 32), status, st.Attempts, best)
		}
		fmt.Fprintf(out, "\n%d of %d modules completed\n", tracker.Completed(), env.catalog.Len())

		awards, err := rewardSvc.Earned(cmd.Context())
		if err != nil {
			return err
		}
		if len(awards) == 0 {
			return nil
		}
		fmt.Fprintln(out, "\nRewards:")
		for _, a := range awards {
			fmt.Fprintf(out, "  %s %-28s  %-10s  %s\n",
				a.Rarity.Icon(), a.Reward, a.Rarity.DisplayName(), a.AwardedAt.Format("2006-01-02"))
		}
		return nil
	},
}
