package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all progress and rewards",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("this erases all progress and rewards; re-run with --yes to confirm")
		}

		env, err := openEnvironment(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		tracker, _, err := env.tracker(cmd.Context())
		if err != nil {
			return err
		}
		if err := tracker.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Progress and rewards erased.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
