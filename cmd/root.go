package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "climassist",
	Short: "Disaster preparedness trails in your terminal",
	Long: `ClimAssist teaches disaster preparedness through short learning trails.
Each trail is a module of content pages followed by a quiz; score 70% or
better to complete it and earn its reward.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CLIMASSIST_DB env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a YAML trail file (overrides CLIMASSIST_CATALOG env var)")

	rootCmd.AddCommand(trailsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(versionCmd)
}
