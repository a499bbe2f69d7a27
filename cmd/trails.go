package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/climassist/internal/catalog"
	"github.com/abhisek/climassist/internal/config"
)

var trailsCmd = &cobra.Command{
	Use:   "trails",
	Short: "Browse the learning trails",
}

var trailsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all modules (optionally filtered by hazard)",
	RunE: func(cmd *cobra.Command, args []string) error {
		hazard, _ := cmd.Flags().GetString("hazard")

		cat, err := catalogOnly(cmd)
		if err != nil {
			return err
		}

		modules := cat.ListModules()
		if hazard != "" {
			modules = cat.ByHazard(catalog.Hazard(hazard))
			if len(modules) == 0 {
				return fmt.Errorf("no modules found for hazard %q", hazard)
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-20s  %-32s  %-12s  %5s  %9s  %s\n",
			"ID", "Title", "Hazard", "Pages", "Questions", "Time")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, m := range modules {
			fmt.Fprintf(out, "%-20s  %-32s  %-12s  %5d  %9d  %s\n",
				m.ID, truncate(m.Title, 32), m.Hazard.DisplayName(),
				len(m.Pages), len(m.Quiz), m.EstimatedTime)
		}

		fmt.Fprintf(out, "\n%d modules\n", len(modules))
		return nil
	},
}

var trailsShowCmd = &cobra.Command{
	Use:   "show <module-id>",
	Short: "Show a module's pages and questions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, _ := cmd.Flags().GetBool("answers")

		cat, err := catalogOnly(cmd)
		if err != nil {
			return err
		}
		m, err := cat.GetModule(args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", m.Title, m.ID)
		if m.Description != "" {
			fmt.Fprintln(out, m.Description)
		}
		fmt.Fprintf(out, "Reward: %s\n\n", m.Reward)

		for i, p := range m.Pages {
			fmt.Fprintf(out, "Page %d [%s] %s\n", i+1, p.Kind, p.Title)
		}
		if len(m.Pages) > 0 {
			fmt.Fprintln(out)
		}

		for i, q := range m.Quiz {
			fmt.Fprintf(out, "Q%d. %s\n", i+1, q.Prompt)
			for _, o := range q.Options {
				mark := " "
				if answers && o == q.CorrectAnswer {
					mark = "*"
				}
				fmt.Fprintf(out, "  %s %s\n", mark, o)
			}
		}
		return nil
	},
}

// catalogOnly loads the catalog without opening the store.
func catalogOnly(cmd *cobra.Command) (*catalog.Catalog, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return loadCatalog(cmd, cfg)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	trailsListCmd.Flags().String("hazard", "", "Filter by hazard (flood, landslide, heat, storm, general)")
	trailsShowCmd.Flags().Bool("answers", false, "Mark the correct option of each question")

	trailsCmd.AddCommand(trailsListCmd)
	trailsCmd.AddCommand(trailsShowCmd)
}
