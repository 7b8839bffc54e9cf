package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pagefresh/internal/app"
	"go.trai.ch/pagefresh/internal/ui/report"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "List the candidate tasks in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			format, _ := cmd.Flags().GetString("output")
			if err := validateOutput(format); err != nil {
				return err
			}

			tasks, err := c.app.Plan(cmd.Context(), app.PlanOptions{
				ConfigPath: c.configPath,
				Limit:      limit,
			})
			if err != nil {
				return err
			}

			if format == OutputJSON {
				return report.WriteJSON(cmd.OutOrStdout(), tasks)
			}
			return report.New(cmd.OutOrStdout()).Plan(tasks)
		},
	}
	cmd.Flags().IntP("limit", "n", 0, "Show only the first N tasks (0 shows all)")
	cmd.Flags().StringP("output", "o", OutputText, "Output format: text or json")
	return cmd
}
