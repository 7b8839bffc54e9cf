package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pagefresh/internal/app"
	"go.trai.ch/pagefresh/internal/core/domain"
	"go.trai.ch/pagefresh/internal/ui/report"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Refresh stale pages across the whole catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			live, _ := cmd.Flags().GetBool("live")
			format, _ := cmd.Flags().GetString("output")
			if err := validateOutput(format); err != nil {
				return err
			}

			rep, err := c.app.Refresh(cmd.Context(), app.RunOptions{
				ConfigPath: c.configPath,
				DryRun:     dryRun,
				Live:       live && !dryRun,
			})
			if rep != nil {
				if renderErr := renderReport(cmd, format, rep); renderErr != nil && err == nil {
					err = renderErr
				}
			}
			if err != nil {
				return err
			}

			if rep.Failed > 0 {
				return domain.ErrRunFailed
			}
			return nil
		},
	}
	cmd.Flags().Bool("dry-run", false, "Report what would be refreshed without calling the provider")
	cmd.Flags().Bool("live", false, "Follow the run in a live terminal view")
	cmd.Flags().StringP("output", "o", OutputText, "Output format: text or json")
	return cmd
}

func renderReport(cmd *cobra.Command, format string, rep *domain.Report) error {
	if format == OutputJSON {
		return report.WriteJSON(cmd.OutOrStdout(), rep)
	}
	return report.New(cmd.OutOrStdout()).Report(rep)
}
