package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/pagefresh/internal/app"
	"go.trai.ch/pagefresh/internal/core/domain"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Regenerate a single page now, ignoring freshness",
		Example: "  pagefresh generate --kind industry --slug plumbers\n" +
			"  pagefresh generate --kind combo --slug plumbers --city Berlin --country Germany",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, _ := cmd.Flags().GetString("kind")
			slug, _ := cmd.Flags().GetString("slug")
			city, _ := cmd.Flags().GetString("city")
			country, _ := cmd.Flags().GetString("country")
			extra, _ := cmd.Flags().GetString("context")

			msg, err := c.app.Generate(cmd.Context(), app.GenerateOptions{
				ConfigPath: c.configPath,
				Request: domain.TaskRequest{
					Kind:    domain.TaskKind(kind),
					Slug:    slug,
					City:    city,
					Country: country,
				},
				Context: extra,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), msg)
			return err
		},
	}
	cmd.Flags().StringP("kind", "k", "", "Page kind: industry, location or combo")
	cmd.Flags().String("slug", "", "Industry slug (industry and combo pages)")
	cmd.Flags().String("city", "", "City (location and combo pages)")
	cmd.Flags().String("country", "", "Country (location and combo pages)")
	cmd.Flags().String("context", "", "Additional free-text context for the provider")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}
