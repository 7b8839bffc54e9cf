// Package commands implements the CLI commands for pagefresh.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/pagefresh/internal/app"
	"go.trai.ch/pagefresh/internal/build"
	"go.trai.ch/pagefresh/internal/core/domain"
	"go.trai.ch/zerr"
)

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// CLI represents the command line interface for pagefresh.
type CLI struct {
	app        Application
	rootCmd    *cobra.Command
	configPath string
	jsonLogs   bool
	setJSON    func(bool)
}

// Application represents the application logic interface.
type Application interface {
	Refresh(ctx context.Context, opts app.RunOptions) (*domain.Report, error)
	Plan(ctx context.Context, opts app.PlanOptions) ([]domain.Task, error)
	Generate(ctx context.Context, opts app.GenerateOptions) (string, error)
	Serve(ctx context.Context, opts app.ServeOptions) error
}

// Option configures a CLI.
type Option func(*CLI)

// WithJSONLogSwitch registers the function that --json-logs toggles.
func WithJSONLogSwitch(fn func(bool)) Option {
	return func(c *CLI) {
		c.setJSON = fn
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pagefresh",
		Short:         "Keep generated landing-page content fresh",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", domain.ConfigFileName, "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVar(&c.jsonLogs, "json-logs", false, "Write logs as JSON")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if c.jsonLogs && c.setJSON != nil {
			c.setJSON(true)
		}
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newPlanCmd())
	rootCmd.AddCommand(c.newGenerateCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func validateOutput(format string) error {
	switch format {
	case OutputText, OutputJSON:
		return nil
	default:
		return zerr.With(zerr.Wrap(domain.ErrInvalidOutputFormat, fmt.Sprintf("output %q", format)), "output", format)
	}
}
