// Package commands implements the CLI commands for partout.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/partout/internal/app"
	"go.trai.ch/partout/internal/build"
	"go.trai.ch/partout/internal/core/domain"
)

// CLI represents the command line interface for partout.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	globals Globals
	setup   func(Globals)
}

// Application represents the application logic interface.
type Application interface {
	List(ctx context.Context, opts app.Options, query string) error
	Do(ctx context.Context, opts app.Options, kind domain.OperationKind, id string) error
	UI(ctx context.Context, opts app.Options) error
}

// Globals are the persistent flags shared by every command.
type Globals struct {
	ConfigPath string
	Verbose    bool
	LogJSON    bool
	OutputMode string
}

// New creates a new CLI instance with the given app.
// setup, when not nil, receives the parsed global flags before any command runs.
func New(a Application, setup func(Globals)) *CLI {
	rootCmd := &cobra.Command{
		Use:           "partout",
		Short:         "Browse and copy entries of a pass password store",
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
		setup:   setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.globals.ConfigPath, "config", "c", "", "Path to the configuration file")
	flags.BoolVarP(&c.globals.Verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&c.globals.LogJSON, "log-json", false, "Log as JSON")
	flags.StringVarP(&c.globals.OutputMode, "output-mode", "o", "auto", "Output mode: auto, tui, or linear")

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if c.setup != nil {
			c.setup(c.globals)
		}
	}
	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return c.app.UI(cmd.Context(), c.options())
	}

	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newShowCmd())
	rootCmd.AddCommand(c.newCopyCmd())
	rootCmd.AddCommand(c.newLoginCmd())
	rootCmd.AddCommand(c.newOTPCmd())
	rootCmd.AddCommand(c.newIDCmd())
	rootCmd.AddCommand(c.newUICmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) options() app.Options {
	return app.Options{
		ConfigPath: c.globals.ConfigPath,
		OutputMode: c.globals.OutputMode,
	}
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
