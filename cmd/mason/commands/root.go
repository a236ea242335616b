// Package commands implements the CLI commands for the mason build tool.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"go.trai.ch/mason/internal/app"
	"go.trai.ch/mason/internal/build"
)

// CLI represents the command line interface for mason.
type CLI struct {
	components *app.Components
	rootCmd    *cobra.Command
}

// New creates a new CLI instance over the resolved components.
func New(components *app.Components) *CLI {
	rootCmd := &cobra.Command{
		Use:           "mason",
		Short:         "An incremental build tool for monorepos",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		components: components,
		rootCmd:    rootCmd,
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newTargetsCmd())
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

// SetOut redirects command output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}
