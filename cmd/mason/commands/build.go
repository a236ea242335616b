package commands

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"go.trai.ch/mason/internal/adapters/logger"
	"go.trai.ch/mason/internal/adapters/progress"
	"go.trai.ch/mason/internal/app"
	"go.trai.ch/mason/internal/tui"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [targets...]",
		Short: "Build the named targets and their dependencies",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			noRemote, _ := cmd.Flags().GetBool("no-remote")
			traceKeys, _ := cmd.Flags().GetBool("trace-keys")
			jobs, _ := cmd.Flags().GetInt("jobs")
			plain, _ := cmd.Flags().GetBool("plain")
			opts := app.Options{
				NoRemote:    noRemote,
				TraceKeys:   traceKeys,
				Parallelism: jobs,
			}

			root, err := os.Getwd()
			if err != nil {
				return err
			}

			// No explicit targets builds everything in the workspace.
			if len(args) == 0 {
				args, err = c.components.App.Targets(root)
				if err != nil {
					return err
				}
			}

			if plain || !isatty.IsTerminal(os.Stdout.Fd()) {
				c.components.Bus.Subscribe(logger.NewSubscriber(c.components.Logger))
				return c.components.App.Run(cmd.Context(), root, args, opts)
			}
			return c.buildWithTUI(cmd.Context(), root, args, opts)
		},
	}
	cmd.Flags().Bool("no-remote", false, "Disable the remote artifact cache tier")
	cmd.Flags().Bool("trace-keys", false, "Log the contributions folded into each rule key")
	cmd.Flags().IntP("jobs", "j", 0, "Number of concurrent rule builds (0 means one per CPU)")
	cmd.Flags().Bool("plain", false, "Plain log output instead of the live rule list")
	return cmd
}

// buildWithTUI renders the build as a live rule list. Closing the bus here
// flushes the event stream into the renderer; the build invocation is the
// process's terminal act, so nothing posts afterwards.
func (c *CLI) buildWithTUI(ctx context.Context, root string, targets []string, opts app.Options) error {
	pipe := progress.NewPipe()
	renderer := progress.NewRenderer(pipe)
	c.components.Bus.Subscribe(renderer)

	program := tea.NewProgram(tui.NewModel(pipe), tea.WithContext(ctx))
	uiDone := make(chan error, 1)
	go func() {
		_, err := program.Run()
		uiDone <- err
	}()

	buildErr := c.components.App.Run(ctx, root, targets, opts)
	_ = c.components.Bus.Close()
	_ = renderer.Close()

	if uiErr := <-uiDone; uiErr != nil && buildErr == nil {
		buildErr = uiErr
	}
	return buildErr
}
