package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"go.trai.ch/mason/cmd/mason/commands"
	"go.trai.ch/mason/internal/adapters/config"
	"go.trai.ch/mason/internal/adapters/events"
	"go.trai.ch/mason/internal/adapters/fs"
	"go.trai.ch/mason/internal/adapters/logger"
	"go.trai.ch/mason/internal/adapters/shell"
	"go.trai.ch/mason/internal/app"
	"go.trai.ch/mason/internal/core/domain"
)

const masonfile = `
rules:
  "//lib:core":
    srcs: [lib.txt]
    cmd:
      - [sh, -c, "mkdir -p out && cat lib.txt > out/lib.txt"]
    out: out/lib.txt
  "//app:all":
    deps: ["//lib:core"]
`

func newWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "mason.yaml"), []byte(masonfile), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "lib.txt"), []byte("library\n"), 0o644))
	return root
}

func newCLI(t *testing.T) (*commands.CLI, *bytes.Buffer) {
	t.Helper()
	bus := events.NewBus()
	t.Cleanup(func() { _ = bus.Close() })

	components := &app.Components{
		App:    app.New(config.NewLoader(), bus, shell.NewExecutor(bus), fs.NewFilesystem()),
		Bus:    bus,
		Logger: logger.New(),
	}

	cli := commands.New(components)
	var out bytes.Buffer
	cli.SetOut(&out)
	return cli, &out
}

func TestBuildCommand(t *testing.T) {
	root := newWorkspace(t)
	t.Chdir(root)

	cli, _ := newCLI(t)
	cli.SetArgs([]string{"build", "//app:all", "--plain"})
	require.NoError(t, cli.Execute(context.Background()))

	content, err := os.ReadFile(filepath.Join(root, "out", "lib.txt"))
	require.NoError(t, err)
	require.Equal(t, "library\n", string(content))
}

func TestBuildCommand_NoArgsBuildsEverything(t *testing.T) {
	root := newWorkspace(t)
	t.Chdir(root)

	cli, _ := newCLI(t)
	cli.SetArgs([]string{"build", "--plain"})
	require.NoError(t, cli.Execute(context.Background()))

	content, err := os.ReadFile(filepath.Join(root, "out", "lib.txt"))
	require.NoError(t, err)
	require.Equal(t, "library\n", string(content))
}

func TestBuildCommand_UnknownTarget(t *testing.T) {
	root := newWorkspace(t)
	t.Chdir(root)

	cli, _ := newCLI(t)
	cli.SetArgs([]string{"build", "//app:missing", "--plain"})
	require.ErrorIs(t, cli.Execute(context.Background()), domain.ErrRuleNotFound)
}

func TestTargetsCommand(t *testing.T) {
	root := newWorkspace(t)
	t.Chdir(root)

	cli, out := newCLI(t)
	cli.SetArgs([]string{"targets"})
	require.NoError(t, cli.Execute(context.Background()))
	require.Equal(t, "//app:all\n//lib:core\n", out.String())
}

func TestVersionCommand(t *testing.T) {
	cli, out := newCLI(t)
	cli.SetArgs([]string{"version"})
	require.NoError(t, cli.Execute(context.Background()))
	require.Contains(t, out.String(), "dev")
}
