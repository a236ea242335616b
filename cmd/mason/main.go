// Package main is the entry point for the mason CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"

	"go.trai.ch/mason/cmd/mason/commands"
	"go.trai.ch/mason/internal/app"
	_ "go.trai.ch/mason/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available if initialization failed; write directly.
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return 1
	}

	cli := commands.New(components)
	execErr := cli.Execute(ctx)

	// Flush any buffered events before reporting.
	_ = components.Bus.Close()

	if execErr != nil {
		// zerr prints a report with stack trace and metadata under %+v.
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", execErr)
		return 1
	}
	return 0
}
