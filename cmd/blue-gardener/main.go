// Package main is the entry point for the blue-gardener CLI.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/thoreinstein/blue-gardener/cmd/blue-gardener/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := commands.Execute(ctx)
	stop()

	os.Exit(commands.ReportError(os.Stderr, err))
}
