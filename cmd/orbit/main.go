// Command orbit lays out mindmaps on concentric rings.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/orbit/internal/cli"
	"github.com/matzehuels/orbit/pkg/errors"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, context.Canceled):
		return 130
	case errors.GetCode(err) != "":
		fmt.Fprintf(os.Stderr, "error: %s (%s)\n", errors.UserMessage(err), errors.GetCode(err))
		return 1
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
}
