package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andriilab/sdv/internal/cli"
	sdverr "github.com/andriilab/sdv/pkg/errors"
)

// Exit codes. 130 follows the shell convention for SIGINT.
const (
	exitFailure   = 1
	exitUsage     = 2
	exitInterrupt = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err == nil {
		return
	}
	code := exitCode(err)
	if code != exitInterrupt {
		fmt.Fprintln(os.Stderr, sdverr.UserMessage(err))
	}
	os.Exit(code)
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return exitInterrupt
	case sdverr.IsConfiguration(err):
		return exitUsage
	default:
		return exitFailure
	}
}

func run(ctx context.Context) error {
	var verbose, quiet bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true

	flags := root.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "log debug details")
	flags.BoolVarP(&quiet, "quiet", "q", false, "log warnings and errors only")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.PersistentPreRunE = func(*cobra.Command, []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		} else if quiet {
			c.SetLogLevel(cli.LogWarn)
		}
		return nil
	}
	return root.ExecuteContext(ctx)
}
