package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
)

// Process exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Run executes app with args and resolves the returned error to an exit code.
// Messages carried by cli.Exit values are written to app.ErrWriter.
func Run(ctx context.Context, app *cli.App, args []string) int {
	err := app.RunContext(ctx, args)
	if err == nil {
		return ExitOK
	}

	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		if msg := exitErr.Error(); msg != "" {
			fmt.Fprintln(app.ErrWriter, msg)
		}
		return exitErr.ExitCode()
	}

	fmt.Fprintln(app.ErrWriter, err)
	return ExitUsage
}

// usageError reports a command-line mistake along with the usage line
func usageError(c *cli.Context, format string, args ...any) error {
	return cli.Exit(fmt.Sprintf("Incorrect usage: "+format+"\nUsage: %s %s", append(args, c.App.Name, c.App.ArgsUsage)...), ExitUsage)
}

// onUsageError turns flag parsing failures into usage exits
func onUsageError(c *cli.Context, err error, _ bool) error {
	return usageError(c, "%v", err)
}

// noExit keeps urfave/cli from calling os.Exit on ExitCoder errors
func noExit(*cli.Context, error) {}
