package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ytget/yt-tools/internal/streamkey"
)

// StreamKeyName is the extractor's program name
const StreamKeyName = "ig-streamkey"

// NewStreamKeyApp builds the ig-streamkey command
func NewStreamKeyApp(version string, stdout, stderr io.Writer) *cli.App {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &cli.App{
		Name:            StreamKeyName,
		Usage:           "extract the Instagram Live stream key from a HAR capture",
		ArgsUsage:       "HAR_FILE",
		Version:         version,
		Writer:          stdout,
		ErrWriter:       stderr,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "output",
				Usage: "result format: " + strings.Join(streamkey.OutputFormats(), ", "),
				Value: streamkey.OutputText,
			},
		},
		OnUsageError: func(c *cli.Context, err error, _ bool) error {
			return streamKeyUsage(c, err.Error())
		},
		ExitErrHandler: noExit,
		Action:         streamKeyAction,
	}
}

// RunStreamKey runs the extractor and returns the exit code
func RunStreamKey(ctx context.Context, c *cli.App, args []string) int {
	return Run(ctx, c, hoistFlags(args, c.Flags))
}

func streamKeyAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return streamKeyUsage(c, "")
	}

	output, err := streamkey.ParseOutput(c.String("output"))
	if err != nil {
		return streamKeyUsage(c, err.Error())
	}

	path := c.Args().First()
	doc, err := streamkey.Load(path)
	if err != nil {
		return cli.Exit(loadErrorMessage(path, err), ExitFailure)
	}

	key, found := streamkey.Extract(doc, streamkey.DefaultMatcher)
	if err := streamkey.Render(c.App.Writer, streamkey.NewResult(path, key, found), output); err != nil {
		return cli.Exit(fmt.Sprintf("Error writing result: %v", err), ExitFailure)
	}
	return nil
}

// streamKeyUsage prints usage and capture instructions and exits 1
func streamKeyUsage(c *cli.Context, problem string) error {
	var b strings.Builder
	if problem != "" {
		fmt.Fprintf(&b, "Error: %s\n", problem)
	}
	fmt.Fprintf(&b, "Usage: %s [--output text|json|yaml] <har_file>\n\n", c.App.Name)
	b.WriteString(streamkey.CaptureInstructions)
	return cli.Exit(strings.TrimRight(b.String(), "\n"), ExitFailure)
}

func loadErrorMessage(path string, err error) string {
	switch {
	case errors.Is(err, streamkey.ErrFileNotFound):
		return fmt.Sprintf("Error: File '%s' not found", path)
	case errors.Is(err, streamkey.ErrInvalidJSON):
		return fmt.Sprintf("Error: Invalid JSON in '%s'", path)
	default:
		return fmt.Sprintf("Error processing file: %v", err)
	}
}
