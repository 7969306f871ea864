package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ytget/yt-tools/internal/app"
)

// set by -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := app.NewStreamKeyApp(version, os.Stdout, os.Stderr)
	code := app.RunStreamKey(ctx, cli, os.Args)

	stop()
	os.Exit(code)
}
