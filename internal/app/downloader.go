package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ytget/yt-tools/internal/config"
	"github.com/ytget/yt-tools/internal/console"
	"github.com/ytget/yt-tools/internal/download"
	"github.com/ytget/yt-tools/internal/mediainfo"
	"github.com/ytget/yt-tools/internal/model"
	"github.com/ytget/yt-tools/internal/platform"
)

// DownloaderName is the downloader's program name
const DownloaderName = "yt-downloader"

// DownloaderDeps are the collaborators the downloader command builds on.
// Zero values are replaced with the real implementations.
type DownloaderDeps struct {
	Stdout     io.Writer
	Stderr     io.Writer
	NewFetcher func(s *config.Settings, logger *slog.Logger) download.Fetcher
	NewProber  func(s *config.Settings) download.Prober
	Reveal     func(path string) error
}

func (d *DownloaderDeps) withDefaults() {
	if d.Stdout == nil {
		d.Stdout = os.Stdout
	}
	if d.Stderr == nil {
		d.Stderr = os.Stderr
	}
	if d.NewFetcher == nil {
		d.NewFetcher = func(s *config.Settings, logger *slog.Logger) download.Fetcher {
			f := download.NewYTDLPFetcher(s.YTDLPPath, s.ProgressInterval)
			f.SetLogger(logger)
			return f
		}
	}
	if d.NewProber == nil {
		d.NewProber = func(s *config.Settings) download.Prober {
			return mediainfo.NewProber(s.FFprobePath)
		}
	}
	if d.Reveal == nil {
		d.Reveal = platform.OpenFileInManager
	}
}

type downloaderCmd struct {
	deps DownloaderDeps
}

// NewDownloaderApp builds the yt-downloader command
func NewDownloaderApp(version string, deps DownloaderDeps) *cli.App {
	deps.withDefaults()
	cmd := &downloaderCmd{deps: deps}

	return &cli.App{
		Name:            DownloaderName,
		Usage:           "download a single YouTube video, short or audio track with yt-dlp",
		ArgsUsage:       "URL",
		Description:     "Settings are read from --config and the environment: " + strings.Join(config.EnvironmentVariables(), ", ") + ".",
		Version:         version,
		Writer:          deps.Stdout,
		ErrWriter:       deps.Stderr,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output `DIR`",
				Value:   config.DefaultOutputDir,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "video format/quality: " + strings.Join(model.FormatNames(), ", "),
				Value:   string(model.DefaultFormat),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "yaml settings `FILE`",
				EnvVars: []string{config.EnvConfigFile},
			},
			&cli.StringFlag{
				Name:  "filename",
				Usage: "yt-dlp output `TEMPLATE`",
			},
			&cli.BoolFlag{
				Name:  "install-deps",
				Usage: "download yt-dlp (and ffmpeg for audio) if missing",
			},
			&cli.BoolFlag{
				Name:  "reveal",
				Usage: "open the output folder when done",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "debug logging",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "errors and results only",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "log as JSON",
			},
		},
		OnUsageError:   onUsageError,
		ExitErrHandler: noExit,
		Action:         cmd.action,
	}
}

// RunDownloader runs the downloader and returns the exit code
func RunDownloader(ctx context.Context, c *cli.App, args []string) int {
	return Run(ctx, c, hoistFlags(args, c.Flags))
}

func (d *downloaderCmd) action(c *cli.Context) error {
	quiet := c.Bool("quiet")
	printer := console.NewPrinter(d.deps.Stdout, quiet)

	if c.NArg() == 0 && c.NumFlags() == 0 {
		printer.Banner(c.App.Name)
		return nil
	}

	logger := newLogger(d.deps.Stderr, c.Bool("verbose"), quiet, c.Bool("log-json"))

	settings, err := d.settings(c)
	if err != nil {
		return usageError(c, "%v", err)
	}

	format, err := model.ParseFormat(settings.Format)
	if err != nil {
		return usageError(c, "%v", err)
	}

	switch c.NArg() {
	case 0:
		return usageError(c, "missing URL")
	case 1:
	default:
		return usageError(c, "expected one URL, got %d", c.NArg())
	}

	outputDir, err := settings.ResolvedOutputDir()
	if err != nil {
		return cli.Exit(err.Error(), ExitFailure)
	}
	req := model.DownloadRequest{URL: c.Args().First(), OutputDir: outputDir, Format: format}
	if err := req.Validate(); err != nil {
		return usageError(c, "%v", err)
	}

	fetcher := d.deps.NewFetcher(settings, logger)

	if c.Bool("install-deps") {
		if inst, ok := fetcher.(download.Installer); ok {
			if err := inst.Install(c.Context, format.ExtractsAudio()); err != nil {
				return cli.Exit(fmt.Sprintf("Dependency install failed: %v", err), ExitFailure)
			}
		} else {
			logger.Warn("fetcher cannot install dependencies")
		}
	}

	svc := download.NewService(fetcher, printer)
	svc.SetLogger(logger)
	svc.SetPreferences(download.Preferences{
		FilenameTemplate: settings.FilenameTemplate,
		AudioCodec:       settings.AudioCodec,
		AudioQuality:     settings.AudioQuality,
		FFmpegLocation:   settings.FFmpegPath,
	})
	if prober := d.deps.NewProber(settings); prober != nil {
		svc.SetProber(prober)
	}
	svc.SetUpdateCallback(func(t *model.DownloadTask) {
		if t.Status.IsFinished() {
			logger.Debug("task finished",
				slog.String("id", t.ShortID()),
				slog.String("status", t.Status.String()),
				slog.Duration("elapsed", t.Elapsed()),
			)
			return
		}
		logger.Debug("task update",
			slog.String("id", t.ShortID()),
			slog.String("status", t.Status.String()),
			slog.Int("percent", t.Percent),
			slog.String("eta", t.GetETAString()),
		)
	})

	task, err := svc.Download(c.Context, req)
	if err != nil {
		// the printer has already reported the failure
		return cli.Exit("", ExitFailure)
	}

	if c.Bool("reveal") {
		target := task.OutputPath
		if target == "" {
			target = task.OutputDir
		}
		if err := d.deps.Reveal(target); err != nil {
			logger.Warn("cannot open file manager", slog.String("path", target), slog.Any("error", err))
		}
	}
	return nil
}

// settings loads configuration and applies explicitly set flags on top
func (d *downloaderCmd) settings(c *cli.Context) (*config.Settings, error) {
	settings, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("output") {
		settings.OutputDir = c.String("output")
	}
	if c.IsSet("format") {
		settings.Format = c.String("format")
	}
	if c.IsSet("filename") {
		settings.SetFilenameTemplate(c.String("filename"))
	}
	return settings, nil
}
