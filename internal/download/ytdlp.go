package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/yt-tools/internal/model"
)

// DefaultProgressInterval is how often yt-dlp progress is sampled
const DefaultProgressInterval = 500 * time.Millisecond

// YTDLPFetcher drives the yt-dlp binary through go-ytdlp
type YTDLPFetcher struct {
	executable       string
	progressInterval time.Duration
	logger           *slog.Logger
}

// NewYTDLPFetcher creates a fetcher; an empty executable means yt-dlp from PATH
// (or the copy provisioned by Install)
func NewYTDLPFetcher(executable string, progressInterval time.Duration) *YTDLPFetcher {
	if progressInterval <= 0 {
		progressInterval = DefaultProgressInterval
	}
	return &YTDLPFetcher{
		executable:       executable,
		progressInterval: progressInterval,
		logger:           slog.Default(),
	}
}

// SetLogger replaces the logger used for command diagnostics
func (f *YTDLPFetcher) SetLogger(logger *slog.Logger) {
	if logger != nil {
		f.logger = logger
	}
}

func (f *YTDLPFetcher) command() *ytdlp.Command {
	dl := ytdlp.New()
	if f.executable != "" {
		dl.SetExecutable(f.executable)
	}
	return dl
}

// ErrNoMetadata is returned when yt-dlp printed no info object
var ErrNoMetadata = errors.New("yt-dlp returned no metadata")

// FetchMetadata asks yt-dlp for the video info without downloading it
func (f *YTDLPFetcher) FetchMetadata(ctx context.Context, url string) (*model.VideoMetadata, error) {
	f.logger.Debug("fetching metadata", slog.String("url", url))

	res, err := f.command().
		NoPlaylist().
		SkipDownload().
		DumpJSON().
		Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch metadata: %w", err)
	}

	infos, err := res.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	if len(infos) == 0 || infos[0] == nil {
		return nil, ErrNoMetadata
	}
	info := infos[0]

	meta := &model.VideoMetadata{
		ID:        info.ID,
		Title:     stringValue(info.Title),
		Uploader:  stringValue(info.Uploader),
		Extension: info.Extension,
	}
	if meta.Uploader == "" {
		meta.Uploader = stringValue(info.Channel)
	}
	if info.Duration != nil {
		meta.Duration = *info.Duration
	}
	return meta, nil
}

// Download runs yt-dlp with opts, forwarding progress to onProgress
func (f *YTDLPFetcher) Download(ctx context.Context, url string, opts model.FetchOptions, onProgress ProgressFunc) (*Result, error) {
	dl := f.command().
		Output(opts.OutputTemplate).
		Format(opts.Selector)

	if opts.NoPlaylist {
		dl.NoPlaylist()
	}
	if opts.ExtractAudio {
		dl.ExtractAudio()
		if opts.AudioCodec != "" {
			dl.AudioFormat(opts.AudioCodec)
		}
		if opts.AudioQuality != "" {
			dl.AudioQuality(opts.AudioQuality)
		}
	}
	if opts.FFmpegLocation != "" {
		dl.FFmpegLocation(opts.FFmpegLocation)
	}

	var lastFile string
	dl.ProgressFunc(f.progressInterval, func(update ytdlp.ProgressUpdate) {
		if update.Filename != "" {
			lastFile = update.Filename
		}
		if onProgress != nil {
			onProgress(progressEvent(update, time.Now()))
		}
	})

	f.logger.Debug("starting yt-dlp",
		slog.String("url", url),
		slog.String("format", opts.Selector),
		slog.String("output", opts.OutputTemplate),
		slog.Bool("extract_audio", opts.ExtractAudio),
	)

	res, err := dl.Run(ctx, url)
	if err != nil {
		if res != nil && res.Stderr != "" {
			f.logger.Debug("yt-dlp stderr", slog.String("stderr", res.Stderr))
		}
		return nil, fmt.Errorf("download %s: %w", url, err)
	}

	return &Result{OutputPath: expectedOutputPath(lastFile, opts)}, nil
}

// Install provisions yt-dlp, plus ffmpeg/ffprobe when withFFmpeg is set
func (f *YTDLPFetcher) Install(ctx context.Context, withFFmpeg bool) error {
	resolved, err := ytdlp.Install(ctx, nil)
	if err != nil {
		return fmt.Errorf("install yt-dlp: %w", err)
	}
	f.logger.Info("yt-dlp ready",
		slog.String("path", resolved.Executable),
		slog.String("version", resolved.Version),
	)

	if !withFFmpeg {
		return nil
	}

	if _, err := ytdlp.InstallFFmpeg(ctx, nil); err != nil {
		return fmt.Errorf("install ffmpeg: %w", err)
	}
	f.logger.Info("ffmpeg ready")
	return nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// progressEvent converts a go-ytdlp update; speed is averaged since start
func progressEvent(update ytdlp.ProgressUpdate, now time.Time) model.ProgressEvent {
	ev := model.ProgressEvent{
		Status:          model.ProgressStatus(update.Status),
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
		Filename:        update.Filename,
		ETA:             update.ETA(),
	}

	if update.TotalBytes > 0 {
		ev.Percent = float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
		if ev.Percent > 100 {
			ev.Percent = 100
		}
	}

	if !update.Started.IsZero() {
		elapsed := now.Sub(update.Started)
		if elapsed.Seconds() > 0 {
			ev.BytesPerSecond = float64(update.DownloadedBytes) / elapsed.Seconds()
		}
	}

	if update.Info != nil && update.Info.Title != nil {
		ev.Title = *update.Info.Title
	}

	return ev
}
