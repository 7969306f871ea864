package download

import (
	"context"

	"github.com/ytget/yt-tools/internal/mediainfo"
	"github.com/ytget/yt-tools/internal/model"
)

// ProgressFunc receives progress events synchronously from the fetcher
type ProgressFunc func(model.ProgressEvent)

// Result is what a completed download reports back
type Result struct {
	OutputPath string // best guess of the final file path, may be empty
}

// Fetcher is the media library seam: metadata lookup and download.
type Fetcher interface {
	FetchMetadata(ctx context.Context, url string) (*model.VideoMetadata, error)
	Download(ctx context.Context, url string, opts model.FetchOptions, onProgress ProgressFunc) (*Result, error)
}

// Installer is implemented by fetchers that can provision their own binaries
type Installer interface {
	Install(ctx context.Context, withFFmpeg bool) error
}

// Prober inspects a finished file
type Prober interface {
	Probe(path string) (*mediainfo.Summary, error)
}

// Reporter renders user-facing status for a run
type Reporter interface {
	DirCreated(dir string)
	Request(req model.DownloadRequest)
	Metadata(meta *model.VideoMetadata)
	Progress(ev model.ProgressEvent)
	Finished()
	MediaSummary(summary *mediainfo.Summary)
	Success(task *model.DownloadTask)
	Failure(err error)
}
