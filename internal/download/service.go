package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ytget/yt-tools/internal/model"
	"github.com/ytget/yt-tools/internal/platform"
)

// ErrNoFetcher is returned when the service has nothing to download with
var ErrNoFetcher = errors.New("no fetcher configured")

// Service runs a single download from request to finished file
type Service struct {
	fetcher  Fetcher
	reporter Reporter
	prober   Prober
	prefs    Preferences
	logger   *slog.Logger
	onUpdate func(*model.DownloadTask) // observer for task changes
}

// NewService creates a new download service
func NewService(fetcher Fetcher, reporter Reporter) *Service {
	return &Service{
		fetcher:  fetcher,
		reporter: reporter,
		prefs:    DefaultPreferences(),
		logger:   slog.Default(),
	}
}

// SetPreferences sets the template and audio preferences
func (s *Service) SetPreferences(prefs Preferences) {
	s.prefs = prefs
}

// SetProber enables post-download inspection
func (s *Service) SetProber(prober Prober) {
	s.prober = prober
}

// SetLogger sets the diagnostics logger
func (s *Service) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.onUpdate = callback
}

// Download validates req and downloads it. The returned task is non-nil
// whenever validation passed, including on failure.
func (s *Service) Download(ctx context.Context, req model.DownloadRequest) (*model.DownloadTask, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.fetcher == nil {
		return nil, ErrNoFetcher
	}

	task := model.NewDownloadTask(req)
	log := s.logger.With(slog.String("id", task.ShortID()))
	log.Debug("task created", slog.String("url", req.URL), slog.String("format", req.Format.String()))

	created, err := platform.EnsureDir(req.OutputDir)
	if err != nil {
		return task, s.fail(task, fmt.Errorf("prepare output directory: %w", err))
	}
	if created {
		s.reporter.DirCreated(req.OutputDir)
	}

	s.reporter.Request(req)

	task.Status = model.TaskStatusFetching
	s.notifyUpdate(task)

	meta, err := s.fetcher.FetchMetadata(ctx, req.URL)
	if err != nil {
		return task, s.fail(task, err)
	}
	task.Title = meta.Title
	task.Uploader = meta.DisplayUploader()
	task.Duration = meta.DisplayDuration()
	s.reporter.Metadata(meta)

	opts := BuildOptions(req, s.prefs)
	task.Status = model.TaskStatusDownloading
	s.notifyUpdate(task)

	result, err := s.fetcher.Download(ctx, req.URL, opts, func(ev model.ProgressEvent) {
		s.handleProgress(task, ev)
	})
	if err != nil {
		return task, s.fail(task, err)
	}

	if result != nil && result.OutputPath != "" {
		task.OutputPath = result.OutputPath
	}
	task.Complete()
	s.resolveOutput(task, log)
	s.notifyUpdate(task)

	log.Info("download completed",
		slog.String("path", task.OutputPath),
		slog.Duration("elapsed", task.Elapsed()),
	)
	s.reporter.Success(task)
	return task, nil
}

// handleProgress updates the task and renders downloading and finished events
func (s *Service) handleProgress(task *model.DownloadTask, ev model.ProgressEvent) {
	task.ApplyProgress(ev)
	s.notifyUpdate(task)

	switch ev.Status {
	case model.ProgressDownloading:
		s.reporter.Progress(ev)
	case model.ProgressFinished:
		s.reporter.Finished()
	}
}

// resolveOutput locates the file on disk and, if possible, probes it
func (s *Service) resolveOutput(task *model.DownloadTask, log *slog.Logger) {
	if task.OutputPath == "" {
		return
	}

	path, err := platform.FindFileWithFallback(task.OutputPath)
	if err != nil {
		log.Debug("output file not located", slog.String("path", task.OutputPath), slog.Any("error", err))
		return
	}
	task.OutputPath = path

	if s.prober == nil {
		return
	}
	summary, err := s.prober.Probe(path)
	if err != nil {
		log.Debug("probe skipped", slog.String("path", path), slog.Any("error", err))
		return
	}
	if summary.SizeBytes > 0 {
		task.FileSize = int64(summary.SizeBytes)
	}
	s.reporter.MediaSummary(summary)
}

func (s *Service) fail(task *model.DownloadTask, err error) error {
	task.Fail(err)
	s.notifyUpdate(task)
	s.logger.Debug("download failed",
		slog.String("id", task.ShortID()),
		slog.String("url", task.URL),
		slog.Any("error", err),
	)
	s.reporter.Failure(err)
	return err
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}
