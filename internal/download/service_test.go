package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-tools/internal/mediainfo"
	"github.com/ytget/yt-tools/internal/model"
)

type stubFetcher struct {
	meta        *model.VideoMetadata
	metaErr     error
	downloadErr error
	events      []model.ProgressEvent
	writeFile   string

	metaCalls     int
	downloadCalls int
	gotOpts       model.FetchOptions
}

func (f *stubFetcher) FetchMetadata(_ context.Context, _ string) (*model.VideoMetadata, error) {
	f.metaCalls++
	if f.metaErr != nil {
		return nil, f.metaErr
	}
	if f.meta == nil {
		return &model.VideoMetadata{}, nil
	}
	return f.meta, nil
}

func (f *stubFetcher) Download(_ context.Context, _ string, opts model.FetchOptions, onProgress ProgressFunc) (*Result, error) {
	f.downloadCalls++
	f.gotOpts = opts
	for _, ev := range f.events {
		onProgress(ev)
	}
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	if f.writeFile != "" {
		if err := os.WriteFile(f.writeFile, []byte("data"), 0o644); err != nil {
			return nil, err
		}
	}
	return &Result{OutputPath: f.writeFile}, nil
}

type recordingReporter struct {
	dirCreated []string
	requests   []model.DownloadRequest
	metadata   []*model.VideoMetadata
	progress   []model.ProgressEvent
	finished   int
	summaries  []*mediainfo.Summary
	successes  []*model.DownloadTask
	failures   []error
}

func (r *recordingReporter) DirCreated(dir string) { r.dirCreated = append(r.dirCreated, dir) }
func (r *recordingReporter) Request(req model.DownloadRequest) { r.requests = append(r.requests, req) }
func (r *recordingReporter) Metadata(meta *model.VideoMetadata) { r.metadata = append(r.metadata, meta) }
func (r *recordingReporter) Progress(ev model.ProgressEvent) { r.progress = append(r.progress, ev) }
func (r *recordingReporter) Finished() { r.finished++ }
func (r *recordingReporter) MediaSummary(s *mediainfo.Summary) { r.summaries = append(r.summaries, s) }
func (r *recordingReporter) Success(task *model.DownloadTask) { r.successes = append(r.successes, task) }
func (r *recordingReporter) Failure(err error) { r.failures = append(r.failures, err) }

type stubProber struct {
	summary *mediainfo.Summary
	err     error
	paths   []string
}

func (p *stubProber) Probe(path string) (*mediainfo.Summary, error) {
	p.paths = append(p.paths, path)
	return p.summary, p.err
}

func newRequest(dir string, format model.Format) model.DownloadRequest {
	return model.DownloadRequest{
		URL:       "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		OutputDir: dir,
		Format:    format,
	}
}

func TestService_DownloadSuccess(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads")
	fetcher := &stubFetcher{
		meta: &model.VideoMetadata{Title: "Never Gonna Give You Up", Uploader: "Rick Astley", Duration: 212},
		events: []model.ProgressEvent{
			{Status: model.ProgressDownloading, Percent: 50, DownloadedBytes: 50, TotalBytes: 100},
			{Status: model.ProgressDownloading, Percent: 100, DownloadedBytes: 100, TotalBytes: 100},
			{Status: model.ProgressFinished, DownloadedBytes: 100, TotalBytes: 100},
		},
		writeFile: filepath.Join(dir, "Never Gonna Give You Up.mp4"),
	}
	reporter := &recordingReporter{}
	prober := &stubProber{summary: &mediainfo.Summary{Container: "mp4", SizeBytes: 4}}

	svc := NewService(fetcher, reporter)
	svc.SetProber(prober)

	var updates int
	svc.SetUpdateCallback(func(*model.DownloadTask) { updates++ })

	task, err := svc.Download(context.Background(), newRequest(dir, model.FormatMP4))
	require.NoError(t, err)
	require.NotNil(t, task)

	assert.Equal(t, model.TaskStatusCompleted, task.Status)
	assert.Equal(t, 100, task.Percent)
	assert.Equal(t, "Never Gonna Give You Up", task.Title)
	assert.Equal(t, "Rick Astley", task.Uploader)
	assert.Equal(t, "03:32", task.Duration)
	assert.Equal(t, fetcher.writeFile, task.OutputPath)
	assert.EqualValues(t, 4, task.FileSize)
	assert.False(t, task.FinishedAt.IsZero())

	assert.Equal(t, []string{dir}, reporter.dirCreated)
	assert.Len(t, reporter.requests, 1)
	assert.Len(t, reporter.metadata, 1)
	assert.Len(t, reporter.progress, 2)
	assert.Equal(t, 1, reporter.finished)
	assert.Len(t, reporter.summaries, 1)
	assert.Len(t, reporter.successes, 1)
	assert.Empty(t, reporter.failures)
	assert.Equal(t, []string{fetcher.writeFile}, prober.paths)

	assert.Equal(t, 1, fetcher.metaCalls)
	assert.Equal(t, 1, fetcher.downloadCalls)
	assert.Equal(t, "best[ext=mp4]/best", fetcher.gotOpts.Selector)
	assert.True(t, fetcher.gotOpts.NoPlaylist)
	assert.Greater(t, updates, 0)
}

func TestService_ExistingDirNotReported(t *testing.T) {
	dir := t.TempDir()
	reporter := &recordingReporter{}

	svc := NewService(&stubFetcher{}, reporter)
	_, err := svc.Download(context.Background(), newRequest(dir, model.FormatBest))
	require.NoError(t, err)

	assert.Empty(t, reporter.dirCreated)
}

func TestService_InvalidRequestNeverCallsFetcher(t *testing.T) {
	tests := []struct {
		name string
		req  model.DownloadRequest
	}{
		{"unsupported format", model.DownloadRequest{URL: "https://example.com/v", OutputDir: "out", Format: "flac"}},
		{"missing url", model.DownloadRequest{OutputDir: "out", Format: model.FormatBest}},
		{"not a url", model.DownloadRequest{URL: "not a url", OutputDir: "out", Format: model.FormatBest}},
		{"missing output dir", model.DownloadRequest{URL: "https://example.com/v", Format: model.FormatBest}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &stubFetcher{}
			reporter := &recordingReporter{}

			task, err := NewService(fetcher, reporter).Download(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, task)
			assert.Zero(t, fetcher.metaCalls)
			assert.Zero(t, fetcher.downloadCalls)
			assert.Empty(t, reporter.requests)
		})
	}
}

func TestService_MetadataFailure(t *testing.T) {
	boom := errors.New("video unavailable")
	fetcher := &stubFetcher{metaErr: boom}
	reporter := &recordingReporter{}

	task, err := NewService(fetcher, reporter).Download(context.Background(), newRequest(t.TempDir(), model.FormatBest))
	require.ErrorIs(t, err, boom)
	require.NotNil(t, task)

	assert.Equal(t, model.TaskStatusError, task.Status)
	assert.Equal(t, "video unavailable", task.LastError)
	assert.Zero(t, fetcher.downloadCalls)
	assert.Equal(t, []error{boom}, reporter.failures)
	assert.Empty(t, reporter.successes)
}

func TestService_DownloadFailureNoRetry(t *testing.T) {
	boom := errors.New("HTTP Error 403")
	fetcher := &stubFetcher{downloadErr: boom}
	reporter := &recordingReporter{}

	task, err := NewService(fetcher, reporter).Download(context.Background(), newRequest(t.TempDir(), model.FormatWebM))
	require.ErrorIs(t, err, boom)

	assert.Equal(t, model.TaskStatusError, task.Status)
	assert.Equal(t, 1, fetcher.downloadCalls)
	assert.Len(t, reporter.failures, 1)
}

func TestService_ProbeFailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	fetcher := &stubFetcher{writeFile: filepath.Join(dir, "clip.webm")}
	reporter := &recordingReporter{}

	svc := NewService(fetcher, reporter)
	svc.SetProber(&stubProber{err: mediainfo.ErrProbeUnavailable})

	task, err := svc.Download(context.Background(), newRequest(dir, model.FormatWebM))
	require.NoError(t, err)

	assert.Equal(t, model.TaskStatusCompleted, task.Status)
	assert.Empty(t, reporter.summaries)
	assert.Len(t, reporter.successes, 1)
}

func TestService_NilFetcher(t *testing.T) {
	_, err := NewService(nil, &recordingReporter{}).Download(context.Background(), newRequest(t.TempDir(), model.FormatBest))
	assert.ErrorIs(t, err, ErrNoFetcher)
}
