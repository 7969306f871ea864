package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskIDPrefix prefixes every generated task id
const TaskIDPrefix = "dl-"

// DownloadTask records the lifecycle of one downloader run
type DownloadTask struct {
	ID         string
	URL        string
	Format     Format
	OutputDir  string
	Status     TaskStatus
	Progress   float64   // 0.0 to 1.0
	Percent    int       // 0 to 100
	Speed      string    // human readable speed (e.g., "1.2 MB/s")
	ETASec     int       // ETA in seconds, -1 if unknown
	LastError  string    // last error message if any
	OutputPath string    // path to downloaded file
	StartedAt  time.Time // when the run started
	FinishedAt time.Time // when the run finished
	Title      string    // video title
	Uploader   string    // channel or uploader name
	Duration   string    // formatted video duration
	FileSize   int64     // file size in bytes
}

// NewDownloadTask creates a pending task for req
func NewDownloadTask(req DownloadRequest) *DownloadTask {
	return &DownloadTask{
		ID:        NewTaskID(),
		URL:       req.URL,
		Format:    req.Format,
		OutputDir: req.OutputDir,
		Status:    TaskStatusPending,
		ETASec:    -1,
		StartedAt: time.Now(),
	}
}

// NewTaskID generates a time-ordered task id (UUID v7)
func NewTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}

// ShortID returns the first group of the task id, handy in log lines
func (dt *DownloadTask) ShortID() string {
	id := strings.TrimPrefix(dt.ID, TaskIDPrefix)
	return strings.Split(id, "-")[0]
}

// ApplyProgress copies a progress event into the task
func (dt *DownloadTask) ApplyProgress(ev ProgressEvent) {
	switch ev.Status {
	case ProgressDownloading:
		dt.Status = TaskStatusDownloading
	case ProgressPostProcessing, ProgressFinished:
		dt.Status = TaskStatusConverting
	}

	if ev.TotalBytes > 0 {
		dt.Percent = int(ev.Percent)
		dt.Progress = ev.Percent / 100.0
		dt.FileSize = ev.TotalBytes
	}
	if ev.BytesPerSecond > 0 {
		dt.Speed = ev.SpeedString()
	}
	if ev.ETA > 0 {
		dt.ETASec = int(ev.ETA.Seconds())
	}
	if ev.Title != "" && dt.Title == "" {
		dt.Title = ev.Title
	}
	if ev.Filename != "" {
		dt.OutputPath = ev.Filename
	}
}

// Complete marks the task as successfully finished
func (dt *DownloadTask) Complete() {
	dt.Status = TaskStatusCompleted
	dt.Progress = 1.0
	dt.Percent = 100
	dt.ETASec = -1
	dt.FinishedAt = time.Now()
}

// Fail marks the task as failed with err
func (dt *DownloadTask) Fail(err error) {
	dt.Status = TaskStatusError
	if err != nil {
		dt.LastError = err.Error()
	}
	dt.FinishedAt = time.Now()
}

// Elapsed returns the run time, up to now for unfinished tasks
func (dt *DownloadTask) Elapsed() time.Duration {
	if dt.FinishedAt.IsZero() {
		return time.Since(dt.StartedAt)
	}
	return dt.FinishedAt.Sub(dt.StartedAt)
}

// GetETAString returns ETA formatted as hh:mm:ss, or "N/A" if unknown
func (dt *DownloadTask) GetETAString() string {
	if dt.ETASec <= 0 {
		return "N/A"
	}
	return FormatDuration(float64(dt.ETASec))
}

// GetDisplayTitle returns title, filename, or URL in order of preference
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.Title != "" && !strings.HasPrefix(dt.Title, "http") {
		return dt.Title
	}

	// Support both / and \ separators
	parts := strings.FieldsFunc(dt.OutputPath, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) > 0 {
		name := parts[len(parts)-1]
		if idx := strings.LastIndex(name, "."); idx > 0 {
			name = name[:idx]
		}
		return name
	}

	return dt.URL
}
