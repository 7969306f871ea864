package model

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// ProgressStatus mirrors the status values reported by yt-dlp progress hooks
type ProgressStatus string

const (
	ProgressStarting       ProgressStatus = "starting"
	ProgressDownloading    ProgressStatus = "downloading"
	ProgressPostProcessing ProgressStatus = "post_processing"
	ProgressFinished       ProgressStatus = "finished"
	ProgressError          ProgressStatus = "error"
)

// UnknownValue is displayed for metadata and progress values the library did not report
const UnknownValue = "Unknown"

// Time formatting constants
const (
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
)

// ProgressEvent is a single progress report surfaced by the download library
type ProgressEvent struct {
	Status          ProgressStatus
	Percent         float64 // 0 to 100, zero when total size is unknown
	BytesPerSecond  float64
	ETA             time.Duration
	DownloadedBytes int64
	TotalBytes      int64
	Filename        string
	Title           string
}

// PercentString formats the completion percentage, "N/A" if unknown
func (e ProgressEvent) PercentString() string {
	if e.TotalBytes <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", e.Percent)
}

// SpeedString formats the transfer rate, e.g. "1.2 MB/s"
func (e ProgressEvent) SpeedString() string {
	if e.BytesPerSecond <= 0 {
		return "N/A"
	}
	return humanize.Bytes(uint64(e.BytesPerSecond)) + "/s"
}

// ETAString formats the remaining time as mm:ss or hh:mm:ss
func (e ProgressEvent) ETAString() string {
	if e.ETA <= 0 {
		return "N/A"
	}
	return FormatDuration(e.ETA.Seconds())
}

// VideoMetadata is the display information fetched before a download
type VideoMetadata struct {
	ID        string
	Title     string
	Uploader  string
	Duration  float64 // seconds, zero when unknown
	Extension string
}

// DisplayTitle returns the title or UnknownValue
func (m *VideoMetadata) DisplayTitle() string {
	if m == nil || m.Title == "" {
		return UnknownValue
	}
	return m.Title
}

// DisplayUploader returns the uploader or UnknownValue
func (m *VideoMetadata) DisplayUploader() string {
	if m == nil || m.Uploader == "" {
		return UnknownValue
	}
	return m.Uploader
}

// DisplayDuration returns the formatted duration or UnknownValue
func (m *VideoMetadata) DisplayDuration() string {
	if m == nil || m.Duration <= 0 {
		return UnknownValue
	}
	return FormatDuration(m.Duration)
}

// FormatDuration formats seconds into MM:SS, or HH:MM:SS past the hour
func FormatDuration(seconds float64) string {
	total := int(seconds)
	hours := total / SecondsPerHour
	minutes := (total % SecondsPerHour) / SecondsPerMinute
	secs := total % SecondsPerMinute
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
