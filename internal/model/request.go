package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DownloadRequest is everything a single downloader invocation needs
type DownloadRequest struct {
	URL       string `validate:"required,url"`
	OutputDir string `validate:"required"`
	Format    Format `validate:"required,oneof=best worst mp4 webm audio"`
}

// Validate checks the request against its field constraints
func (r DownloadRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid download request: %w", err)
	}
	return nil
}

// FetchOptions are the library-level options derived from a DownloadRequest
type FetchOptions struct {
	OutputTemplate string // full yt-dlp output template, directory included
	Selector       string // yt-dlp -f expression
	NoPlaylist     bool

	ExtractAudio bool
	AudioCodec   string // e.g. "mp3"
	AudioQuality string // e.g. "192"

	FFmpegLocation string // optional path to ffmpeg for post-processing
}
