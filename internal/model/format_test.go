package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"best", "worst", "mp4", "webm", "audio"} {
		f, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, f.String())
		assert.True(t, f.IsValid())
	}

	for _, bad := range []string{"", "mp3", "BEST", "flac", " best"} {
		_, err := ParseFormat(bad)
		assert.Error(t, err, bad)
		assert.True(t, errors.Is(err, ErrUnsupportedFormat), bad)
	}
}

func TestFormat_Selector(t *testing.T) {
	tests := []struct {
		format   Format
		selector string
		audio    bool
	}{
		{FormatBest, "best", false},
		{FormatWorst, "worst", false},
		{FormatMP4, "best[ext=mp4]/best", false},
		{FormatWebM, "best[ext=webm]/best", false},
		{FormatAudio, "bestaudio/best", true},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			assert.Equal(t, tt.selector, tt.format.Selector())
			assert.Equal(t, tt.audio, tt.format.ExtractsAudio())
			assert.NotEmpty(t, tt.format.Description())
		})
	}
}

func TestFormatNames(t *testing.T) {
	assert.Equal(t, []string{"best", "worst", "mp4", "webm", "audio"}, FormatNames())
}

func TestDownloadRequest_Validate(t *testing.T) {
	valid := DownloadRequest{URL: "https://youtu.be/VIDEO_ID", OutputDir: "downloads", Format: FormatBest}
	require.NoError(t, valid.Validate())

	tests := map[string]DownloadRequest{
		"missing url":    {OutputDir: "downloads", Format: FormatBest},
		"not a url":      {URL: "just words", OutputDir: "downloads", Format: FormatBest},
		"missing dir":    {URL: "https://youtu.be/VIDEO_ID", Format: FormatBest},
		"unknown format": {URL: "https://youtu.be/VIDEO_ID", OutputDir: "downloads", Format: "mkv"},
		"empty format":   {URL: "https://youtu.be/VIDEO_ID", OutputDir: "downloads"},
	}
	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, req.Validate())
		})
	}
}
