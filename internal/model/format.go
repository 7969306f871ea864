package model

import (
	"errors"
	"fmt"
	"strings"
)

// Format selects which media quality or container is requested from yt-dlp
type Format string

const (
	FormatBest  Format = "best"
	FormatWorst Format = "worst"
	FormatMP4   Format = "mp4"
	FormatWebM  Format = "webm"
	FormatAudio Format = "audio"
)

// DefaultFormat is used when no format is given
const DefaultFormat = FormatBest

// yt-dlp format selector strings
const (
	SelectorBest      = "best"
	SelectorWorst     = "worst"
	SelectorMP4       = "best[ext=mp4]/best"
	SelectorWebM      = "best[ext=webm]/best"
	SelectorBestAudio = "bestaudio/best"
)

// ErrUnsupportedFormat is returned by ParseFormat for values outside the enumerated set
var ErrUnsupportedFormat = errors.New("unsupported format")

// Formats returns every supported format in display order
func Formats() []Format {
	return []Format{FormatBest, FormatWorst, FormatMP4, FormatWebM, FormatAudio}
}

// FormatNames returns the supported formats as plain strings
func FormatNames() []string {
	formats := Formats()
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, string(f))
	}
	return names
}

// ParseFormat converts a command-line value into a Format
func ParseFormat(value string) (Format, error) {
	if f := Format(value); f.IsValid() {
		return f, nil
	}
	return "", fmt.Errorf("%w %q (choose from %s)", ErrUnsupportedFormat, value, strings.Join(FormatNames(), ", "))
}

// String returns the string representation of Format
func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f is one of the enumerated formats
func (f Format) IsValid() bool {
	for _, known := range Formats() {
		if f == known {
			return true
		}
	}
	return false
}

// Selector returns the yt-dlp -f expression for the format
func (f Format) Selector() string {
	switch f {
	case FormatWorst:
		return SelectorWorst
	case FormatMP4:
		return SelectorMP4
	case FormatWebM:
		return SelectorWebM
	case FormatAudio:
		return SelectorBestAudio
	default:
		return SelectorBest
	}
}

// ExtractsAudio reports whether the download is re-encoded to an audio-only file
func (f Format) ExtractsAudio() bool {
	return f == FormatAudio
}

// Description is the one-line help text shown in the usage banner
func (f Format) Description() string {
	switch f {
	case FormatBest:
		return "Best available quality (default)"
	case FormatWorst:
		return "Lowest available quality"
	case FormatMP4:
		return "Best MP4 format"
	case FormatWebM:
		return "Best WebM format"
	case FormatAudio:
		return "Extract audio only (MP3)"
	default:
		return ""
	}
}
