package download

import (
	"path/filepath"

	"github.com/ytget/yt-tools/internal/model"
)

// Preferences are the settings-level knobs that shape FetchOptions
type Preferences struct {
	FilenameTemplate string
	AudioCodec       string
	AudioQuality     string
	FFmpegLocation   string
}

// Default preference values
const (
	DefaultFilenameTemplate = "%(title)s.%(ext)s"
	DefaultAudioCodec       = "mp3"
	DefaultAudioQuality     = "192"
)

// DefaultPreferences returns the preferences used when none are configured
func DefaultPreferences() Preferences {
	return Preferences{
		FilenameTemplate: DefaultFilenameTemplate,
		AudioCodec:       DefaultAudioCodec,
		AudioQuality:     DefaultAudioQuality,
	}
}

// BuildOptions derives library options from a request
func BuildOptions(req model.DownloadRequest, prefs Preferences) model.FetchOptions {
	template := prefs.FilenameTemplate
	if template == "" {
		template = DefaultFilenameTemplate
	}

	opts := model.FetchOptions{
		OutputTemplate: filepath.Join(req.OutputDir, template),
		Selector:       req.Format.Selector(),
		NoPlaylist:     true,
		FFmpegLocation: prefs.FFmpegLocation,
	}

	if req.Format.ExtractsAudio() {
		opts.ExtractAudio = true
		opts.AudioCodec = prefs.AudioCodec
		if opts.AudioCodec == "" {
			opts.AudioCodec = DefaultAudioCodec
		}
		opts.AudioQuality = prefs.AudioQuality
		if opts.AudioQuality == "" {
			opts.AudioQuality = DefaultAudioQuality
		}
	}

	return opts
}

// expectedOutputPath adjusts the path reported during download for audio
// extraction, which swaps the container after the last progress event
func expectedOutputPath(downloaded string, opts model.FetchOptions) string {
	if downloaded == "" || !opts.ExtractAudio || opts.AudioCodec == "" || opts.AudioCodec == "best" {
		return downloaded
	}
	ext := filepath.Ext(downloaded)
	return downloaded[:len(downloaded)-len(ext)] + "." + audioExtension(opts.AudioCodec)
}

// audioExtension maps yt-dlp audio codecs to the file extension they produce
func audioExtension(codec string) string {
	switch codec {
	case "vorbis":
		return "ogg"
	case "aac":
		return "m4a"
	case "alac":
		return "m4a"
	default:
		return codec
	}
}
