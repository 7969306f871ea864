package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/ytget/yt-tools/internal/platform"
)

// Environment variables understood by the downloader
const (
	EnvConfigFile       = "YTDL_CONFIG"
	EnvOutputDir        = "YTDL_OUTPUT_DIR"
	EnvFormat           = "YTDL_FORMAT"
	EnvFilenameTemplate = "YTDL_FILENAME_TEMPLATE"
	EnvAudioCodec       = "YTDL_AUDIO_CODEC"
	EnvAudioQuality     = "YTDL_AUDIO_QUALITY"
	EnvYTDLPPath        = "YTDL_YTDLP_PATH"
	EnvFFmpegPath       = "YTDL_FFMPEG_PATH"
	EnvFFprobePath      = "YTDL_FFPROBE_PATH"
	EnvProgressInterval = "YTDL_PROGRESS_INTERVAL"
)

// EnvironmentVariables lists every variable Load reads
func EnvironmentVariables() []string {
	return []string{
		EnvConfigFile,
		EnvOutputDir,
		EnvFormat,
		EnvFilenameTemplate,
		EnvAudioCodec,
		EnvAudioQuality,
		EnvYTDLPPath,
		EnvFFmpegPath,
		EnvFFprobePath,
		EnvProgressInterval,
	}
}

// Default values
const (
	DefaultOutputDir        = "downloads"
	DefaultFormat           = "best"
	DefaultFilenameTemplate = "%(title)s.%(ext)s"
	DefaultAudioCodec       = "mp3"
	DefaultAudioQuality     = "192"
	DefaultFFprobePath      = "ffprobe"
	DefaultProgressInterval = 500 * time.Millisecond
)

// Progress interval bounds
const (
	MinProgressInterval = 100 * time.Millisecond
	MaxProgressInterval = 10 * time.Second
)

// Settings holds downloader configuration. Values come from an optional yaml
// file, then the environment, then the env-default tags; command-line flags
// are applied on top by the caller.
type Settings struct {
	OutputDir        string        `yaml:"output_dir" env:"YTDL_OUTPUT_DIR" env-default:"downloads" validate:"required"`
	Format           string        `yaml:"format" env:"YTDL_FORMAT" env-default:"best" validate:"oneof=best worst mp4 webm audio"`
	FilenameTemplate string        `yaml:"filename_template" env:"YTDL_FILENAME_TEMPLATE" env-default:"%(title)s.%(ext)s" validate:"required"`
	AudioCodec       string        `yaml:"audio_codec" env:"YTDL_AUDIO_CODEC" env-default:"mp3" validate:"oneof=best aac alac flac m4a mp3 opus vorbis wav"`
	AudioQuality     string        `yaml:"audio_quality" env:"YTDL_AUDIO_QUALITY" env-default:"192" validate:"required"`
	YTDLPPath        string        `yaml:"ytdlp_path" env:"YTDL_YTDLP_PATH"`
	FFmpegPath       string        `yaml:"ffmpeg_path" env:"YTDL_FFMPEG_PATH"`
	FFprobePath      string        `yaml:"ffprobe_path" env:"YTDL_FFPROBE_PATH" env-default:"ffprobe"`
	ProgressInterval time.Duration `yaml:"progress_interval" env:"YTDL_PROGRESS_INTERVAL" env-default:"500ms"`
}

var validate = validator.New()

// Load reads settings from path (when non-empty) and the environment
func Load(path string) (*Settings, error) {
	var s Settings

	if path != "" {
		expanded, err := platform.ExpandPath(path)
		if err != nil {
			return nil, err
		}
		if err := cleanenv.ReadConfig(expanded, &s); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", expanded, err)
		}
	} else if err := cleanenv.ReadEnv(&s); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	s.Normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Normalize fills blank values with defaults and clamps the progress interval
func (s *Settings) Normalize() {
	if s.OutputDir == "" {
		s.OutputDir = DefaultOutputDir
	}
	if s.Format == "" {
		s.Format = DefaultFormat
	}
	s.SetFilenameTemplate(s.FilenameTemplate)
	if s.AudioCodec == "" {
		s.AudioCodec = DefaultAudioCodec
	}
	if s.AudioQuality == "" {
		s.AudioQuality = DefaultAudioQuality
	}
	if s.FFprobePath == "" {
		s.FFprobePath = DefaultFFprobePath
	}
	s.SetProgressInterval(s.ProgressInterval)
}

// Validate checks field constraints
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// SetFilenameTemplate sets the yt-dlp output template, empty resets to default
func (s *Settings) SetFilenameTemplate(template string) {
	if template == "" {
		template = DefaultFilenameTemplate
	}
	s.FilenameTemplate = template
}

// SetProgressInterval sets how often progress is reported
func (s *Settings) SetProgressInterval(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	if interval < MinProgressInterval {
		interval = MinProgressInterval
	}
	if interval > MaxProgressInterval {
		interval = MaxProgressInterval
	}
	s.ProgressInterval = interval
}

// ResolvedOutputDir returns OutputDir with a leading ~ expanded
func (s *Settings) ResolvedOutputDir() (string, error) {
	dir, err := platform.ExpandPath(s.OutputDir)
	if err != nil {
		return "", fmt.Errorf("invalid output directory: %w", err)
	}
	return dir, nil
}
