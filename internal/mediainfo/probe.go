package mediainfo

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/floostack/transcoder"
	"github.com/floostack/transcoder/ffmpeg"

	"github.com/ytget/yt-tools/internal/model"
)

// ErrProbeUnavailable is returned when no ffprobe binary can be found
var ErrProbeUnavailable = errors.New("ffprobe not available")

// Stream is a single elementary stream inside the container
type Stream struct {
	Type  string // "video", "audio", "subtitle", ...
	Codec string
}

// Summary describes a media file as reported by ffprobe
type Summary struct {
	Path      string
	Container string
	Duration  time.Duration
	SizeBytes uint64
	BitRate   uint64 // bits per second
	Streams   []Stream
}

// String renders e.g. "mp4, 03:32, 12 MB, 452 kb/s, h264 video + aac audio"
func (s *Summary) String() string {
	parts := make([]string, 0, 4)
	if s.Container != "" {
		parts = append(parts, s.Container)
	}
	if s.Duration > 0 {
		parts = append(parts, model.FormatDuration(s.Duration.Seconds()))
	}
	if s.SizeBytes > 0 {
		parts = append(parts, humanize.Bytes(s.SizeBytes))
	}
	if s.BitRate > 0 {
		parts = append(parts, fmt.Sprintf("%d kb/s", s.BitRate/1000))
	}
	if len(s.Streams) > 0 {
		streams := make([]string, 0, len(s.Streams))
		for _, st := range s.Streams {
			streams = append(streams, strings.TrimSpace(st.Codec+" "+st.Type))
		}
		parts = append(parts, strings.Join(streams, " + "))
	}
	if len(parts) == 0 {
		return model.UnknownValue
	}
	return strings.Join(parts, ", ")
}

// HasAudioOnly reports whether every stream is an audio stream
func (s *Summary) HasAudioOnly() bool {
	if len(s.Streams) == 0 {
		return false
	}
	for _, st := range s.Streams {
		if st.Type != "audio" {
			return false
		}
	}
	return true
}

// Prober runs ffprobe through floostack/transcoder
type Prober struct {
	ffprobePath string
}

// NewProber creates a prober; ffprobePath may be a bare command name
func NewProber(ffprobePath string) *Prober {
	return &Prober{ffprobePath: ffprobePath}
}

// Probe reads container and stream information for path
func (p *Prober) Probe(path string) (*Summary, error) {
	bin, err := exec.LookPath(p.ffprobePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProbeUnavailable, p.ffprobePath)
	}

	metadata, err := ffmpeg.New(&ffmpeg.Config{FfprobeBinPath: bin}).
		Input(path).
		GetMetadata()
	if err != nil {
		return nil, fmt.Errorf("failed to probe %s: %w", path, err)
	}

	return summarize(path, metadata), nil
}

func summarize(path string, metadata transcoder.Metadata) *Summary {
	summary := &Summary{Path: path}

	if format := metadata.GetFormat(); format != nil {
		summary.Container = containerName(format.GetFormatName())
		summary.Duration = parseSeconds(format.GetDuration())
		summary.SizeBytes = parseUint(format.GetSize())
		summary.BitRate = parseUint(format.GetBitRate())
	}

	for _, st := range metadata.GetStreams() {
		summary.Streams = append(summary.Streams, Stream{
			Type:  st.GetCodecType(),
			Codec: st.GetCodecName(),
		})
	}

	return summary
}

// containerName picks the first demuxer name, ffprobe reports "mov,mp4,m4a,3gp,3g2,mj2"
func containerName(formatName string) string {
	name, _, _ := strings.Cut(formatName, ",")
	return strings.TrimSpace(name)
}

// parseSeconds converts ffprobe's "212.345000" into a duration
func parseSeconds(value string) time.Duration {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

func parseUint(value string) uint64 {
	n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
