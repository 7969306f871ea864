package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/ytget/yt-tools/internal/mediainfo"
	"github.com/ytget/yt-tools/internal/model"
)

// Printer writes downloader output. Progress and informational lines are
// dropped in quiet mode; results and failures are always written.
type Printer struct {
	out   io.Writer
	quiet bool

	heading *color.Color
	info    *color.Color
	success *color.Color
	failure *color.Color
	dim     *color.Color

	progressOpen bool // a \r progress line has not been terminated yet
}

// NewPrinter creates a printer. Colours are used only when out is a terminal
// stream and color.NoColor is unset.
func NewPrinter(out io.Writer, quiet bool) *Printer {
	p := &Printer{
		out:     out,
		quiet:   quiet,
		heading: color.New(color.FgHiCyan, color.Bold),
		info:    color.New(color.FgWhite),
		success: color.New(color.FgHiGreen),
		failure: color.New(color.FgHiRed, color.Bold),
		dim:     color.New(color.FgHiBlack),
	}

	if _, ok := out.(*os.File); !ok {
		for _, c := range []*color.Color{p.heading, p.info, p.success, p.failure, p.dim} {
			c.DisableColor()
		}
	}
	return p
}

// Banner prints usage, examples and format descriptions for a bare invocation
func (p *Printer) Banner(program string) {
	p.heading.Fprintf(p.out, "%s YouTube Video Downloader\n", IconApp)
	fmt.Fprintln(p.out, strings.Repeat("=", BannerRuleWidth))
	fmt.Fprintf(p.out, "Usage: %s [OPTIONS] URL\n\n", program)
	fmt.Fprintln(p.out, "Examples:")
	fmt.Fprintf(p.out, "  %s https://www.youtube.com/shorts/lOPDr8C4z_A\n", program)
	fmt.Fprintf(p.out, "  %s https://youtu.be/VIDEO_ID -f mp4\n", program)
	fmt.Fprintf(p.out, "  %s https://youtube.com/watch?v=VIDEO_ID -o my_videos -f audio\n\n", program)
	fmt.Fprintln(p.out, "Format options:")
	for _, f := range model.Formats() {
		fmt.Fprintf(p.out, "  %-6s - %s\n", f, f.Description())
	}
	fmt.Fprintln(p.out)
	p.dim.Fprintf(p.out, "%s Tip: run %s --help for all options\n", IconTip, program)
}

// DirCreated reports that the output directory had to be created
func (p *Printer) DirCreated(dir string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "%s Created directory: %s\n", IconFolder, dir)
}

// Request prints the URL, destination and format of a run
func (p *Printer) Request(req model.DownloadRequest) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "%s Downloading: %s\n", IconURL, req.URL)
	fmt.Fprintf(p.out, "%s Saving to: %s\n", IconSaveTo, req.OutputDir)
	fmt.Fprintf(p.out, "%s Format: %s\n", IconApp, req.Format)
	fmt.Fprintln(p.out, strings.Repeat("-", SeparatorWidth))
}

// Metadata prints title, uploader and duration
func (p *Printer) Metadata(meta *model.VideoMetadata) {
	if p.quiet {
		return
	}
	p.info.Fprintf(p.out, "%s Title: %s\n", IconTitle, meta.DisplayTitle())
	p.info.Fprintf(p.out, "%s Channel: %s\n", IconUploader, meta.DisplayUploader())
	p.info.Fprintf(p.out, "%s Duration: %s\n", IconDuration, meta.DisplayDuration())
}

// Progress rewrites the current progress line
func (p *Printer) Progress(ev model.ProgressEvent) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, ProgressLineFormat, IconProgress, ev.PercentString(), ev.SpeedString(), ev.ETAString())
	p.progressOpen = true
}

// Finished reports that the transfer is done and post-processing follows
func (p *Printer) Finished() {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "\n%s Download finished, now converting...\n", IconConvert)
	p.progressOpen = false
}

// MediaSummary prints the probed container and stream details
func (p *Printer) MediaSummary(summary *mediainfo.Summary) {
	if p.quiet || summary == nil {
		return
	}
	label := "Media"
	if summary.HasAudioOnly() {
		label = "Audio"
	}
	p.dim.Fprintf(p.out, "%s %s: %s\n", IconMedia, label, summary)
}

// Success prints the completion message and where the file went
func (p *Printer) Success(task *model.DownloadTask) {
	p.closeProgress()
	p.success.Fprintf(p.out, "\n%s Download completed successfully!\n", IconSuccess)
	if p.quiet {
		if task.OutputPath != "" {
			fmt.Fprintln(p.out, task.OutputPath)
		}
		return
	}
	p.success.Fprintf(p.out, "\n%s Video downloaded successfully!\n", IconDone)
	if task.OutputPath != "" {
		fmt.Fprintf(p.out, "%s Saved as '%s' (%s)\n", IconSaveTo, task.OutputPath, task.GetDisplayTitle())
	}
	fmt.Fprintf(p.out, "%s Check the '%s' folder for your video\n", IconSaveTo, task.OutputDir)
}

// Failure prints the error and the generic failure hint
func (p *Printer) Failure(err error) {
	p.closeProgress()
	p.failure.Fprintf(p.out, "\n%s Error downloading video: %v\n", IconError, err)
	p.failure.Fprintf(p.out, "\n%s Download failed. Please check the URL and try again.\n", IconFailed)
}

func (p *Printer) closeProgress() {
	if p.progressOpen {
		fmt.Fprintln(p.out)
		p.progressOpen = false
	}
}
