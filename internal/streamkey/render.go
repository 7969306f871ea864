package streamkey

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by Render
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// ErrUnsupportedOutput is returned for an unknown render format
var ErrUnsupportedOutput = errors.New("unsupported output format")

// Result is the outcome of one extraction
type Result struct {
	Source  string `json:"source" yaml:"source"`
	Found   bool   `json:"found" yaml:"found"`
	Key     string `json:"key,omitempty" yaml:"key,omitempty"`
	RTMPURL string `json:"rtmp_url,omitempty" yaml:"rtmp_url,omitempty"`
}

// NewResult builds a result for source from an Extract outcome
func NewResult(source, key string, found bool) Result {
	r := Result{Source: source, Found: found}
	if found {
		r.Key = key
		r.RTMPURL = RTMPURL(key)
	}
	return r
}

// OutputFormats lists the formats Render accepts
func OutputFormats() []string {
	return []string{OutputText, OutputJSON, OutputYAML}
}

// ParseOutput normalizes an output format name
func ParseOutput(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return OutputText, nil
	}
	for _, f := range OutputFormats() {
		if v == f {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w %q (choose from %s)", ErrUnsupportedOutput, value, strings.Join(OutputFormats(), ", "))
}

// Render writes r to w in the given format
func Render(w io.Writer, r Result, format string) error {
	switch format {
	case OutputText, "":
		return renderText(w, r)
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedOutput, format)
	}
}

func renderText(w io.Writer, r Result) error {
	var b strings.Builder
	if r.Found {
		b.WriteString("Found Instagram Stream Key:\n")
		fmt.Fprintf(&b, "Stream Key: %s\n", r.Key)
		fmt.Fprintf(&b, "Full RTMP URL: %s\n", r.RTMPURL)
		b.WriteString("\nCopy this stream key to your streaming software\n")
	} else {
		b.WriteString("No Instagram Live stream key found in the HAR file.\n")
		b.WriteString("Make sure you captured the network traffic while starting Instagram Live.\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// CaptureInstructions explains how to record a HAR file
const CaptureInstructions = `To get a HAR file:
1. Open Instagram in Chrome/Firefox
2. Press F12 → Network tab
3. Start Instagram Live
4. Right-click any request → Save as HAR
`
