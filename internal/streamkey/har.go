package streamkey

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Load errors, distinguishable with errors.Is
var (
	ErrFileNotFound        = errors.New("file not found")
	ErrInvalidJSON         = errors.New("invalid JSON")
	ErrUnexpectedStructure = errors.New("unexpected structure")
)

// Document is the part of a HAR capture the extractor reads
type Document struct {
	Log *Log `json:"log"`
}

// Log holds the captured entries
type Log struct {
	Entries []Entry `json:"entries"`
}

// Entry is one captured request/response pair
type Entry struct {
	Request *Request `json:"request"`
}

// Request is the captured request
type Request struct {
	URL string `json:"url"`
}

// UnmarshalJSON decodes the document reading only the exact "log" key
func (d *Document) UnmarshalJSON(data []byte) error {
	fields, err := exactFields(data)
	if err != nil {
		return err
	}
	return decodeField(fields, "log", &d.Log)
}

// UnmarshalJSON decodes the log reading only the exact "entries" key
func (l *Log) UnmarshalJSON(data []byte) error {
	fields, err := exactFields(data)
	if err != nil {
		return err
	}
	return decodeField(fields, "entries", &l.Entries)
}

// UnmarshalJSON decodes the entry reading only the exact "request" key
func (e *Entry) UnmarshalJSON(data []byte) error {
	fields, err := exactFields(data)
	if err != nil {
		return err
	}
	return decodeField(fields, "request", &e.Request)
}

// UnmarshalJSON decodes the request reading only the exact "url" key
func (r *Request) UnmarshalJSON(data []byte) error {
	fields, err := exactFields(data)
	if err != nil {
		return err
	}
	return decodeField(fields, "url", &r.URL)
}

func exactFields(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func decodeField(fields map[string]json.RawMessage, key string, v any) error {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// URLs returns the request URLs in capture order; entries without one are skipped
func (d *Document) URLs() []string {
	if d == nil || d.Log == nil {
		return nil
	}
	urls := make([]string, 0, len(d.Log.Entries))
	for _, e := range d.Log.Entries {
		if e.Request == nil || e.Request.URL == "" {
			continue
		}
		urls = append(urls, e.Request.URL)
	}
	return urls
}

// Load reads and decodes the capture at path
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: '%s'", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("read '%s': %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a capture; name is used in error messages only
func Parse(data []byte, name string) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w in '%s': %w", ErrUnexpectedStructure, name, err)
		}
		return nil, fmt.Errorf("%w in '%s': %w", ErrInvalidJSON, name, err)
	}
	return &doc, nil
}
