package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const foundHAR = `{"log":{"entries":[
	{"request":{"url":"https://www.instagram.com/api/v1/live/create/"}},
	{"request":{"url":"https://live-api-s.facebook.com/rtmp/17912345678?s_bl=1&a=Abc"}}
]}}`

func runStreamKey(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	app := NewStreamKeyApp("test", &out, &errOut)
	code = RunStreamKey(context.Background(), app, append([]string{StreamKeyName}, args...))
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStreamKey_Found(t *testing.T) {
	code, stdout, _ := runStreamKey(writeFile(t, "live.har", foundHAR))

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stdout, "Stream Key: 17912345678")
	assert.Contains(t, stdout, "Full RTMP URL: rtmp://live-api-s.facebook.com:80/rtmp/17912345678")
}

func TestStreamKey_JSONOutput(t *testing.T) {
	path := writeFile(t, "live.har", foundHAR)
	code, stdout, _ := runStreamKey(path, "--output", "json")

	require.Equal(t, ExitOK, code)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "17912345678", got["key"])
	assert.Equal(t, path, got["source"])
}

func TestStreamKey_NotFound(t *testing.T) {
	code, stdout, stderr := runStreamKey(writeFile(t, "empty.har", `{"log":{"entries":[]}}`))

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stdout, "No Instagram Live stream key found in the HAR file.")
	assert.Empty(t, stderr)
}

func TestStreamKey_Failures(t *testing.T) {
	tests := []struct {
		name string
		args func(t *testing.T) []string
		want string
	}{
		{
			name: "missing file",
			args: func(t *testing.T) []string { return []string{filepath.Join(t.TempDir(), "nope.har")} },
			want: "not found",
		},
		{
			name: "invalid json",
			args: func(t *testing.T) []string { return []string{writeFile(t, "bad.har", "{not json")} },
			want: "Invalid JSON",
		},
		{
			name: "unexpected structure",
			args: func(t *testing.T) []string { return []string{writeFile(t, "odd.har", `{"log":{"entries":{}}}`)} },
			want: "Error processing file",
		},
		{
			name: "no arguments",
			args: func(*testing.T) []string { return nil },
			want: "To get a HAR file:",
		},
		{
			name: "too many arguments",
			args: func(*testing.T) []string { return []string{"a.har", "b.har"} },
			want: "Usage: ig-streamkey",
		},
		{
			name: "unknown output",
			args: func(t *testing.T) []string { return []string{"--output", "xml", writeFile(t, "live.har", foundHAR)} },
			want: "unsupported output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runStreamKey(tt.args(t)...)
			assert.Equal(t, ExitFailure, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}
