package streamkey

import (
	"regexp"
	"strings"
)

// IngestHost is the RTMP ingest host used for Instagram Live
const IngestHost = "live-api-s.facebook.com"

// Matcher selects candidate URLs and extracts the key from them
type Matcher struct {
	HostSubstring string
	PathMarker    string
	Pattern       *regexp.Regexp // first capture group is the key
}

// DefaultMatcher finds Instagram Live RTMP ingest URLs
var DefaultMatcher = Matcher{
	HostSubstring: IngestHost,
	PathMarker:    "rtmp",
	Pattern:       regexp.MustCompile(`/rtmp/([^/?]+)`),
}

// Match returns the key in url if url is a candidate
func (m Matcher) Match(url string) (string, bool) {
	if !strings.Contains(url, m.HostSubstring) || !strings.Contains(url, m.PathMarker) {
		return "", false
	}
	sub := m.Pattern.FindStringSubmatch(url)
	if len(sub) < 2 {
		return "", false
	}
	return sub[1], true
}

// Extract returns the key from the first matching request URL
func Extract(doc *Document, m Matcher) (string, bool) {
	for _, url := range doc.URLs() {
		if key, ok := m.Match(url); ok {
			return key, true
		}
	}
	return "", false
}

// RTMPURL builds the full ingest URL for key
func RTMPURL(key string) string {
	return "rtmp://" + IngestHost + ":80/rtmp/" + key
}
