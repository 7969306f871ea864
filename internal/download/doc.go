// Package download implements the single-video download pipeline built on top
// of yt-dlp (via github.com/lrstanley/go-ytdlp): option derivation, metadata
// lookup, progress propagation and post-download inspection.
package download
