// Package model defines the value types shared by both tools: the download
// request and its format selector, progress events and metadata reported by
// yt-dlp, and the task record that follows a single download run.
package model
