// Package config loads downloader settings from an optional yaml file and
// YTDL_* environment variables.
package config
