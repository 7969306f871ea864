// Package mediainfo inspects finished downloads with ffprobe and condenses
// the result into a one-line summary.
package mediainfo
