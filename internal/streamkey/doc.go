// Package streamkey pulls a live-broadcast stream key out of a browser network
// capture (HAR file).
//
// Only the request URLs of the capture are read. The first URL that contains
// the ingest host and the rtmp marker and matches the key pattern wins.
package streamkey
