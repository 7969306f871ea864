// Package platform contains filesystem and OS glue for the downloader: output
// directory handling, locating the file yt-dlp actually wrote, and revealing
// it in the system file manager.
package platform
