// Package console renders the user-facing output of the command-line tools:
// banners, status lines, the rewriting progress line and final results.
package console
