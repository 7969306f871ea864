// Package app assembles the command-line applications. Each Run function
// returns a process exit code; only the main packages call os.Exit.
package app
