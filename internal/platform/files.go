package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0o755
)

// Command constants
const (
	OpenCommand        = "open"
	ExplorerCommand    = "explorer"
	XDGOpenCommand     = "xdg-open"
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
)

// LinuxFileManagers are tried in order when xdg-open is unavailable
var LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}

// File name thresholds used when matching sanitised names
const (
	MinFileNameLength    = 10
	MediumFileNameLength = 15
	LongFileNameLength   = 20
	MaxNameDifference    = 10
)

// Scoring for fallback candidates
const (
	ScoreForLongName    = 3
	ScoreForMediumName  = 2
	ScoreForShortName   = 1
	ScoreForSpaces      = 2
	ScoreForUnderscores = 1
	ScoreForHyphens     = 1
)

// PartialExtensions are left behind by yt-dlp while a download is in flight
var PartialExtensions = []string{".part", ".ytdl", ".temp", ".frag"}

// ErrFileNotFound is returned when neither the exact path nor a similar file exists
var ErrFileNotFound = errors.New("file not found")

// ExpandPath expands a leading ~ and cleans the result
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand path %s: %w", path, err)
	}
	return filepath.Clean(expanded), nil
}

// EnsureDir creates dirPath if it does not exist and reports whether it did
func EnsureDir(dirPath string) (bool, error) {
	info, err := os.Stat(dirPath)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists and is not a directory", dirPath)
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat %s: %w", dirPath, err)
	}
	if err := os.MkdirAll(dirPath, DefaultDirPermissions); err != nil {
		return false, fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return true, nil
}

// FindFileWithFallback returns filePath if it exists. Otherwise it looks in the
// same directory for a file with the same extension whose name is close to the
// expected one (yt-dlp sanitises titles), and finally for the most descriptive
// finished file with that extension.
func FindFileWithFallback(filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("file path is empty")
	}
	if strings.HasPrefix(filePath, "http://") || strings.HasPrefix(filePath, "https://") {
		return "", fmt.Errorf("file path appears to be a URL: %s", filePath)
	}

	if _, err := os.Stat(filePath); err == nil {
		return filePath, nil
	}

	dir := filepath.Dir(filePath)
	wantExt := filepath.Ext(filePath)
	wantBase := strings.TrimSuffix(filepath.Base(filePath), wantExt)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var similar, fallback []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != wantExt {
			continue
		}

		path := filepath.Join(dir, name)
		if isSimilarFileName(strings.TrimSuffix(name, ext), wantBase) {
			similar = append(similar, path)
		}
		if isLikelyDownloadedFile(name) {
			fallback = append(fallback, path)
		}
	}

	if len(similar) > 0 {
		sort.Strings(similar)
		return similar[0], nil
	}

	if len(fallback) > 0 {
		sort.SliceStable(fallback, func(i, j int) bool {
			scoreI := getDescriptiveScore(filepath.Base(fallback[i]))
			scoreJ := getDescriptiveScore(filepath.Base(fallback[j]))
			if scoreI != scoreJ {
				return scoreI > scoreJ
			}
			infoI, errI := os.Stat(fallback[i])
			infoJ, errJ := os.Stat(fallback[j])
			if errI != nil || errJ != nil {
				return false
			}
			return infoI.ModTime().After(infoJ.ModTime())
		})
		return fallback[0], nil
	}

	return "", fmt.Errorf("%w: %s", ErrFileNotFound, filePath)
}

// isSimilarFileName checks whether two base names likely refer to the same download
func isSimilarFileName(name1, name2 string) bool {
	clean1 := strings.TrimSpace(name1)
	clean2 := strings.TrimSpace(name2)

	if clean1 == clean2 {
		return true
	}

	// yt-dlp --restrict-filenames style substitutions
	if strings.EqualFold(strings.ReplaceAll(clean1, "_", " "), strings.ReplaceAll(clean2, "_", " ")) {
		return true
	}

	for _, sep := range []string{"-", "_", " "} {
		if clean2 == sep+clean1 || clean2 == clean1+sep || clean1 == sep+clean2 || clean1 == clean2+sep {
			return true
		}
	}

	// truncated names
	if clean1 != "" && clean2 != "" && (strings.Contains(clean1, clean2) || strings.Contains(clean2, clean1)) {
		diff := len(clean1) - len(clean2)
		if diff < 0 {
			diff = -diff
		}
		return diff <= MaxNameDifference
	}

	return false
}

// isLikelyDownloadedFile filters out partial files and short, non-descriptive names
func isLikelyDownloadedFile(filename string) bool {
	for _, ext := range PartialExtensions {
		if strings.HasSuffix(filename, ext) {
			return false
		}
	}

	if len(filename) < MinFileNameLength {
		return false
	}

	return strings.ContainsAny(filename, " _-")
}

// getDescriptiveScore ranks file names; longer names with word separators win
func getDescriptiveScore(filename string) int {
	score := 0

	switch {
	case len(filename) > LongFileNameLength:
		score += ScoreForLongName
	case len(filename) > MediumFileNameLength:
		score += ScoreForMediumName
	case len(filename) > MinFileNameLength:
		score += ScoreForShortName
	}

	if strings.Contains(filename, " ") {
		score += ScoreForSpaces
	}
	if strings.Contains(filename, "_") {
		score += ScoreForUnderscores
	}
	if strings.Contains(filename, "-") {
		score += ScoreForHyphens
	}

	return score
}

// OpenFileInManager reveals the file in the system file manager. A directory
// is opened as is.
func OpenFileInManager(filePath string) error {
	if info, err := os.Stat(filePath); err == nil && info.IsDir() {
		return openDir(filePath)
	}

	foundPath, err := FindFileWithFallback(filePath)
	if err != nil {
		return fmt.Errorf("file does not exist: %w", err)
	}

	absPath, err := filepath.Abs(foundPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam, absPath).Run()
	case OSLinux:
		return openDirLinux(filepath.Dir(absPath))
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openDir opens a directory in the system file manager
func openDir(dir string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, absDir).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, absDir).Run()
	case OSLinux:
		return openDirLinux(absDir)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openDirLinux opens dir; Linux has no standard "select file" call
func openDirLinux(dir string) error {
	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}
