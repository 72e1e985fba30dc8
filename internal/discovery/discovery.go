// Package discovery checks that the video files a container definition
// points to look like video files before the expensive extract/encode
// pipeline touches them. Adapted from the teacher's directory-scan
// discovery into an extension-sniffing guard over an explicit file
// list, since this tool's container.toml already names its sources
// rather than a directory to scan.
package discovery

import (
	"fmt"
	"path/filepath"
	"strings"
)

// videoExtensions are the containers ffmpeg can be expected to read
// frames from for this pipeline's purposes.
var videoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".mov":  true,
	".avi":  true,
	".webm": true,
	".m4v":  true,
	".ts":   true,
}

// IsVideoFile reports whether path's extension looks like a video
// container ffmpeg can demux.
func IsVideoFile(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// CheckVideoExtensions validates that every path in paths has a
// recognized video extension, returning the first offender as an
// error.
func CheckVideoExtensions(paths []string) error {
	for _, p := range paths {
		if !IsVideoFile(p) {
			return fmt.Errorf("%s does not have a recognized video extension", p)
		}
	}
	return nil
}
