// Package chunk manages the on-disk working directories an encode run
// produces: one frames folder per title, cleaned up unless the caller
// asks to keep them around for debugging.
package chunk

import (
	"os"
	"path/filepath"
)

// CleanupFramesDir removes a title's frames directory. Called after a
// successful assemble pass unless the run was started with
// --keep-frames.
func CleanupFramesDir(dir string) error {
	return os.RemoveAll(dir)
}

// FramesDirPath returns the frames directory for a title, rooted under
// baseDir (the container's own directory by default).
func FramesDirPath(baseDir, name string) string {
	return filepath.Join(baseDir, name)
}
