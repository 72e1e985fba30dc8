package frame

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ticevid/encoder/internal/encoder"
	"github.com/ticevid/encoder/internal/ticerr"
)

// FramesFolderName returns the per-title frames directory name, e.g.
// "movie-Intro-frames" for video "movie.mp4" and title name "Intro".
func FramesFolderName(videoPath, titleName string) string {
	stem := filepath.Base(videoPath)
	stem = stem[:len(stem)-len(filepath.Ext(stem))]
	return fmt.Sprintf("%s-%s-frames", stem, titleName)
}

// ExtractConfig is the title-level input to Extract.
type ExtractConfig struct {
	VideoPath       string
	FramesDir       string
	FPS             uint8
	ScaleWidth      int
	StartSeconds    float64
	DurationSeconds float64
}

// Extract runs the ffmpeg subprocess to decode cfg.VideoPath into a
// numbered QOI sequence under cfg.FramesDir, then counts the frames
// produced. Recreates FramesDir from scratch.
func Extract(ctx context.Context, cfg ExtractConfig) (frameCount int, err error) {
	if err := os.RemoveAll(cfg.FramesDir); err != nil {
		return 0, ticerr.NewIO(fmt.Sprintf("removing stale frames dir %s", cfg.FramesDir), err)
	}
	if err := os.MkdirAll(cfg.FramesDir, 0o755); err != nil {
		return 0, ticerr.NewIO(fmt.Sprintf("creating frames dir %s", cfg.FramesDir), err)
	}

	extractCfg := &encoder.ExtractConfig{
		VideoPath:       cfg.VideoPath,
		OutputPattern:   filepath.Join(cfg.FramesDir, "%d.qoi"),
		FPS:             cfg.FPS,
		ScaleWidth:      cfg.ScaleWidth,
		StartSeconds:    cfg.StartSeconds,
		DurationSeconds: cfg.DurationSeconds,
	}

	cmd := encoder.MakeExtractCmdContext(ctx, extractCfg)
	if err := cmd.Run(); err != nil {
		return 0, ticerr.NewIO(fmt.Sprintf("ffmpeg frame extraction failed for %s", cfg.VideoPath), err)
	}

	entries, err := os.ReadDir(cfg.FramesDir)
	if err != nil {
		return 0, ticerr.NewIO(fmt.Sprintf("reading frames dir %s", cfg.FramesDir), err)
	}

	count := len(entries)
	if count > 1<<24-1 {
		return 0, ticerr.NewLimit(fmt.Sprintf("title %s produced %d frames, exceeding the 2^24-1 frame limit", cfg.VideoPath, count))
	}
	return count, nil
}
