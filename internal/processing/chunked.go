// Package processing orchestrates one container encode run: per-title
// frame extraction and frame-encode, fanned out across titles with a
// bounded errgroup, then handed to the assembler. Adapted from the
// teacher's ProcessChunked/ProcessVideos pair, re-keyed from "chunked
// AV1 transcode of one file" to "frame-extract and QOI-1 encode of one
// title".
package processing

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/ticevid/encoder/internal/assemble"
	"github.com/ticevid/encoder/internal/chunk"
	"github.com/ticevid/encoder/internal/config"
	"github.com/ticevid/encoder/internal/containerdef"
	"github.com/ticevid/encoder/internal/encode"
	"github.com/ticevid/encoder/internal/frame"
	"github.com/ticevid/encoder/internal/reporter"
)

// CheckDependencies verifies that the external tools the pipeline
// shells out to are available in PATH.
func CheckDependencies() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found in PATH (required for frame extraction)")
	}
	return nil
}

// ProcessTitle extracts def's source video into framesDir, runs the
// bounded frame-encode pool over the result, and returns the
// EncodedTitle the assembler needs. Matches the teacher's
// ProcessChunked shape: one file's "index + crop + chunk + encode +
// merge" phases collapsed to this domain's "extract + frame-encode"
// phases.
func ProcessTitle(ctx context.Context, titleIndex int, def containerdef.Title, framesDir string, cfg *config.Config, rep reporter.Reporter) (assemble.EncodedTitle, error) {
	rep.TitleStarted(reporter.TitleSummary{
		Index:  titleIndex,
		Name:   def.Name,
		FPS:    def.FPS,
		Width:  config.LCDWidth,
		Height: config.LCDHeight,
	})

	startSeconds, startNanos := def.Start.ToSeconds()
	var durationSeconds float64
	if def.Durration != nil {
		secs, nanos := def.Durration.ToSeconds()
		durationSeconds = float64(secs) + float64(nanos)/1e9
	}

	rep.StageProgress(reporter.StageProgress{Stage: "Extracting", Message: fmt.Sprintf("decoding %s", def.Video)})
	extractCfg := frame.ExtractConfig{
		VideoPath:       def.Video,
		FramesDir:       framesDir,
		FPS:             def.FPS,
		ScaleWidth:      config.LCDWidth,
		StartSeconds:    float64(startSeconds) + float64(startNanos)/1e9,
		DurationSeconds: durationSeconds,
	}
	frameCount, err := frame.Extract(ctx, extractCfg)
	if err != nil {
		return assemble.EncodedTitle{}, fmt.Errorf("extracting title %q: %w", def.Name, err)
	}
	rep.Verbose(fmt.Sprintf("extracted %d frames for %q", frameCount, def.Name))

	rep.StageProgress(reporter.StageProgress{Stage: "Encoding", Message: fmt.Sprintf("compressing %d frames", frameCount)})
	rep.EncodingStarted(uint64(frameCount))

	startTime := time.Now()
	encCfg := encode.Config{
		Workers:  cfg.Workers,
		Geometry: frame.Geometry{Width: config.LCDWidth, Height: config.LCDHeight},
		Sizes:    frame.Sizes{FirstChunk: config.PictureStartImageSize, RestChunk: config.PictureImageSize},
	}

	progressCb := func(p encode.Progress) {
		elapsed := time.Since(startTime).Seconds()
		var speed float32
		if elapsed > 0 {
			speed = float32(float64(p.FramesComplete) / elapsed)
		}
		percent := float32(0)
		if p.FramesTotal > 0 {
			percent = float32(p.FramesComplete) * 100 / float32(p.FramesTotal)
		}
		rep.EncodingProgress(reporter.ProgressSnapshot{
			CurrentFrame: p.FramesComplete,
			TotalFrames:  p.FramesTotal,
			Percent:      percent,
			Speed:        speed,
		})
	}

	chunkSizes, err := encode.EncodeTitle(ctx, framesDir, frameCount, encCfg, progressCb)
	if err != nil {
		return assemble.EncodedTitle{}, fmt.Errorf("encoding title %q: %w", def.Name, err)
	}

	totalCompressed := 0
	for _, sizes := range chunkSizes {
		for _, s := range sizes {
			totalCompressed += s
		}
	}
	rep.TitleComplete(reporter.TitleOutcome{
		Name:           def.Name,
		FrameCount:     frameCount,
		CompressedSize: totalCompressed,
		Duration:       time.Since(startTime),
	})

	return assemble.EncodedTitle{
		Definition: def,
		FramesDir:  framesDir,
		ChunkSizes: chunkSizes,
	}, nil
}

// CleanupTitle removes a title's frames directory unless keepFrames is
// set.
func CleanupTitle(framesDir string, keepFrames bool) error {
	if keepFrames {
		return nil
	}
	return chunk.CleanupFramesDir(framesDir)
}
