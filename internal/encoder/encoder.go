// Package encoder builds the ffmpeg subprocess invocation that
// extracts a title's frames as a QOI image sequence, scaled to the
// device's framebuffer width. Adapted from the SvtAv1EncApp command
// builder: the same exec.Command-construction pattern, pointed at a
// different external tool for this domain.
package encoder

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const ffmpegBinary = "ffmpeg"

// ExtractConfig describes one frame-extraction run.
type ExtractConfig struct {
	VideoPath       string  // Source video file
	OutputPattern   string  // e.g. "/frames/%d.qoi"
	FPS             uint8   // Target frame rate
	ScaleWidth      int     // Target width in pixels (height is -1, aspect-preserving)
	StartSeconds    float64 // 0 = no seek
	DurationSeconds float64 // 0 = no duration limit
}

// MakeExtractCmd builds the ffmpeg command that decodes VideoPath into
// a numbered QOI image sequence.
func MakeExtractCmd(cfg *ExtractConfig) *exec.Cmd {
	args := buildExtractArgs(cfg)
	return exec.Command(ffmpegBinary, args...)
}

// MakeExtractCmdContext is MakeExtractCmd with ctx wired through, so
// the subprocess is killed when ctx is canceled.
func MakeExtractCmdContext(ctx context.Context, cfg *ExtractConfig) *exec.Cmd {
	args := buildExtractArgs(cfg)
	return exec.CommandContext(ctx, ffmpegBinary, args...)
}

func buildExtractArgs(cfg *ExtractConfig) []string {
	args := []string{
		"-y", // overwrite existing frame files
		"-probesize", "100M",
		"-analyzeduration", "100M",
	}

	if cfg.StartSeconds > 0 {
		args = append(args, "-ss", fmt.Sprintf("%.3f", cfg.StartSeconds))
	}
	if cfg.DurationSeconds > 0 {
		args = append(args, "-t", fmt.Sprintf("%.3f", cfg.DurationSeconds))
	}

	args = append(args,
		"-i", cfg.VideoPath,
		"-an", "-sn", // no audio, no subtitles
		"-pix_fmt", "rgb24",
		"-r", fmt.Sprintf("%d", cfg.FPS),
		"-vf", fmt.Sprintf("scale=%d:-1", cfg.ScaleWidth),
		cfg.OutputPattern,
	)

	return args
}

// ExtractArgsString returns a human-readable string of the ffmpeg
// arguments, for logging.
func ExtractArgsString(cfg *ExtractConfig) string {
	return strings.Join(buildExtractArgs(cfg), " ")
}

// IsFFmpegAvailable checks if ffmpeg is available in PATH.
func IsFFmpegAvailable() bool {
	_, err := exec.LookPath(ffmpegBinary)
	return err == nil
}

// GetFFmpegPath returns the resolved path to ffmpeg if available.
func GetFFmpegPath() (string, error) {
	return exec.LookPath(ffmpegBinary)
}
