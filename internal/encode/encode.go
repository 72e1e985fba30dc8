// Package encode provides the parallel per-frame encode pipeline: a
// bounded worker pool that decodes, QOI-1 compresses, and slices one
// title's frame sequence into picture-chunk files. Adapted from the
// teacher's chunk-level semaphore-bounded worker pool, generalized from
// "chunk of source frames -> one IVF file" to "one frame -> a small
// chain of picture-chunk files".
package encode

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ticevid/encoder/internal/frame"
)

// Config controls one title's frame-encode pass.
type Config struct {
	Workers     int // Parallel frame-encode workers
	ChunkBuffer int // Extra in-flight frame tasks allowed beyond Workers
	Geometry    frame.Geometry
	Sizes       frame.Sizes
}

// Progress is reported to ProgressCallback as frames complete.
type Progress struct {
	FramesTotal    int
	FramesComplete int
	BytesComplete  int
}

// ProgressCallback is invoked once per config.Workers-multiple of
// completed frames, and once more at completion.
type ProgressCallback func(Progress)

// frameResult is one frame task's outcome, keyed by its 0-indexed
// position in the title's frame sequence.
type frameResult struct {
	index      int
	compressed int
	chunkSizes []int
	err        error
}

// EncodeTitle runs framesDir's numbered 1.qoi..N.qoi sequence through
// the bounded frame-encode pool and returns, for each frame in order,
// the picture-chunk sizes written under framesDir. progressCb may be
// nil.
func EncodeTitle(ctx context.Context, framesDir string, frameCount int, cfg Config, progressCb ProgressCallback) ([][]int, error) {
	if frameCount == 0 {
		return nil, nil
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, permits(workers, cfg.ChunkBuffer))

	results := make([]frameResult, frameCount)
	var errOnce sync.Once
	var firstErr atomic.Pointer[error]
	setErr := func(err error) {
		errOnce.Do(func() {
			firstErr.Store(&err)
		})
	}
	getErr := func() error {
		if p := firstErr.Load(); p != nil {
			return *p
		}
		return nil
	}

	var wg sync.WaitGroup
	var progressMu sync.Mutex
	var framesComplete, bytesComplete int

	reportEvery := max(1, workers)

	for i := 0; i < frameCount; i++ {
		select {
		case <-ctx.Done():
			setErr(ctx.Err())
		default:
		}
		if getErr() != nil {
			break
		}

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			setErr(ctx.Err())
		}
		if getErr() != nil {
			break
		}

		wg.Add(1)
		go func(frameIdx int) {
			defer wg.Done()
			defer func() { <-sem }()

			onDiskFrame := frameIdx + 1
			framePath := sourceFramePath(framesDir, onDiskFrame)

			compressed, chunkSizes, err := frame.Encode(framePath, framesDir, onDiskFrame, cfg.Geometry, cfg.Sizes)
			results[frameIdx] = frameResult{index: frameIdx, compressed: compressed, chunkSizes: chunkSizes, err: err}
			if err != nil {
				setErr(fmt.Errorf("encoding frame %d: %w", onDiskFrame, err))
				return
			}

			progressMu.Lock()
			framesComplete++
			bytesComplete += compressed
			complete := framesComplete
			bytes := bytesComplete
			progressMu.Unlock()

			if progressCb != nil && (complete%reportEvery == 0 || complete == frameCount) {
				progressCb(Progress{FramesTotal: frameCount, FramesComplete: complete, BytesComplete: bytes})
			}
		}(i)
	}

	wg.Wait()

	if err := getErr(); err != nil {
		return nil, err
	}

	chunkSizes := make([][]int, frameCount)
	for i, r := range results {
		chunkSizes[i] = r.chunkSizes
	}
	return chunkSizes, nil
}

func sourceFramePath(framesDir string, onDiskFrame int) string {
	return fmt.Sprintf("%s/%d.qoi", framesDir, onDiskFrame)
}
