// Package processing orchestrates one container encode run: per-title
// frame extraction and frame-encode, fanned out across titles with a
// bounded errgroup, then handed to the assembler and validator.
// Adapted from the teacher's ProcessVideos (batch orchestration) and
// ProcessChunked (per-item phase-1 errgroup) pair, re-keyed from
// "batch of AV1 transcodes" to "one container of QOI-1 titles".
package processing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/ticevid/encoder/internal/assemble"
	"github.com/ticevid/encoder/internal/config"
	"github.com/ticevid/encoder/internal/containerdef"
	"github.com/ticevid/encoder/internal/frame"
	"github.com/ticevid/encoder/internal/reporter"
	"github.com/ticevid/encoder/internal/ticerr"
	"github.com/ticevid/encoder/internal/util"
	"github.com/ticevid/encoder/internal/validation"
)

// ProcessContainer runs the full pipeline for every title in c: extract
// and frame-encode titles concurrently, bounded the same way the
// teacher bounds its phase-1 indexing/crop goroutines with errgroup,
// assemble the resulting sector graph to cfg.OutputPath, then validate
// the written file.
func ProcessContainer(ctx context.Context, cfg *config.Config, c *containerdef.Container, rep reporter.Reporter) (*validation.Result, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}

	rep.ContainerStarted(reporter.ContainerSummary{
		ContainerPath: cfg.ContainerPath,
		OutputPath:    cfg.OutputPath,
		TitleCount:    len(c.Titles),
		Workers:       cfg.Workers,
	})

	workDir, err := util.CreateTempDir(filepath.Dir(cfg.OutputPath), "ticevid-encode")
	if err != nil {
		return nil, ticerr.NewIO("creating work directory", err)
	}
	keepWorkDir := cfg.KeepFrames
	defer func() {
		if !keepWorkDir {
			_ = workDir.Cleanup()
		}
	}()

	framesDirs := make([]string, len(c.Titles))
	for i, t := range c.Titles {
		framesDirs[i] = filepath.Join(filepath.Dir(cfg.OutputPath), frame.FramesFolderName(t.Video, t.Name))
	}

	encoded := make([]assemble.EncodedTitle, len(c.Titles))

	phase1, groupCtx := errgroup.WithContext(ctx)
	phase1.SetLimit(titleConcurrency(cfg.Workers, len(c.Titles)))

	for i, def := range c.Titles {
		i, def := i, def
		phase1.Go(func() error {
			et, err := ProcessTitle(groupCtx, i, def, framesDirs[i], cfg, rep)
			if err != nil {
				return err
			}
			encoded[i] = et
			return nil
		})
	}

	if err := phase1.Wait(); err != nil {
		return nil, err
	}

	rep.StageProgress(reporter.StageProgress{Stage: "Assembling", Message: "writing container"})
	out, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, ticerr.NewIO(fmt.Sprintf("creating output container %s", cfg.OutputPath), err)
	}
	assembleErr := assemble.AssembleContainer(encoded, out)
	closeErr := out.Close()
	if assembleErr != nil {
		return nil, assembleErr
	}
	if closeErr != nil {
		return nil, ticerr.NewIO(fmt.Sprintf("closing output container %s", cfg.OutputPath), closeErr)
	}

	if !cfg.KeepFrames {
		for _, dir := range framesDirs {
			if err := CleanupTitle(dir, false); err != nil {
				rep.Warning(fmt.Sprintf("cleaning up %s: %v", dir, err))
			}
		}
	}

	rep.StageProgress(reporter.StageProgress{Stage: "Validating", Message: "checking container structure"})
	result, err := validation.ValidateContainer(cfg.OutputPath, len(c.Titles))
	if err != nil {
		return nil, err
	}
	if !result.IsValid() {
		for _, step := range result.Steps {
			if !step.Passed {
				rep.Warning(fmt.Sprintf("%s: %s", step.Name, step.Details))
			}
		}
	}

	rep.OperationComplete(fmt.Sprintf("wrote %s", cfg.OutputPath))
	return result, nil
}

// titleConcurrency bounds how many titles extract and encode at once.
// Each title already fans its own frame-encode pool out to cfg.Workers
// goroutines, so running every title at once would oversubscribe the
// machine; one title in flight is the safe default except when the
// worker count per title is small enough that a couple of titles
// still fit comfortably.
func titleConcurrency(workers, titleCount int) int {
	if workers >= 4 || titleCount <= 1 {
		return 1
	}
	return 2
}
