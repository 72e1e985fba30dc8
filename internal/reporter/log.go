package reporter

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// LogReporter writes encoding events to a log file.
type LogReporter struct {
	w                  io.Writer
	mu                 sync.Mutex
	lastProgressBucket int // Track progress in 5% buckets
}

// NewLogReporter creates a new log reporter that writes to the given writer.
func NewLogReporter(w io.Writer) *LogReporter {
	return &LogReporter{
		w:                  w,
		lastProgressBucket: -1,
	}
}

func (r *LogReporter) log(level, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(r.w, "%s [%s] %s\n", timestamp, level, msg)
}

func (r *LogReporter) ContainerStarted(summary ContainerSummary) {
	r.log("INFO", "=== CONTAINER ===")
	r.log("INFO", "Source: %s", summary.ContainerPath)
	r.log("INFO", "Output: %s", summary.OutputPath)
	r.log("INFO", "Titles: %d", summary.TitleCount)
	r.log("INFO", "Workers: %d", summary.Workers)
}

func (r *LogReporter) TitleStarted(summary TitleSummary) {
	r.log("INFO", "=== TITLE %d: %s ===", summary.Index+1, summary.Name)
	r.log("INFO", "FPS: %d, geometry: %dx%d", summary.FPS, summary.Width, summary.Height)
}

func (r *LogReporter) StageProgress(update StageProgress) {
	r.log("INFO", "[%s] %s", strings.ToUpper(update.Stage), update.Message)
}

func (r *LogReporter) EncodingStarted(totalFrames uint64) {
	r.mu.Lock()
	r.lastProgressBucket = -1
	r.mu.Unlock()
	r.log("INFO", "=== ENCODING STARTED === (total frames: %d)", totalFrames)
}

func (r *LogReporter) EncodingProgress(progress ProgressSnapshot) {
	bucket := int(progress.Percent / 5)
	r.mu.Lock()
	if bucket > r.lastProgressBucket && bucket <= 20 {
		r.lastProgressBucket = bucket
		r.mu.Unlock()
		r.log("INFO", "Progress: %.0f%% (frame %d/%d, %.1f fps)",
			progress.Percent, progress.CurrentFrame, progress.TotalFrames, progress.Speed)
	} else {
		r.mu.Unlock()
	}
}

func (r *LogReporter) TitleComplete(outcome TitleOutcome) {
	r.log("INFO", "=== TITLE COMPLETE: %s ===", outcome.Name)
	r.log("INFO", "Frames: %d, compressed: %d bytes, time: %s", outcome.FrameCount, outcome.CompressedSize, outcome.Duration)
}

func (r *LogReporter) Warning(message string) {
	r.log("WARN", "%s", message)
}

func (r *LogReporter) Error(err ReporterError) {
	r.log("ERROR", "%s: %s", err.Title, err.Message)
	if err.Context != "" {
		r.log("ERROR", "  Context: %s", err.Context)
	}
	if err.Suggestion != "" {
		r.log("ERROR", "  Suggestion: %s", err.Suggestion)
	}
}

func (r *LogReporter) OperationComplete(message string) {
	r.log("INFO", "=== COMPLETE === %s", message)
}

func (r *LogReporter) Verbose(message string) {
	r.log("DEBUG", "%s", message)
}
