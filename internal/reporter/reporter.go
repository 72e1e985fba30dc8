// Package reporter defines the event surface an encode run reports
// through, and two concrete sinks: a colored terminal reporter and a
// plain-text log reporter. Modeled on the teacher's Reporter interface
// and its terminal/log implementations, re-keyed from per-file AV1
// transcode events to per-container/per-title container-encode events.
package reporter

import "time"

// Reporter receives events as AssembleContainer's callers extract,
// encode, and assemble each title.
type Reporter interface {
	ContainerStarted(ContainerSummary)
	TitleStarted(TitleSummary)
	StageProgress(StageProgress)
	EncodingStarted(totalFrames uint64)
	EncodingProgress(ProgressSnapshot)
	TitleComplete(TitleOutcome)
	Warning(message string)
	Error(ReporterError)
	OperationComplete(message string)
	Verbose(message string)
}

// ContainerSummary describes a run before any title is processed.
type ContainerSummary struct {
	ContainerPath string
	OutputPath    string
	TitleCount    int
	Workers       int
}

// TitleSummary describes one title before extraction begins.
type TitleSummary struct {
	Index  int
	Name   string
	FPS    uint8
	Width  int
	Height int
}

// StageProgress is a generic named-stage update (extracting, encoding,
// assembling).
type StageProgress struct {
	Stage   string
	Message string
}

// ProgressSnapshot is emitted during one title's frame-encode pass.
type ProgressSnapshot struct {
	CurrentFrame int
	TotalFrames  int
	Percent      float32
	Speed        float32 // frames encoded per real second
	ETA          time.Duration
}

// TitleOutcome is emitted once a title's picture chunks are all
// written and sized.
type TitleOutcome struct {
	Name           string
	FrameCount     int
	CompressedSize int
	Duration       time.Duration
}

// ReporterError carries a titled, contextual error for display.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}

// NullReporter discards every event. The zero value is ready to use.
type NullReporter struct{}

func (NullReporter) ContainerStarted(ContainerSummary) {}
func (NullReporter) TitleStarted(TitleSummary)         {}
func (NullReporter) StageProgress(StageProgress)       {}
func (NullReporter) EncodingStarted(uint64)            {}
func (NullReporter) EncodingProgress(ProgressSnapshot) {}
func (NullReporter) TitleComplete(TitleOutcome)        {}
func (NullReporter) Warning(string)                    {}
func (NullReporter) Error(ReporterError)               {}
func (NullReporter) OperationComplete(string)          {}
func (NullReporter) Verbose(string)                    {}
