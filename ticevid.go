// Package ticevid provides a Go library for encoding TI-CE video
// containers: a TOML-defined list of titles, each decoded, QOI-1
// compressed, and serialized into a single device container binary.
//
// Basic usage:
//
//	encoder, err := ticevid.New("container.toml", "out.bin",
//	    ticevid.WithWorkers(8),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := encoder.Encode(ctx, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Wrote %s: %d titles\n", result.OutputPath, result.TitleCount)
package ticevid

import (
	"context"

	"github.com/ticevid/encoder/internal/config"
	"github.com/ticevid/encoder/internal/containerdef"
	"github.com/ticevid/encoder/internal/processing"
	"github.com/ticevid/encoder/internal/reporter"
	"github.com/ticevid/encoder/internal/validation"
)

// Encoder is the main entry point for container encoding.
type Encoder struct {
	config *config.Config
}

// Result contains the result of one container encode run.
type Result struct {
	OutputPath       string
	TitleCount       int
	ValidationPassed bool
	ValidationSteps  []ValidationStep
}

// ValidationStep represents a single post-assemble structural check.
type ValidationStep struct {
	Name    string
	Passed  bool
	Details string
}

// Option configures the encoder.
type Option func(*config.Config)

// New creates a new Encoder for containerPath -> outputPath with the
// given options.
func New(containerPath, outputPath string, opts ...Option) (*Encoder, error) {
	cfg := config.New(containerPath, outputPath)

	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Encoder{config: cfg}, nil
}

// WithWorkers sets the number of parallel frame-encode workers.
// Default is runtime.NumCPU().
func WithWorkers(workers int) Option {
	return func(c *config.Config) {
		c.Workers = workers
	}
}

// WithKeepFrames retains each title's extracted/encoded frame files
// after a successful run, useful for debugging the pipeline.
func WithKeepFrames() Option {
	return func(c *config.Config) {
		c.KeepFrames = true
	}
}

// WithVerbose enables verbose reporter output.
func WithVerbose() Option {
	return func(c *config.Config) {
		c.Verbose = true
	}
}

// EncodeWithReporter runs the container encode using a custom
// Reporter. This provides direct access to every pipeline event,
// unlike Encode which uses the EventHandler abstraction.
func (e *Encoder) EncodeWithReporter(ctx context.Context, rep Reporter) (*Result, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}

	c, err := containerdef.Load(e.config.ContainerPath)
	if err != nil {
		return nil, err
	}

	result, err := processing.ProcessContainer(ctx, e.config, c, rep)
	if err != nil {
		return nil, err
	}

	return toResult(e.config.OutputPath, len(c.Titles), result), nil
}

// Encode runs the container encode, delivering progress through
// handler.
func (e *Encoder) Encode(ctx context.Context, handler EventHandler) (*Result, error) {
	var rep Reporter = reporter.NullReporter{}
	if handler != nil {
		rep = newEventReporter(handler)
	}
	return e.EncodeWithReporter(ctx, rep)
}

func toResult(outputPath string, titleCount int, v *validation.Result) *Result {
	steps := make([]ValidationStep, len(v.Steps))
	for i, s := range v.Steps {
		steps[i] = ValidationStep{Name: s.Name, Passed: s.Passed, Details: s.Details}
	}
	return &Result{
		OutputPath:       outputPath,
		TitleCount:       titleCount,
		ValidationPassed: v.IsValid(),
		ValidationSteps:  steps,
	}
}

// eventReporter adapts EventHandler to the Reporter interface.
type eventReporter struct {
	handler EventHandler
}

func newEventReporter(handler EventHandler) *eventReporter {
	return &eventReporter{handler: handler}
}

func (r *eventReporter) ContainerStarted(s reporter.ContainerSummary) {
	_ = r.handler(BaseEvent{EventType: EventTypeContainerStarted, Time: NewTimestamp()})
}

func (r *eventReporter) TitleStarted(s reporter.TitleSummary) {
	_ = r.handler(TitleStartedEvent{
		BaseEvent: BaseEvent{EventType: EventTypeTitleStarted, Time: NewTimestamp()},
		Index:     s.Index,
		Name:      s.Name,
	})
}

func (r *eventReporter) StageProgress(reporter.StageProgress) {}

func (r *eventReporter) EncodingStarted(uint64) {}

func (r *eventReporter) EncodingProgress(p reporter.ProgressSnapshot) {
	_ = r.handler(EncodingProgressEvent{
		BaseEvent:    BaseEvent{EventType: EventTypeEncodingProgress, Time: NewTimestamp()},
		CurrentFrame: p.CurrentFrame,
		TotalFrames:  p.TotalFrames,
		Percent:      p.Percent,
		Speed:        p.Speed,
	})
}

func (r *eventReporter) TitleComplete(s reporter.TitleOutcome) {
	_ = r.handler(TitleCompleteEvent{
		BaseEvent:      BaseEvent{EventType: EventTypeTitleComplete, Time: NewTimestamp()},
		Name:           s.Name,
		FrameCount:     s.FrameCount,
		CompressedSize: s.CompressedSize,
		DurationSecs:   s.Duration.Seconds(),
	})
}

func (r *eventReporter) Warning(message string) {
	_ = r.handler(WarningEvent{
		BaseEvent: BaseEvent{EventType: EventTypeWarning, Time: NewTimestamp()},
		Message:   message,
	})
}

func (r *eventReporter) Error(e reporter.ReporterError) {
	_ = r.handler(ErrorEvent{
		BaseEvent:  BaseEvent{EventType: EventTypeError, Time: NewTimestamp()},
		Title:      e.Title,
		Message:    e.Message,
		Context:    e.Context,
		Suggestion: e.Suggestion,
	})
}

func (r *eventReporter) OperationComplete(message string) {
	_ = r.handler(OperationCompleteEvent{
		BaseEvent: BaseEvent{EventType: EventTypeOperationComplete, Time: NewTimestamp()},
		Message:   message,
	})
}

func (r *eventReporter) Verbose(string) {}
