package ticevid

import "time"

// Event types for downstream tooling integration.
const (
	EventTypeContainerStarted  = "container_started"
	EventTypeTitleStarted      = "title_started"
	EventTypeStageProgress     = "stage_progress"
	EventTypeEncodingStarted   = "encoding_started"
	EventTypeEncodingProgress  = "encoding_progress"
	EventTypeTitleComplete     = "title_complete"
	EventTypeOperationComplete = "operation_complete"
	EventTypeWarning           = "warning"
	EventTypeError             = "error"
)

// Event is the interface for all ticevid events.
type Event interface {
	Type() string
	Timestamp() int64
}

// BaseEvent contains common fields for all events.
type BaseEvent struct {
	EventType string `json:"type"`
	Time      int64  `json:"timestamp"`
}

func (e BaseEvent) Type() string     { return e.EventType }
func (e BaseEvent) Timestamp() int64 { return e.Time }

// TitleStartedEvent marks the beginning of one title's pipeline.
type TitleStartedEvent struct {
	BaseEvent
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// EncodingProgressEvent represents one title's frame-encode progress.
type EncodingProgressEvent struct {
	BaseEvent
	TitleName    string  `json:"title_name"`
	CurrentFrame int     `json:"current_frame"`
	TotalFrames  int     `json:"total_frames"`
	Percent      float32 `json:"percent"`
	Speed        float32 `json:"speed"`
}

// TitleCompleteEvent represents one title's finished encode.
type TitleCompleteEvent struct {
	BaseEvent
	Name           string  `json:"name"`
	FrameCount     int     `json:"frame_count"`
	CompressedSize int     `json:"compressed_size"`
	DurationSecs   float64 `json:"duration_secs"`
}

// WarningEvent represents a warning message.
type WarningEvent struct {
	BaseEvent
	Message string `json:"message"`
}

// ErrorEvent represents an error.
type ErrorEvent struct {
	BaseEvent
	Title      string `json:"title"`
	Message    string `json:"message"`
	Context    string `json:"context"`
	Suggestion string `json:"suggestion"`
}

// OperationCompleteEvent represents the overall run finishing.
type OperationCompleteEvent struct {
	BaseEvent
	Message string `json:"message"`
}

// EventHandler is called with events during encoding.
type EventHandler func(Event) error

// NewTimestamp returns the current Unix timestamp.
func NewTimestamp() int64 {
	return time.Now().Unix()
}
