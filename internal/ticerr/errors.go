// Package ticerr defines the named error categories surfaced by the
// encoder, so callers can distinguish failure classes with errors.As
// instead of matching on message text.
package ticerr

import "fmt"

// Config reports a missing or invalid container definition.
type Config struct {
	Msg string
	Err error
}

func (e *Config) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("config: %s", e.Msg)
}

func (e *Config) Unwrap() error { return e.Err }

// NewConfig wraps err (if any) as a Config error.
func NewConfig(msg string, err error) *Config {
	return &Config{Msg: msg, Err: err}
}

// IO reports a filesystem, subprocess, or sink failure.
type IO struct {
	Msg string
	Err error
}

func (e *IO) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("io: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("io: %s", e.Msg)
}

func (e *IO) Unwrap() error { return e.Err }

// NewIO wraps err (if any) as an IO error.
func NewIO(msg string, err error) *IO {
	return &IO{Msg: msg, Err: err}
}

// Codec reports that an encoder output buffer was too small.
type Codec struct {
	Msg string
}

func (e *Codec) Error() string { return fmt.Sprintf("codec: %s", e.Msg) }

// NewCodec constructs a Codec error.
func NewCodec(msg string) *Codec {
	return &Codec{Msg: msg}
}

// Graph reports a sector-graph construction or resolution failure:
// duplicate sector key, missing sector/field, fill origin ahead of the
// fill, external size mismatch, dynamic reference out of range for its
// width, or a chunk-unit reference that isn't chunk-aligned.
type Graph struct {
	Msg string
}

func (e *Graph) Error() string { return fmt.Sprintf("graph: %s", e.Msg) }

// NewGraph constructs a Graph error.
func NewGraph(msg string) *Graph {
	return &Graph{Msg: msg}
}

// Limit reports that an input exceeded a fixed container limit: title
// count over 255, frame count over 2^24-1, or chunk-continuation count
// over 255.
type Limit struct {
	Msg string
}

func (e *Limit) Error() string { return fmt.Sprintf("limit: %s", e.Msg) }

// NewLimit constructs a Limit error.
func NewLimit(msg string) *Limit {
	return &Limit{Msg: msg}
}
