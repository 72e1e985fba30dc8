// Package ticevid provides a Go library for encoding a TI-CE video
// container: a TOML-defined list of titles, each decoded, QOI-1
// compressed, and serialized into a single device-readable binary.
//
// This file re-exports the internal Reporter interface and associated
// types to allow callers to receive all encoding events directly.
package ticevid

import "github.com/ticevid/encoder/internal/reporter"

// Reporter defines the interface for progress reporting during an
// encode run. Implement this interface to receive detailed events
// about extraction, encoding, and assembly progress.
type Reporter = reporter.Reporter

// NullReporter is a no-op reporter that discards all updates.
type NullReporter = reporter.NullReporter

// ContainerSummary describes a run before any title is processed.
type ContainerSummary = reporter.ContainerSummary

// TitleSummary describes one title before extraction begins.
type TitleSummary = reporter.TitleSummary

// StageProgress represents a generic named-stage update.
type StageProgress = reporter.StageProgress

// ProgressSnapshot contains one title's frame-encode progress.
type ProgressSnapshot = reporter.ProgressSnapshot

// TitleOutcome contains one title's finished encode results.
type TitleOutcome = reporter.TitleOutcome

// ReporterError contains error information.
type ReporterError = reporter.ReporterError
