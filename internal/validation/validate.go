// Package validation provides post-assemble validation checks: does
// the produced container binary match the structural invariants the
// serializer is supposed to guarantee. Modeled on the teacher's
// ValidateOutputVideo — a struct of named checks each reporting pass
// or failure with a message — re-keyed from AV1 output properties to
// the container's fixed-layout invariants.
package validation

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/ticevid/encoder/internal/config"
)

// Step is a single named check's outcome.
type Step struct {
	Name    string
	Passed  bool
	Details string
}

// Result is the full set of checks run against one container file.
type Result struct {
	Steps []Step
}

// IsValid reports whether every step passed.
func (r *Result) IsValid() bool {
	for _, s := range r.Steps {
		if !s.Passed {
			return false
		}
	}
	return true
}

// ValidateContainer opens path and checks the fixed header fields,
// overall file size alignment, and title count against wantTitles.
func ValidateContainer(path string, wantTitles int) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening container %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat container %s: %w", path, err)
	}

	header := make([]byte, config.HeaderSize)
	if _, err := f.ReadAt(header, 0); err != nil {
		return nil, fmt.Errorf("reading header from %s: %w", path, err)
	}

	result := &Result{}
	result.Steps = append(result.Steps, validateSchemaVersion(header))
	result.Steps = append(result.Steps, validateTitleCount(header, wantTitles))
	result.Steps = append(result.Steps, validateFileSize(info.Size()))

	return result, nil
}

func validateSchemaVersion(header []byte) Step {
	major := binary.LittleEndian.Uint16(header[0:2])
	minor := header[2]
	patch := header[3]
	if major == config.SchemaVersionMajor && minor == config.SchemaVersionMinor && patch == config.SchemaVersionPatch {
		return Step{Name: "Schema version", Passed: true, Details: fmt.Sprintf("%d.%d.%d", major, minor, patch)}
	}
	return Step{
		Name:   "Schema version",
		Passed: false,
		Details: fmt.Sprintf("got %d.%d.%d, expected %d.%d.%d",
			major, minor, patch, config.SchemaVersionMajor, config.SchemaVersionMinor, config.SchemaVersionPatch),
	}
}

func validateTitleCount(header []byte, want int) Step {
	got := int(header[4])
	if got == want {
		return Step{Name: "Title count", Passed: true, Details: fmt.Sprintf("%d", got)}
	}
	return Step{Name: "Title count", Passed: false, Details: fmt.Sprintf("got %d, expected %d", got, want)}
}

func validateFileSize(size int64) Step {
	if size < config.HeaderSize {
		return Step{Name: "File size", Passed: false, Details: fmt.Sprintf("%d bytes is smaller than one header", size)}
	}
	remainder := (size - config.HeaderSize) % config.ChunkSize
	if remainder != 0 {
		return Step{
			Name:    "File size",
			Passed:  false,
			Details: fmt.Sprintf("%d bytes leaves a %d-byte remainder past the header; body must be a whole number of %d-byte chunks", size, remainder, config.ChunkSize),
		}
	}
	return Step{Name: "File size", Passed: true, Details: fmt.Sprintf("%d bytes, header + %d chunks", size, (size-config.HeaderSize)/config.ChunkSize)}
}
