// Package qoi1 implements the single-channel QOI-1 codec: a variant of
// the QOI image format (https://qoiformat.org/qoi-specification.pdf)
// with one color channel and a widened diff range replacing QOI's
// separate diff/luma chunks. Ported from the reference encoder's
// run/index/diff/literal state machine.
package qoi1

import (
	"runtime"

	"github.com/ticevid/encoder/internal/ticerr"
)

const (
	tagLiteral byte = 0xFF
	tagDiff    byte = 0b0000_0000
	tagIndex   byte = 0b1000_0000
	tagRun     byte = 0b1100_0000

	// maxRun is the highest run-length tag value (xxxxxx in 11xxxxxx);
	// a run tag of maxRun always terminates the current run attempt.
	maxRun = 62

	indexTableSize = 64
)

// Encoder holds QOI-1 encoder state: the single-slot-per-hash index
// table and the previously emitted pixel. The zero value is ready to
// use, matching the Rust encoder's Default (index table zeroed,
// previous pixel implicitly 0).
type Encoder struct {
	indexTable     [indexTableSize]byte
	previousPixel  byte
	outputPosition int
}

func indexHash(value byte) byte {
	return value % indexTableSize
}

func (e *Encoder) indexInsert(value byte) {
	e.indexTable[indexHash(value)] = value
}

func (e *Encoder) indexHas(value byte) bool {
	return e.indexTable[indexHash(value)] == value
}

func (e *Encoder) write(value byte, out []byte) {
	out[e.outputPosition] = value
	e.outputPosition++
}

func (e *Encoder) writeRun(value byte, out []byte) {
	e.write(tagRun|value, out)
}

func (e *Encoder) writeLiteral(value byte, out []byte) {
	e.write(tagLiteral, out)
	e.write(value, out)
}

func (e *Encoder) writeIndex(value byte, out []byte) {
	e.write(tagIndex|indexHash(value), out)
}

// writeDiff encodes a signed difference in [-64,-1] ∪ [1,64]: for
// d in 1..=64, byte = d-1; for d in -64..=-1, byte = 127+(d+1).
func (e *Encoder) writeDiff(diff int, out []byte) {
	var encoded byte
	switch {
	case diff >= 1 && diff <= 64:
		encoded = byte(diff - 1)
	case diff >= -64 && diff <= -1:
		encoded = byte(127 + (diff + 1))
	default:
		panic("qoi1: invalid diff value outside encodable range")
	}
	e.write(tagDiff|encoded, out)
}

// control reports what a chunk-creation attempt did, mirroring the
// reference encoder's three-way branch.
type control int

const (
	controlWrote control = iota
	controlInvalid
	controlDone
)

// createRun consumes pixels equal to previousPixel, up to 63
// consecutive, emitting one run tag once the run terminates (the next
// pixel differs, the cap is hit, or input ends). Run tags never update
// previousPixel.
func (e *Encoder) createRun(pixels []byte, pos *int, out []byte) control {
	for runIndex := 0; runIndex <= maxRun; runIndex++ {
		if *pos >= len(pixels) {
			return controlDone
		}
		pixel := pixels[*pos]
		if pixel != e.previousPixel {
			return controlInvalid
		}
		*pos++
		if *pos >= len(pixels) {
			e.writeRun(byte(runIndex), out)
			return controlDone
		}
		next := pixels[*pos]
		if next != e.previousPixel || runIndex == maxRun {
			e.writeRun(byte(runIndex), out)
			return controlWrote
		}
	}
	return controlInvalid
}

func (e *Encoder) createIndex(pixels []byte, pos *int, out []byte) control {
	if *pos >= len(pixels) {
		return controlDone
	}
	pixel := pixels[*pos]
	if !e.indexHas(pixel) {
		return controlInvalid
	}
	*pos++
	e.writeIndex(pixel, out)
	e.previousPixel = pixel
	return controlWrote
}

func (e *Encoder) createDifference(pixels []byte, pos *int, out []byte) control {
	if *pos >= len(pixels) {
		return controlDone
	}
	pixel := pixels[*pos]
	diff := int(int8(pixel - e.previousPixel))
	if diff < -64 || diff == 0 || diff > 64 {
		return controlInvalid
	}
	*pos++
	e.indexInsert(pixel)
	e.writeDiff(diff, out)
	e.previousPixel = pixel
	return controlWrote
}

// Encode compresses frame (a row-major raster of 8-bit pixels, already
// RGB332-packed upstream) into out, returning the number of bytes
// written. Returns a *ticerr.Codec if out is too small.
func (e *Encoder) Encode(frame, out []byte) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			// Only an out-of-range write into out is a caller error;
			// any other panic is an internal invariant violation.
			if _, ok := r.(runtime.Error); !ok {
				panic(r)
			}
			err = ticerr.NewCodec("output buffer too small")
		}
	}()

	pos := 0
	for {
		switch e.createRun(frame, &pos, out) {
		case controlWrote:
			continue
		case controlDone:
			return e.outputPosition, nil
		case controlInvalid:
		}

		switch e.createIndex(frame, &pos, out) {
		case controlWrote:
			continue
		case controlDone:
			return e.outputPosition, nil
		case controlInvalid:
		}

		switch e.createDifference(frame, &pos, out) {
		case controlWrote:
			continue
		case controlDone:
			return e.outputPosition, nil
		case controlInvalid:
		}

		if pos >= len(frame) {
			return e.outputPosition, nil
		}
		pixel := frame[pos]
		pos++
		e.writeLiteral(pixel, out)
		e.indexInsert(pixel)
		e.previousPixel = pixel
	}
}

// Encode is a convenience wrapper that allocates a fresh Encoder.
func Encode(frame, out []byte) (int, error) {
	var e Encoder
	return e.Encode(frame, out)
}
