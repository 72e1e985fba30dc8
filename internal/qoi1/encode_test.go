package qoi1

import (
	"bytes"
	"testing"
)

// decode is a test-only reference decoder, written to validate the
// encoder via round-trip rather than to ship in the codec itself.
func decode(data []byte, pixelCount int) []byte {
	out := make([]byte, 0, pixelCount)
	var indexTable [indexTableSize]byte
	var previous byte

	i := 0
	for len(out) < pixelCount {
		tag := data[i]
		switch {
		case tag == tagLiteral:
			value := data[i+1]
			i += 2
			out = append(out, value)
			indexTable[indexHash(value)] = value
			previous = value
		case tag&0b1100_0000 == tagIndex:
			value := indexTable[tag&0b0011_1111]
			i++
			out = append(out, value)
			previous = value
		case tag&0b1100_0000 == tagRun:
			runIndex := int(tag & 0b0011_1111)
			i++
			for n := 0; n <= runIndex; n++ {
				out = append(out, previous)
			}
		default:
			// whatever isn't literal, index, or run is a diff tag
			encoded := tag
			var diff int
			if encoded <= 63 {
				diff = int(encoded) + 1
			} else {
				diff = int(encoded) - 127 - 1
			}
			i++
			value := byte(int(previous) + diff)
			out = append(out, value)
			indexTable[indexHash(value)] = value
			previous = value
		}
	}
	return out
}

func TestRunInitial(t *testing.T) {
	frame := []byte{0, 0, 0, 0}
	out := make([]byte, 16)
	n, err := Encode(frame, out)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{0b1100_0011}
	if !bytes.Equal(out[:n], want) {
		t.Fatalf("got %08b, want %08b", out[:n], want)
	}
}

func TestRunOverflow(t *testing.T) {
	frame := make([]byte, 64)
	out := make([]byte, 16)
	n, err := Encode(frame, out)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{0b1111_1110, 0b1100_0000}
	if !bytes.Equal(out[:n], want) {
		t.Fatalf("got %08b, want %08b", out[:n], want)
	}
}

func TestRoundTripMixed(t *testing.T) {
	frame := []byte{
		0, 0, 0, 1, 1, 2, 3, 3, 3, 3, 3, 3, 3,
		200, 201, 202, 0, 0, 255, 100, 50, 0,
	}
	out := make([]byte, len(frame)*2+2)
	n, err := Encode(frame, out)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got := decode(out[:n], len(frame))
	if !bytes.Equal(got, frame) {
		t.Fatalf("round trip mismatch: got %v, want %v", got, frame)
	}
}

func TestRoundTripAlternating(t *testing.T) {
	frame := make([]byte, 256)
	for i := range frame {
		if i%2 == 0 {
			frame[i] = 10
		} else {
			frame[i] = 200
		}
	}
	out := make([]byte, len(frame)*2+2)
	n, err := Encode(frame, out)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got := decode(out[:n], len(frame))
	if !bytes.Equal(got, frame) {
		t.Fatalf("round trip mismatch for alternating frame")
	}
}

func TestRoundTripAllValues(t *testing.T) {
	frame := make([]byte, 256)
	for i := range frame {
		frame[i] = byte(i)
	}
	out := make([]byte, len(frame)*2+2)
	n, err := Encode(frame, out)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got := decode(out[:n], len(frame))
	if !bytes.Equal(got, frame) {
		t.Fatalf("round trip mismatch for full-range frame")
	}
}

func TestEncodeBufferTooSmall(t *testing.T) {
	frame := []byte{1, 2, 3, 4, 5}
	out := make([]byte, 1)
	_, err := Encode(frame, out)
	if err == nil {
		t.Fatal("expected error for undersized output buffer")
	}
}

func TestEncodeEmptyFrame(t *testing.T) {
	out := make([]byte, 4)
	n, err := Encode(nil, out)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 bytes written for empty frame, got %d", n)
	}
}
