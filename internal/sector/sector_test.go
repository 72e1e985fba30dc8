package sector

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/ticevid/encoder/internal/ticerr"
)

func build(t *testing.T, g *Graph[string]) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := g.Build(&buf); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return buf.Bytes()
}

func TestStringSector(t *testing.T) {
	g := NewGraph[string](0)
	if err := g.Sector("First", New[string]().String("This is a test")); err != nil {
		t.Fatalf("Sector: %v", err)
	}
	got := build(t, g)
	want := []byte("This is a test\x00")
	if !bytes.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestU24Sector(t *testing.T) {
	g := NewGraph[string](0)
	if err := g.Sector("First", New[string]().U24(0x563412)); err != nil {
		t.Fatalf("Sector: %v", err)
	}
	got := build(t, g)
	want := []byte{0x12, 0x34, 0x56}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDynamicPointerChain(t *testing.T) {
	g := NewGraph[string](0)
	mustSector(t, g, "First", New[string]().U8(0xFF))
	mustSector(t, g, "Second", New[string]().
		Dynamic("Second", "Third", 0, UnitBytes, 3).
		Dynamic("Second", "Third", 1, UnitBytes, 3))
	mustSector(t, g, "Third", New[string]().
		String("first string").
		String("second string"))

	got := build(t, g)
	want := append([]byte{0xFF, 0x06, 0x00, 0x00, 0x13, 0x00, 0x00}, []byte("first string\x00second string\x00")...)
	if !bytes.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFill(t *testing.T) {
	g := NewGraph[string](0)
	mustSector(t, g, "First", New[string]())
	mustSector(t, g, "Second", New[string]().
		String("Test").
		Fill("First", 16).
		U8(0xFF))

	got := build(t, g)
	want := append([]byte("Test\x00"), make([]byte, 11)...)
	want = append(want, 0xFF)
	if !bytes.Equal(got, want) {
		t.Fatalf("got %v (len %d), want %v (len %d)", got, len(got), want, len(want))
	}
	if len(got) != 17 {
		t.Fatalf("expected 17 bytes, got %d", len(got))
	}
}

func TestFillOverflow(t *testing.T) {
	g := NewGraph[string](0)
	mustSector(t, g, "First", New[string]())
	mustSector(t, g, "Second", New[string]().
		String("Test").
		Fill("First", 2))

	var buf bytes.Buffer
	err := g.Build(&buf)
	if err == nil {
		t.Fatal("expected fill overflow error")
	}
	var graphErr *ticerr.Graph
	if !errors.As(err, &graphErr) {
		t.Fatalf("expected *ticerr.Graph, got %T: %v", err, err)
	}
}

func TestDuplicateSectorKey(t *testing.T) {
	g := NewGraph[string](0)
	mustSector(t, g, "First", New[string]().U8(1))
	err := g.Sector("First", New[string]().U8(2))
	if err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestChunkUnitDynamic(t *testing.T) {
	const chunkSize = 8192
	g := NewGraph[string](chunkSize)
	mustSector(t, g, "Origin", New[string]())
	mustSector(t, g, "Pad", New[string]().Fill("Origin", chunkSize*2))
	mustSector(t, g, "Target", New[string]().U8(0x42))
	mustSector(t, g, "Ref", New[string]().Dynamic("Origin", "Target", 0, UnitChunks, 2))

	got := build(t, g)
	// Target starts exactly at chunkSize*2 (after Origin + the fill), so
	// it is 2 chunk-units away from Origin; Ref's own field follows it.
	refFieldStart := chunkSize*2 + 1
	wantChunkUnits := uint16(2)
	gotChunkUnits := uint16(got[refFieldStart]) | uint16(got[refFieldStart+1])<<8
	if gotChunkUnits != wantChunkUnits {
		t.Fatalf("got %d chunk units, want %d", gotChunkUnits, wantChunkUnits)
	}
}

func TestChunkUnitMisaligned(t *testing.T) {
	const chunkSize = 8192
	g := NewGraph[string](chunkSize)
	mustSector(t, g, "Origin", New[string]().U8(1))
	mustSector(t, g, "Ref", New[string]().Dynamic("Origin", "Target", 0, UnitChunks, 2))
	mustSector(t, g, "Target", New[string]().U8(2))

	var buf bytes.Buffer
	err := g.Build(&buf)
	if err == nil {
		t.Fatal("expected misaligned chunk-unit reference error")
	}
}

func TestSizePassMatchesEmitCount(t *testing.T) {
	g := NewGraph[string](0)
	mustSector(t, g, "A", New[string]().U8(1).U16(2).U32(3).Dynamic("A", "B", 0, UnitBytes, 3))
	mustSector(t, g, "B", New[string]().String("hello"))

	lay, err := g.sizePass()
	if err != nil {
		t.Fatalf("sizePass: %v", err)
	}
	wantTotal := lay.fieldOffsets["B"][len(lay.fieldOffsets["B"])-1] + lay.starts["B"]

	var buf bytes.Buffer
	if err := g.Build(&buf); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if buf.Len() != wantTotal {
		t.Fatalf("emit pass wrote %d bytes, size pass predicted %d", buf.Len(), wantTotal)
	}
}

func TestDeterministicEmission(t *testing.T) {
	build := func() []byte {
		g := NewGraph[string](0)
		mustSector(t, g, "A", New[string]().U8(9).String("x"))
		var buf bytes.Buffer
		if err := g.Build(&buf); err != nil {
			t.Fatalf("Build: %v", err)
		}
		return buf.Bytes()
	}
	first := build()
	second := build()
	if !bytes.Equal(first, second) {
		t.Fatalf("emission is not deterministic: %v != %v", first, second)
	}
}

func TestMissingDynamicTarget(t *testing.T) {
	g := NewGraph[string](0)
	mustSector(t, g, "A", New[string]().Dynamic("A", "Ghost", 0, UnitBytes, 3))
	var buf bytes.Buffer
	if err := g.Build(&buf); err == nil {
		t.Fatal("expected missing target error")
	}
}

func TestExternalSizeMismatch(t *testing.T) {
	f := t.TempDir() + "/data.bin"
	if err := os.WriteFile(f, []byte("12345"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	g := NewGraph[string](0)
	mustSector(t, g, "A", New[string]().External(f, 10))
	var buf bytes.Buffer
	if err := g.Build(&buf); err == nil {
		t.Fatal("expected external size mismatch error")
	}
}

func mustSector(t *testing.T, g *Graph[string], key string, s *Sector[string]) {
	t.Helper()
	if err := g.Sector(key, s); err != nil {
		t.Fatalf("Sector(%s): %v", key, err)
	}
}
