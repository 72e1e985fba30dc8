package assemble

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ticevid/encoder/internal/config"
	"github.com/ticevid/encoder/internal/containerdef"
	"github.com/ticevid/encoder/internal/frame"
)

// writeFrame writes a raw picture-chunk file under dir for frameIndex,
// chunkIndex with the given size, standing in for a real QOI-1 encode
// pass so this test can exercise AssembleContainer without ffmpeg or a
// QOI decoder.
func writeFrame(t *testing.T, dir string, frameIndex, chunkIndex, size int) {
	t.Helper()
	path := frame.PicturePath(dir, frameIndex, chunkIndex)
	if err := os.WriteFile(path, bytes.Repeat([]byte{0xAB}, size), 0o644); err != nil {
		t.Fatalf("writing synthetic frame %s: %v", path, err)
	}
}

func TestAssembleSingleTitleSingleChunkFrames(t *testing.T) {
	dir := t.TempDir()

	// Two frames, each a single small chunk (no continuation).
	writeFrame(t, dir, 1, 0, 100)
	writeFrame(t, dir, 2, 0, 200)

	titles := []EncodedTitle{
		{
			Definition: containerdef.Title{Name: "Intro", FPS: 30, Height: 240},
			FramesDir:  dir,
			ChunkSizes: [][]int{{100}, {200}},
		},
	}

	var out bytes.Buffer
	if err := AssembleContainer(titles, &out); err != nil {
		t.Fatalf("AssembleContainer: %v", err)
	}

	wantSize := config.HeaderSize + 2*config.ChunkSize
	if out.Len() != wantSize {
		t.Fatalf("container size = %d, want %d", out.Len(), wantSize)
	}

	b := out.Bytes()
	gotMajor := uint16(b[0]) | uint16(b[1])<<8
	if gotMajor != config.SchemaVersionMajor {
		t.Errorf("schema major = %d, want %d", gotMajor, config.SchemaVersionMajor)
	}
	if b[2] != config.SchemaVersionMinor {
		t.Errorf("schema minor = %d, want %d", b[2], config.SchemaVersionMinor)
	}
	if b[3] != config.SchemaVersionPatch {
		t.Errorf("schema patch = %d, want %d", b[3], config.SchemaVersionPatch)
	}
	if b[4] != 1 {
		t.Errorf("title count = %d, want 1", b[4])
	}
}

func TestAssembleFrameWithContinuationChunks(t *testing.T) {
	dir := t.TempDir()

	// Frame 1 spans 3 chunks: the first picture chunk plus two
	// continuations.
	writeFrame(t, dir, 1, 0, 8184)
	writeFrame(t, dir, 1, 1, 8190)
	writeFrame(t, dir, 1, 2, 50)

	titles := []EncodedTitle{
		{
			Definition: containerdef.Title{Name: "Clip", FPS: 24, Height: 240},
			FramesDir:  dir,
			ChunkSizes: [][]int{{8184, 8190, 50}},
		},
	}

	var out bytes.Buffer
	if err := AssembleContainer(titles, &out); err != nil {
		t.Fatalf("AssembleContainer: %v", err)
	}

	wantSize := config.HeaderSize + 3*config.ChunkSize
	if out.Len() != wantSize {
		t.Fatalf("container size = %d, want %d", out.Len(), wantSize)
	}
}

func TestAssembleMultipleTitles(t *testing.T) {
	dirA := filepath.Join(t.TempDir(), "a")
	dirB := filepath.Join(t.TempDir(), "b")
	if err := os.MkdirAll(dirA, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(dirB, 0o755); err != nil {
		t.Fatal(err)
	}

	writeFrame(t, dirA, 1, 0, 100)
	writeFrame(t, dirB, 1, 0, 150)
	writeFrame(t, dirB, 2, 0, 150)

	titles := []EncodedTitle{
		{
			Definition: containerdef.Title{Name: "First", FPS: 30, Height: 240},
			FramesDir:  dirA,
			ChunkSizes: [][]int{{100}},
		},
		{
			Definition: containerdef.Title{Name: "Second", FPS: 30, Height: 240},
			FramesDir:  dirB,
			ChunkSizes: [][]int{{150}, {150}},
		},
	}

	var out bytes.Buffer
	if err := AssembleContainer(titles, &out); err != nil {
		t.Fatalf("AssembleContainer: %v", err)
	}

	wantSize := config.HeaderSize + 3*config.ChunkSize
	if out.Len() != wantSize {
		t.Fatalf("container size = %d, want %d", out.Len(), wantSize)
	}

	b := out.Bytes()
	if b[4] != 2 {
		t.Errorf("title count = %d, want 2", b[4])
	}
}

func TestAssembleNoFrames(t *testing.T) {
	dir := t.TempDir()
	titles := []EncodedTitle{
		{
			Definition: containerdef.Title{Name: "Empty", FPS: 30, Height: 240},
			FramesDir:  dir,
			ChunkSizes: nil,
		},
	}

	var out bytes.Buffer
	if err := AssembleContainer(titles, &out); err != nil {
		t.Fatalf("AssembleContainer: %v", err)
	}

	wantSize := config.HeaderSize
	if out.Len() != wantSize {
		t.Fatalf("container size = %d, want %d", out.Len(), wantSize)
	}
}

func TestAssembleTooManyTitles(t *testing.T) {
	titles := make([]EncodedTitle, config.MaxTitles+1)
	for i := range titles {
		titles[i] = EncodedTitle{
			Definition: containerdef.Title{Name: "X", FPS: 30, Height: 240},
			FramesDir:  t.TempDir(),
		}
	}
	var out bytes.Buffer
	if err := AssembleContainer(titles, &out); err == nil {
		t.Fatal("expected error for title count over the limit")
	}
}
