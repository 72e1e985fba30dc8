package frame

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCompressColorSpace(t *testing.T) {
	cases := []struct {
		r, g, b uint8
		want    byte
	}{
		{0, 0, 0, 0},
		{255, 255, 255, 0xFF},
		{32, 32, 64, 0b00101001},
	}
	for _, c := range cases {
		got := compressColorSpace(c.r, c.g, c.b)
		if got != c.want {
			t.Errorf("compressColorSpace(%d,%d,%d) = %08b, want %08b", c.r, c.g, c.b, got, c.want)
		}
	}
}

func TestWriteChunksSingleChunk(t *testing.T) {
	dir := t.TempDir()
	sizes := Sizes{FirstChunk: 8184, RestChunk: 8190}
	compressed := make([]byte, 100)
	chunkSizes, err := writeChunks(dir, 1, compressed, sizes)
	if err != nil {
		t.Fatalf("writeChunks: %v", err)
	}
	if len(chunkSizes) != 1 || chunkSizes[0] != 100 {
		t.Fatalf("expected single 100-byte chunk, got %v", chunkSizes)
	}
	assertFileSize(t, picturePath(dir, 1, 0), 100)
}

func TestWriteChunksExactFirstChunk(t *testing.T) {
	dir := t.TempDir()
	sizes := Sizes{FirstChunk: 8184, RestChunk: 8190}
	compressed := make([]byte, 8184)
	chunkSizes, err := writeChunks(dir, 1, compressed, sizes)
	if err != nil {
		t.Fatalf("writeChunks: %v", err)
	}
	if len(chunkSizes) != 1 || chunkSizes[0] != 8184 {
		t.Fatalf("expected single 8184-byte chunk, got %v", chunkSizes)
	}
}

func TestWriteChunksMultiChunk(t *testing.T) {
	dir := t.TempDir()
	sizes := Sizes{FirstChunk: 8184, RestChunk: 8190}
	compressed := make([]byte, 8184+8190*2+50)
	chunkSizes, err := writeChunks(dir, 2, compressed, sizes)
	if err != nil {
		t.Fatalf("writeChunks: %v", err)
	}
	want := []int{8184, 8190, 8190, 50}
	if len(chunkSizes) != len(want) {
		t.Fatalf("got %d chunks, want %d: %v", len(chunkSizes), len(want), chunkSizes)
	}
	for i, w := range want {
		if chunkSizes[i] != w {
			t.Errorf("chunk %d: got %d, want %d", i, chunkSizes[i], w)
		}
	}
	for i, w := range want {
		assertFileSize(t, picturePath(dir, 2, i), w)
	}
}

func TestWriteChunksExactMultiple(t *testing.T) {
	dir := t.TempDir()
	sizes := Sizes{FirstChunk: 8184, RestChunk: 8190}
	compressed := make([]byte, 8184+8190*3)
	chunkSizes, err := writeChunks(dir, 3, compressed, sizes)
	if err != nil {
		t.Fatalf("writeChunks: %v", err)
	}
	want := []int{8184, 8190, 8190, 8190}
	if len(chunkSizes) != len(want) {
		t.Fatalf("got %d chunks, want %d: %v", len(chunkSizes), len(want), chunkSizes)
	}
	for i, w := range want {
		if chunkSizes[i] != w {
			t.Errorf("chunk %d: got %d, want %d", i, chunkSizes[i], w)
		}
	}
}

func TestFramesFolderName(t *testing.T) {
	got := FramesFolderName("/videos/movie.mp4", "Intro")
	want := "movie-Intro-frames"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func assertFileSize(t *testing.T, path string, want int) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if int(info.Size()) != want {
		t.Fatalf("%s: got size %d, want %d", path, info.Size(), want)
	}
}

func TestPicturePathFormat(t *testing.T) {
	got := picturePath("/tmp/frames", 7, 2)
	want := filepath.Join("/tmp/frames", "7.picture.2.bin")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
