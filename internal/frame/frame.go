// Package frame decodes an upstream-extracted QOI frame, packs it to
// the device's single-channel RGB332-like color space, compresses it
// with the QOI-1 codec, and slices the result into fixed-size picture
// chunk files. Ported from serialize_frame in the reference encoder.
package frame

import (
	"fmt"
	"os"
	"path/filepath"

	qoidecode "github.com/kriticalflare/qoi"

	"github.com/ticevid/encoder/internal/qoi1"
	"github.com/ticevid/encoder/internal/ticerr"
)

// Geometry is the fixed device framebuffer size every decoded frame
// must match.
type Geometry struct {
	Width  int
	Height int
}

// compressColorSpace packs one RGB888 pixel into a single byte:
// bit layout rrrbbggg, ((r/32)<<5) | (g/32) | ((b/64)<<3).
func compressColorSpace(r, g, b uint8) byte {
	return (r/32)<<5 | g/32 | (b/64)<<3
}

// decodeAndPack reads a QOI file at path and returns its pixels packed
// one byte per pixel in row-major order, validating dimensions match
// geom.
func decodeAndPack(path string, geom Geometry) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, ticerr.NewIO(fmt.Sprintf("opening frame %s", path), err)
	}
	defer file.Close()

	img, err := qoidecode.ImageDecode(file)
	if err != nil {
		return nil, ticerr.NewIO(fmt.Sprintf("decoding frame %s", path), err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != geom.Width || bounds.Dy() != geom.Height {
		return nil, ticerr.NewConfig(
			fmt.Sprintf("frame %s is %dx%d, expected %dx%d", path, bounds.Dx(), bounds.Dy(), geom.Width, geom.Height),
			nil,
		)
	}

	packed := make([]byte, geom.Width*geom.Height)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			packed[i] = compressColorSpace(uint8(r>>8), uint8(g>>8), uint8(b>>8))
			i++
		}
	}
	return packed, nil
}

// Sizes bundles the picture-chunk slicing widths used by Encode, so
// callers don't need to import config constants into this package.
type Sizes struct {
	FirstChunk int
	RestChunk  int
}

// Encode decodes framePath, compresses it to QOI-1, slices the result
// into framesDir/{frameIndex}.picture.{k}.bin files, and returns the
// compressed byte count and the size of each chunk written.
func Encode(framePath, framesDir string, frameIndex int, geom Geometry, sizes Sizes) (compressedBytes int, chunkSizes []int, err error) {
	pixels, err := decodeAndPack(framePath, geom)
	if err != nil {
		return 0, nil, err
	}

	out := make([]byte, geom.Width*geom.Height)
	n, err := qoi1.Encode(pixels, out)
	if err != nil {
		return 0, nil, err
	}
	compressed := out[:n]

	chunkSizes, err = writeChunks(framesDir, frameIndex, compressed, sizes)
	if err != nil {
		return 0, nil, err
	}
	return n, chunkSizes, nil
}

func writeChunks(framesDir string, frameIndex int, compressed []byte, sizes Sizes) ([]int, error) {
	var chunkSizes []int
	chunkIndex := 0

	if len(compressed) <= sizes.FirstChunk {
		if err := writeChunk(framesDir, frameIndex, chunkIndex, compressed); err != nil {
			return nil, err
		}
		return []int{len(compressed)}, nil
	}

	first := compressed[:sizes.FirstChunk]
	if err := writeChunk(framesDir, frameIndex, chunkIndex, first); err != nil {
		return nil, err
	}
	chunkSizes = append(chunkSizes, len(first))
	chunkIndex++

	rest := compressed[sizes.FirstChunk:]
	for len(rest) > sizes.RestChunk {
		chunk := rest[:sizes.RestChunk]
		if err := writeChunk(framesDir, frameIndex, chunkIndex, chunk); err != nil {
			return nil, err
		}
		chunkSizes = append(chunkSizes, len(chunk))
		chunkIndex++
		rest = rest[sizes.RestChunk:]
	}
	if len(rest) > 0 {
		if err := writeChunk(framesDir, frameIndex, chunkIndex, rest); err != nil {
			return nil, err
		}
		chunkSizes = append(chunkSizes, len(rest))
	}

	if continuations := len(chunkSizes) - 1; continuations > 255 {
		return nil, ticerr.NewLimit(fmt.Sprintf("frame %d needs %d continuation chunks, exceeding the 255 limit", frameIndex, continuations))
	}

	return chunkSizes, nil
}

func picturePath(framesDir string, frameIndex, chunkIndex int) string {
	return filepath.Join(framesDir, fmt.Sprintf("%d.picture.%d.bin", frameIndex, chunkIndex))
}

func writeChunk(framesDir string, frameIndex, chunkIndex int, buf []byte) error {
	path := picturePath(framesDir, frameIndex, chunkIndex)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return ticerr.NewIO(fmt.Sprintf("writing picture chunk %s", path), err)
	}
	return nil
}

// PicturePath returns the on-disk path for a frame's chunk, exported
// for the assembler's external() field references.
func PicturePath(framesDir string, frameIndex, chunkIndex int) string {
	return picturePath(framesDir, frameIndex, chunkIndex)
}
