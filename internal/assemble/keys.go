// Package assemble builds the concrete sector graph for one container:
// the header, title table, per-title metadata, and picture-chunk
// chains, then drives the sector package's two-pass serializer to
// write the output binary. Ported from serialize_container in the
// reference encoder.
package assemble

import "fmt"

// sectorKindTag discriminates SectorKey the way the reference
// encoder's SectorId enum does, since Go has no sum types.
type sectorKindTag int

const (
	kindHeader sectorKindTag = iota
	kindTitleTable
	kindTitle
	kindTitleName
	kindHeaderEnd
	kindChunks
	kindPictureChunk
	kindPictureChunkEnd
)

// SectorKey is the comparable tagged-variant key used throughout the
// container's sector graph, mirroring the reference encoder's SectorId
// enum (Header | TitleTable | Title{i} | TitleName{i} | HeaderEnd |
// Chunks | PictureChunk{...} | PictureChunkEnd{...}).
type SectorKey struct {
	kind        sectorKindTag
	titleIndex  uint8
	frame       uint32
	chunkIndex  uint8
}

func (k SectorKey) String() string {
	switch k.kind {
	case kindHeader:
		return "Header"
	case kindTitleTable:
		return "TitleTable"
	case kindTitle:
		return fmt.Sprintf("Title{%d}", k.titleIndex)
	case kindTitleName:
		return fmt.Sprintf("TitleName{%d}", k.titleIndex)
	case kindHeaderEnd:
		return "HeaderEnd"
	case kindChunks:
		return "Chunks"
	case kindPictureChunk:
		return fmt.Sprintf("PictureChunk{%d,%d,%d}", k.titleIndex, k.frame, k.chunkIndex)
	case kindPictureChunkEnd:
		return fmt.Sprintf("PictureChunkEnd{%d,%d,%d}", k.titleIndex, k.frame, k.chunkIndex)
	default:
		return "Unknown"
	}
}

func headerKey() SectorKey     { return SectorKey{kind: kindHeader} }
func titleTableKey() SectorKey { return SectorKey{kind: kindTitleTable} }
func headerEndKey() SectorKey  { return SectorKey{kind: kindHeaderEnd} }
func chunksKey() SectorKey     { return SectorKey{kind: kindChunks} }

func titleKey(titleIndex uint8) SectorKey {
	return SectorKey{kind: kindTitle, titleIndex: titleIndex}
}

func titleNameKey(titleIndex uint8) SectorKey {
	return SectorKey{kind: kindTitleName, titleIndex: titleIndex}
}

func pictureChunkKey(titleIndex uint8, frame uint32, chunkIndex uint8) SectorKey {
	return SectorKey{kind: kindPictureChunk, titleIndex: titleIndex, frame: frame, chunkIndex: chunkIndex}
}

func pictureChunkEndKey(titleIndex uint8, frame uint32, chunkIndex uint8) SectorKey {
	return SectorKey{kind: kindPictureChunkEnd, titleIndex: titleIndex, frame: frame, chunkIndex: chunkIndex}
}
