package assemble

import (
	"fmt"
	"io"

	"github.com/ticevid/encoder/internal/config"
	"github.com/ticevid/encoder/internal/containerdef"
	"github.com/ticevid/encoder/internal/frame"
	"github.com/ticevid/encoder/internal/sector"
	"github.com/ticevid/encoder/internal/ticerr"
)

// EncodedTitle is one title's already-extracted-and-compressed state:
// the frames directory it was encoded into, its per-frame chunk-size
// table, and its parsed definition. Produced by the parallel encode
// driver, consumed by AssembleContainer.
type EncodedTitle struct {
	Definition containerdef.Title
	FramesDir  string
	// ChunkSizes[frame][chunk] is the byte size of that picture chunk;
	// frame is 0-indexed here even though on-disk files are 1-indexed
	// (frame+1).
	ChunkSizes [][]int
}

// AssembleContainer builds the sector graph for titles and streams it
// to sink. Titles must already be extracted and frame-encoded (see
// EncodedTitle). All first-chunks of all frames are emitted before any
// continuation chunks, across the entire container, matching the
// reference serializer's two-loop layout.
func AssembleContainer(titles []EncodedTitle, sink io.Writer) error {
	titleCount := len(titles)
	if titleCount > config.MaxTitles {
		return ticerr.NewLimit(fmt.Sprintf("title count %d exceeds maximum %d", titleCount, config.MaxTitles))
	}

	g := sector.NewGraph[SectorKey](config.ChunkSize)

	titleTable := sector.New[SectorKey]()
	for i := range titles {
		titleTable.Dynamic(headerKey(), titleKey(uint8(i)), 0, sector.UnitBytes, 3)
	}

	header := sector.New[SectorKey]().
		U16(config.SchemaVersionMajor).
		U8(config.SchemaVersionMinor).
		U8(config.SchemaVersionPatch).
		U8(uint8(titleCount)).
		Dynamic(headerKey(), titleTableKey(), 0, sector.UnitBytes, 3).
		U24(0). // font_pack: parsed and validated but never wired into a sector (see design notes)
		U8(0)   // ui_font_index
	if err := g.Sector(headerKey(), header); err != nil {
		return err
	}
	if err := g.Sector(titleTableKey(), titleTable); err != nil {
		return err
	}

	for i, et := range titles {
		if err := buildTitleSectors(g, uint8(i), et); err != nil {
			return err
		}
	}

	if err := g.Sector(headerEndKey(), sector.New[SectorKey]().Fill(headerKey(), config.HeaderSize)); err != nil {
		return err
	}
	if err := g.Sector(chunksKey(), sector.New[SectorKey]()); err != nil {
		return err
	}

	// First pass: every frame's first (chunk index 0) picture chunk,
	// across all titles, in title-then-frame order.
	for i, et := range titles {
		for f := range et.ChunkSizes {
			if err := buildFirstChunk(g, uint8(i), et, f); err != nil {
				return err
			}
		}
	}

	// Second pass: every frame's continuation chunks (index > 0).
	for i, et := range titles {
		for f, sizes := range et.ChunkSizes {
			for c := 1; c < len(sizes); c++ {
				if err := buildContinuationChunk(g, uint8(i), et, f, c); err != nil {
					return err
				}
			}
		}
	}

	return g.Build(sink)
}

func buildTitleSectors(g *sector.Graph[SectorKey], titleIndex uint8, et EncodedTitle) error {
	def := et.Definition
	frameCount := len(et.ChunkSizes)
	if frameCount > config.MaxFrames {
		return ticerr.NewLimit(fmt.Sprintf("title %d has %d frames, exceeding the maximum %d", titleIndex, frameCount, config.MaxFrames))
	}

	title := sector.New[SectorKey]()
	if def.Name != "" {
		title.Dynamic(headerKey(), titleNameKey(titleIndex), 0, sector.UnitBytes, 3)
	} else {
		title.U24(0)
	}
	title.
		U8(0).    // palette_count
		U24(0).   // palette
		U24(0).   // icon
		U8(def.Height).
		U24(uint32(frameCount)).
		U8(def.FPS).
		U8(0).  // caption_track_count — parsed, not wired (see design notes)
		U24(0). // caption_tracks
		U8(0xFF). // cap_fg
		U8(0).    // cap_bg
		U8(1).    // cap_transparent
		U8(0).    // chapter_count
		U24(0)    // chapter_table

	if frameCount > 0 {
		title.Dynamic(pictureChunkKey(titleIndex, 0, 0), pictureChunkEndKey(titleIndex, 0, 0), 0, sector.UnitBytes, 2)
		title.Dynamic(chunksKey(), pictureChunkKey(titleIndex, 0, 0), 0, sector.UnitChunks, 3)
	} else {
		title.U16(0)
		title.U24(0)
	}

	if err := g.Sector(titleKey(titleIndex), title); err != nil {
		return err
	}
	if def.Name != "" {
		if err := g.Sector(titleNameKey(titleIndex), sector.New[SectorKey]().String(def.Name)); err != nil {
			return err
		}
	}
	return nil
}

func buildFirstChunk(g *sector.Graph[SectorKey], titleIndex uint8, et EncodedTitle, frameIdx int) error {
	sizes := et.ChunkSizes[frameIdx]
	onDiskFrame := frameIdx + 1
	chunk := sector.New[SectorKey]()

	if len(sizes) > 1 {
		nextChunk := pictureChunkKey(titleIndex, uint32(frameIdx), 1)
		chunk.
			Dynamic(chunksKey(), nextChunk, 0, sector.UnitChunks, 3).
			U8(uint8(len(sizes) - 1)).
			Dynamic(nextChunk, pictureChunkEndKey(titleIndex, uint32(frameIdx), 1), 0, sector.UnitBytes, 2)
	} else {
		chunk.U24(0).U8(0).U16(0)
	}

	if frameIdx < len(et.ChunkSizes)-1 {
		nextFrameChunk := pictureChunkKey(titleIndex, uint32(frameIdx+1), 0)
		chunk.Dynamic(nextFrameChunk, pictureChunkEndKey(titleIndex, uint32(frameIdx+1), 0), 0, sector.UnitBytes, 2)
	} else {
		chunk.U16(0)
	}

	chunk.External(frame.PicturePath(et.FramesDir, onDiskFrame, 0), sizes[0])

	if err := g.Sector(pictureChunkKey(titleIndex, uint32(frameIdx), 0), chunk); err != nil {
		return err
	}
	return g.Sector(
		pictureChunkEndKey(titleIndex, uint32(frameIdx), 0),
		sector.New[SectorKey]().Fill(pictureChunkKey(titleIndex, uint32(frameIdx), 0), config.ChunkSize),
	)
}

func buildContinuationChunk(g *sector.Graph[SectorKey], titleIndex uint8, et EncodedTitle, frameIdx, chunkIdx int) error {
	sizes := et.ChunkSizes[frameIdx]
	onDiskFrame := frameIdx + 1
	chunk := sector.New[SectorKey]()

	if chunkIdx < len(sizes)-1 {
		nextChunk := pictureChunkKey(titleIndex, uint32(frameIdx), uint8(chunkIdx+1))
		chunk.Dynamic(nextChunk, pictureChunkEndKey(titleIndex, uint32(frameIdx), uint8(chunkIdx+1)), 0, sector.UnitBytes, 2)
	} else {
		chunk.U16(0)
	}

	chunk.External(frame.PicturePath(et.FramesDir, onDiskFrame, chunkIdx), sizes[chunkIdx])

	if err := g.Sector(pictureChunkKey(titleIndex, uint32(frameIdx), uint8(chunkIdx)), chunk); err != nil {
		return err
	}
	return g.Sector(
		pictureChunkEndKey(titleIndex, uint32(frameIdx), uint8(chunkIdx)),
		sector.New[SectorKey]().Fill(pictureChunkKey(titleIndex, uint32(frameIdx), uint8(chunkIdx)), config.ChunkSize),
	)
}
