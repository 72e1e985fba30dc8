package sector

import (
	"fmt"
	"io"
	"os"

	"github.com/ticevid/encoder/internal/ticerr"
)

// Build runs the size pass followed by the emit pass, writing the
// resolved byte stream to sink. Fills are satisfied by writing zero
// bytes directly rather than seeking, since the emit pass already
// tracks a running cursor.
func (g *Graph[K]) Build(sink io.Writer) error {
	lay, err := g.sizePass()
	if err != nil {
		return err
	}
	return g.emitPass(sink, lay)
}

func (g *Graph[K]) sizePass() (*layout[K], error) {
	lay := &layout[K]{
		starts:       make(map[K]int, len(g.order)),
		fieldOffsets: make(map[K][]int, len(g.order)),
	}

	cursor := 0
	for _, key := range g.order {
		lay.starts[key] = cursor
		sec := g.sectors[key]
		offsets := make([]int, 0, len(sec.fields)+1)
		for _, f := range sec.fields {
			offsets = append(offsets, cursor-lay.starts[key])
			size, err := g.fieldSize(f, lay, key, cursor)
			if err != nil {
				return nil, err
			}
			cursor += size
		}
		offsets = append(offsets, cursor-lay.starts[key])
		lay.fieldOffsets[key] = offsets
	}
	return lay, nil
}

func (g *Graph[K]) fieldSize(f field[K], lay *layout[K], sectorKey K, cursor int) (int, error) {
	switch f.kind {
	case kindUint:
		return f.width, nil
	case kindString:
		return len(f.str) + 1, nil
	case kindExternal:
		return f.size, nil
	case kindDynamic:
		return f.width, nil
	case kindFill:
		originStart, ok := lay.starts[f.origin]
		if !ok {
			return 0, ticerr.NewGraph(fmt.Sprintf("fill in sector %v references unknown origin %v", sectorKey, f.origin))
		}
		size := f.fillTo - (cursor - originStart)
		if size < 0 {
			return 0, ticerr.NewGraph(fmt.Sprintf("fill in sector %v overflows: origin already %d bytes past target offset %d", sectorKey, -size, f.fillTo))
		}
		return size, nil
	default:
		return 0, ticerr.NewGraph("unknown field kind")
	}
}

func (g *Graph[K]) emitPass(sink io.Writer, lay *layout[K]) error {
	cursor := 0
	for _, key := range g.order {
		sec := g.sectors[key]
		for i, f := range sec.fields {
			n, err := g.emitField(sink, f, lay, key, i, cursor)
			if err != nil {
				return err
			}
			cursor += n
		}
	}
	return nil
}

func (g *Graph[K]) emitField(sink io.Writer, f field[K], lay *layout[K], sectorKey K, fieldIndex, cursor int) (int, error) {
	switch f.kind {
	case kindUint:
		if err := writeLE(sink, f.value, f.width); err != nil {
			return 0, ticerr.NewGraph(fmt.Sprintf("sector %v field %d: %v", sectorKey, fieldIndex, err))
		}
		return f.width, nil
	case kindString:
		data := append([]byte(f.str), 0)
		if _, err := sink.Write(data); err != nil {
			return 0, ticerr.NewIO("writing string field", err)
		}
		return len(data), nil
	case kindExternal:
		n, err := emitExternal(sink, f.path, f.size)
		if err != nil {
			return 0, err
		}
		return n, nil
	case kindDynamic:
		return f.width, g.emitDynamic(sink, f, lay, sectorKey, fieldIndex)
	case kindFill:
		originStart := lay.starts[f.origin]
		size := f.fillTo - (cursor - originStart)
		if size < 0 {
			return 0, ticerr.NewGraph(fmt.Sprintf("fill in sector %v overflowed during emit", sectorKey))
		}
		if _, err := sink.Write(make([]byte, size)); err != nil {
			return 0, ticerr.NewIO("writing fill padding", err)
		}
		return size, nil
	default:
		return 0, ticerr.NewGraph("unknown field kind")
	}
}

func (g *Graph[K]) emitDynamic(sink io.Writer, f field[K], lay *layout[K], sectorKey K, fieldIndex int) error {
	targetOffsets, ok := lay.fieldOffsets[f.target]
	if !ok {
		return ticerr.NewGraph(fmt.Sprintf("sector %v field %d: dynamic reference to unknown sector %v", sectorKey, fieldIndex, f.target))
	}
	if f.fieldIndex < 0 || f.fieldIndex >= len(targetOffsets) {
		return ticerr.NewGraph(fmt.Sprintf("sector %v field %d: dynamic reference to out-of-range field index %d of sector %v", sectorKey, fieldIndex, f.fieldIndex, f.target))
	}
	targetAbs := lay.starts[f.target] + targetOffsets[f.fieldIndex]
	originStart, ok := lay.starts[f.origin]
	if !ok {
		return ticerr.NewGraph(fmt.Sprintf("sector %v field %d: dynamic reference from unknown origin %v", sectorKey, fieldIndex, f.origin))
	}
	if targetAbs < originStart {
		return ticerr.NewGraph(fmt.Sprintf("sector %v field %d: dynamic target %v precedes origin %v", sectorKey, fieldIndex, f.target, f.origin))
	}

	relative := targetAbs - originStart
	switch f.unit {
	case UnitBytes:
		// relative is already in bytes
	case UnitChunks:
		if g.chunkSize <= 0 {
			return ticerr.NewGraph("chunk-unit dynamic reference used on a graph with no chunk size configured")
		}
		if relative%g.chunkSize != 0 {
			return ticerr.NewGraph(fmt.Sprintf("sector %v field %d: chunk-unit reference %d is not chunk-aligned", sectorKey, fieldIndex, relative))
		}
		relative /= g.chunkSize
	default:
		return ticerr.NewGraph("unknown dynamic unit")
	}

	if err := writeLE(sink, uint64(relative), f.width); err != nil {
		return ticerr.NewGraph(fmt.Sprintf("sector %v field %d: %v", sectorKey, fieldIndex, err))
	}
	return nil
}

func emitExternal(sink io.Writer, path string, declaredSize int) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, ticerr.NewIO(fmt.Sprintf("opening external file %s", path), err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, ticerr.NewIO(fmt.Sprintf("stat external file %s", path), err)
	}
	actualSize := int(info.Size())
	if actualSize != declaredSize {
		return 0, ticerr.NewGraph(fmt.Sprintf("external file %s size mismatch: declared %d, actual %d", path, declaredSize, actualSize))
	}

	written, err := io.Copy(sink, file)
	if err != nil {
		return 0, ticerr.NewIO(fmt.Sprintf("copying external file %s", path), err)
	}
	if int(written) != declaredSize {
		return 0, ticerr.NewIO(fmt.Sprintf("external file %s: short copy (%d of %d bytes)", path, written, declaredSize), nil)
	}
	return int(written), nil
}

// writeLE writes v as a little-endian integer of width bytes (1-8).
// Returns an error if v does not fit in width bytes.
func writeLE(w io.Writer, v uint64, width int) error {
	if width < 1 || width > 8 {
		return fmt.Errorf("unsupported integer width %d", width)
	}
	if width < 8 {
		max := uint64(1)<<(8*width) - 1
		if v > max {
			return fmt.Errorf("value %d overflows %d-byte field", v, width)
		}
	}
	buf := make([]byte, width)
	for i := 0; i < width; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	_, err := w.Write(buf)
	return err
}
