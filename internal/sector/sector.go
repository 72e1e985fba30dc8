// Package sector implements a deferred, two-pass binary assembler: a
// caller describes an output file as a named graph of sectors holding
// typed fields, including forward references expressed relative to an
// earlier sector and fill-to-offset padding. Build computes every
// sector's absolute offset in a size pass, then streams the exact byte
// sequence in an emit pass. Ported from the fill/dynamic/external field
// taxonomy in the reference encoder's serializer.
package sector

import (
	"fmt"

	"github.com/ticevid/encoder/internal/ticerr"
)

// Unit selects how a Dynamic reference's resolved offset is expressed.
type Unit int

const (
	UnitBytes Unit = iota
	UnitChunks
)

type fieldKind int

const (
	kindUint fieldKind = iota
	kindString
	kindExternal
	kindDynamic
	kindFill
)

type field[K comparable] struct {
	kind fieldKind

	// kindUint
	width int
	value uint64

	// kindString
	str string

	// kindExternal
	path string
	size int

	// kindDynamic
	origin     K
	target     K
	fieldIndex int
	unit       Unit

	// kindFill: origin reused above; fillTo is the byte offset from
	// origin's start that the cursor must reach.
	fillTo int
}

// Sector is an ordered sequence of fields. A Sector's absolute start
// offset is determined by the sizes of all sectors inserted before it.
type Sector[K comparable] struct {
	fields []field[K]
}

// New returns an empty sector ready for field append calls.
func New[K comparable]() *Sector[K] {
	return &Sector[K]{}
}

func (s *Sector[K]) U8(v uint8) *Sector[K] {
	s.fields = append(s.fields, field[K]{kind: kindUint, width: 1, value: uint64(v)})
	return s
}

func (s *Sector[K]) U16(v uint16) *Sector[K] {
	s.fields = append(s.fields, field[K]{kind: kindUint, width: 2, value: uint64(v)})
	return s
}

// U24 stores a 24-bit little-endian integer. v must fit in 24 bits;
// overflow is reported as a *ticerr.Graph at Build time.
func (s *Sector[K]) U24(v uint32) *Sector[K] {
	s.fields = append(s.fields, field[K]{kind: kindUint, width: 3, value: uint64(v)})
	return s
}

func (s *Sector[K]) U32(v uint32) *Sector[K] {
	s.fields = append(s.fields, field[K]{kind: kindUint, width: 4, value: uint64(v)})
	return s
}

func (s *Sector[K]) U64(v uint64) *Sector[K] {
	s.fields = append(s.fields, field[K]{kind: kindUint, width: 8, value: v})
	return s
}

// String appends a UTF-8 field terminated by a null byte.
func (s *Sector[K]) String(v string) *Sector[K] {
	s.fields = append(s.fields, field[K]{kind: kindString, str: v})
	return s
}

// External includes the contents of path at emit time. declaredSize
// must match the file's actual size or Build fails.
func (s *Sector[K]) External(path string, declaredSize int) *Sector[K] {
	s.fields = append(s.fields, field[K]{kind: kindExternal, path: path, size: declaredSize})
	return s
}

// Dynamic emits the byte (or chunk) offset from origin's start to the
// fieldIndex-th field of target, as a width-byte little-endian integer.
// target must not sort earlier than origin in the graph's insertion
// order.
func (s *Sector[K]) Dynamic(origin, target K, fieldIndex int, unit Unit, width int) *Sector[K] {
	s.fields = append(s.fields, field[K]{
		kind:       kindDynamic,
		origin:     origin,
		target:     target,
		fieldIndex: fieldIndex,
		unit:       unit,
		width:      width,
	})
	return s
}

// Fill pads with zero bytes until the cursor reaches origin's start
// plus offsetFromOriginBytes.
func (s *Sector[K]) Fill(origin K, offsetFromOriginBytes int) *Sector[K] {
	s.fields = append(s.fields, field[K]{kind: kindFill, origin: origin, fillTo: offsetFromOriginBytes})
	return s
}

// Graph is an ordered collection of sectors keyed by K, plus the chunk
// size used to resolve UnitChunks dynamic references.
type Graph[K comparable] struct {
	order     []K
	sectors   map[K]*Sector[K]
	chunkSize int
}

// NewGraph returns an empty graph. chunkSize is the divisor applied to
// UnitChunks dynamic references.
func NewGraph[K comparable](chunkSize int) *Graph[K] {
	return &Graph[K]{
		sectors:   make(map[K]*Sector[K]),
		chunkSize: chunkSize,
	}
}

// Sector appends s under key. A duplicate key is a *ticerr.Graph error.
func (g *Graph[K]) Sector(key K, s *Sector[K]) error {
	if _, exists := g.sectors[key]; exists {
		return ticerr.NewGraph(fmt.Sprintf("duplicate sector key %v", key))
	}
	g.order = append(g.order, key)
	g.sectors[key] = s
	return nil
}

// layout is the size-pass output: every sector's absolute start offset
// and, within each sector, the offset of each field from the sector's
// own start (length len(fields)+1, so fieldOffsets[i] is where field i
// begins and the final entry is the sector's total size).
type layout[K comparable] struct {
	starts       map[K]int
	fieldOffsets map[K][]int
}
