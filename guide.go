package dawgdex

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"

	dawgerrors "github.com/dawgdex/dawgdex/errors"
)

// Guide is the sidecar structure that gives, per automaton state, the first
// child label and next-sibling label under the enumeration order baked in by
// the builder. It is what makes ordered key enumeration possible; the
// Completer, LCS, and Similar searches all walk the automaton through it.
//
// A Guide is read-only after construction and shares the Dictionary's
// concurrency contract.
type Guide struct {
	data []byte // size * guideUnitSize bytes of (child, sibling) pairs
	size uint32

	mmap mmap.MMap

	closed atomic.Bool
}

// ReadGuide parses a serialized guide from r: a little-endian 32-bit record
// count followed by count (child, sibling) byte pairs. The record data is
// copied into memory owned by the returned Guide.
func ReadGuide(r io.Reader) (*Guide, error) {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, readErr("guide header", err)
	}
	size := binary.LittleEndian.Uint32(head[:])
	if size == 0 {
		return nil, dawgerrors.ErrCorruptedGuide
	}

	data := make([]byte, uint64(size)*guideUnitSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, readErr("guide units", err)
	}
	return &Guide{data: data, size: size}, nil
}

// MapGuide interprets the front of data as a serialized guide without
// copying and returns the unconsumed tail. See MapDictionary for the
// chaining contract.
func MapGuide(data []byte) (*Guide, []byte, error) {
	if len(data) < 4 {
		return nil, nil, dawgerrors.ErrTruncatedFile
	}
	size := binary.LittleEndian.Uint32(data)
	if size == 0 {
		return nil, nil, dawgerrors.ErrCorruptedGuide
	}
	end := 4 + uint64(size)*guideUnitSize
	if uint64(len(data)) < end {
		return nil, nil, dawgerrors.ErrTruncatedFile
	}
	return &Guide{data: data[4:end], size: size}, data[end:], nil
}

// OpenGuide memory-maps a guide file for querying. The file must contain
// exactly one serialized guide. Close unmaps the file.
func OpenGuide(path string, opts ...OpenOption) (*Guide, error) {
	cfg := resolveOpenConfig(opts)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open guide file: %w", err)
	}
	defer file.Close()

	mm, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap guide file: %w", err)
	}

	guide, rest, err := MapGuide(mm)
	if err != nil {
		return nil, unmapOn(err, mm)
	}
	if len(rest) != 0 {
		return nil, unmapOn(dawgerrors.ErrTrailingData, mm)
	}
	if cfg.prefault {
		prefaultRegion(mm)
	}
	guide.mmap = mm
	return guide, nil
}

// Write serializes the guide in the on-disk format.
func (g *Guide) Write(w io.Writer) error {
	var head [4]byte
	binary.LittleEndian.PutUint32(head[:], g.size)
	if _, err := w.Write(head[:]); err != nil {
		return fmt.Errorf("write guide header: %w", err)
	}
	if _, err := w.Write(g.data); err != nil {
		return fmt.Errorf("write guide units: %w", err)
	}
	return nil
}

// Close releases the memory map, if any. Safe to call more than once.
func (g *Guide) Close() error {
	if g.closed.Swap(true) {
		return nil
	}
	if g.mmap != nil {
		return g.mmap.Unmap()
	}
	return nil
}

// Size returns the number of records in the guide. A valid guide has
// exactly as many records as its dictionary has units.
func (g *Guide) Size() uint32 {
	return g.size
}

// FileSize returns the serialized size in bytes.
func (g *Guide) FileSize() int64 {
	return 4 + int64(g.size)*guideUnitSize
}

// Checksum returns the xxHash64 of the record data. See
// Dictionary.Checksum for the pairing contract.
func (g *Guide) Checksum() uint64 {
	return xxhash.Sum64(g.data)
}

// Child returns the first outgoing label of the given state under the
// enumeration order, or 0 if the state has no children.
func (g *Guide) Child(index uint32) byte {
	return g.data[index*guideUnitSize]
}

// Sibling returns the label following this state's incoming label among its
// parent's children, or 0 if it is the last one.
func (g *Guide) Sibling(index uint32) byte {
	return g.data[index*guideUnitSize+1]
}
