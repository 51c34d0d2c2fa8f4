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

// Dictionary is a read-only double-array automaton over a fixed key set.
//
// A Dictionary answers exact-match lookups directly and serves as the state
// space for the Completer, LCS, and Similar searches. It contains no mutable
// state after construction and is safe for concurrent use by any number of
// searches on independent goroutines.
//
// Thread safety:
//   - All lookup methods are safe for concurrent use.
//   - Close is NOT safe to call concurrently with lookups and must only be
//     called after all lookups and searches have completed.
type Dictionary struct {
	data []byte // size * dictionaryUnitSize bytes of packed units
	size uint32

	// Memory map backing data when opened via OpenDictionary; nil for
	// dictionaries read into memory or mapped from a caller-owned buffer.
	mmap mmap.MMap

	closed atomic.Bool
}

// ReadDictionary parses a serialized dictionary from r: a little-endian
// 32-bit unit count followed by count 4-byte units. The unit data is copied
// into memory owned by the returned Dictionary.
func ReadDictionary(r io.Reader) (*Dictionary, error) {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, readErr("dictionary header", err)
	}
	size := binary.LittleEndian.Uint32(head[:])
	if size == 0 {
		return nil, dawgerrors.ErrCorruptedDictionary
	}

	data := make([]byte, uint64(size)*dictionaryUnitSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, readErr("dictionary units", err)
	}
	return &Dictionary{data: data, size: size}, nil
}

// MapDictionary interprets the front of data as a serialized dictionary
// without copying and returns the unconsumed tail, so adjacent structures
// can be mapped from one buffer in sequence:
//
//	dic, rest, err := dawgdex.MapDictionary(buf)
//	...
//	guide, rest, err := dawgdex.MapGuide(rest)
//
// The caller must keep data alive and unmodified for the lifetime of the
// returned Dictionary.
func MapDictionary(data []byte) (*Dictionary, []byte, error) {
	if len(data) < 4 {
		return nil, nil, dawgerrors.ErrTruncatedFile
	}
	size := binary.LittleEndian.Uint32(data)
	if size == 0 {
		return nil, nil, dawgerrors.ErrCorruptedDictionary
	}
	end := 4 + uint64(size)*dictionaryUnitSize
	if uint64(len(data)) < end {
		return nil, nil, dawgerrors.ErrTruncatedFile
	}
	return &Dictionary{data: data[4:end], size: size}, data[end:], nil
}

// OpenDictionary memory-maps a dictionary file for querying. The file must
// contain exactly one serialized dictionary. Close unmaps the file.
func OpenDictionary(path string, opts ...OpenOption) (*Dictionary, error) {
	cfg := resolveOpenConfig(opts)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary file: %w", err)
	}
	defer file.Close()

	mm, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap dictionary file: %w", err)
	}

	dic, rest, err := MapDictionary(mm)
	if err != nil {
		return nil, unmapOn(err, mm)
	}
	if len(rest) != 0 {
		return nil, unmapOn(dawgerrors.ErrTrailingData, mm)
	}
	if cfg.prefault {
		prefaultRegion(mm)
	}
	dic.mmap = mm
	return dic, nil
}

// Write serializes the dictionary in the on-disk format. Write(Read(x))
// round trips byte-exactly.
func (d *Dictionary) Write(w io.Writer) error {
	var head [4]byte
	binary.LittleEndian.PutUint32(head[:], d.size)
	if _, err := w.Write(head[:]); err != nil {
		return fmt.Errorf("write dictionary header: %w", err)
	}
	if _, err := w.Write(d.data); err != nil {
		return fmt.Errorf("write dictionary units: %w", err)
	}
	return nil
}

// Close releases the memory map, if any. It is a no-op for dictionaries
// that do not own a mapping, and safe to call more than once.
func (d *Dictionary) Close() error {
	if d.closed.Swap(true) {
		return nil
	}
	if d.mmap != nil {
		return d.mmap.Unmap()
	}
	return nil
}

// Root returns the root state index.
func (d *Dictionary) Root() uint32 {
	return 0
}

// Size returns the number of units in the dictionary.
func (d *Dictionary) Size() uint32 {
	return d.size
}

// FileSize returns the serialized size in bytes.
func (d *Dictionary) FileSize() int64 {
	return 4 + int64(d.size)*dictionaryUnitSize
}

// Checksum returns the xxHash64 of the unit data. Record it next to a
// Guide's Checksum to detect mismatched Dictionary/Guide pairs, which are
// otherwise undetectable at query time.
func (d *Dictionary) Checksum() uint64 {
	return xxhash.Sum64(d.data)
}

func (d *Dictionary) unit(index uint32) dictionaryUnit {
	return dictionaryUnit(binary.LittleEndian.Uint32(d.data[index*dictionaryUnitSize:]))
}

// HasValue reports whether a key ends at the given state.
func (d *Dictionary) HasValue(index uint32) bool {
	return d.unit(index).hasLeaf()
}

// Value returns the value of the key ending at the given state. It must
// only be called when HasValue(index) is true.
func (d *Dictionary) Value(index uint32) int32 {
	u := d.unit(index)
	return d.unit(index ^ u.offset()).value()
}

// Follow attempts the transition on label from the given state. On success
// it returns the target state and true; on failure the state is returned
// unchanged with false.
func (d *Dictionary) Follow(label byte, index uint32) (uint32, bool) {
	next := index ^ d.unit(index).offset() ^ uint32(label)
	if next >= d.size || d.unit(next).label() != uint32(label) {
		return index, false
	}
	return next, true
}

// FollowBytes follows one transition per byte of key. On failure it returns
// the state reached by the longest valid prefix, with false.
func (d *Dictionary) FollowBytes(key []byte, index uint32) (uint32, bool) {
	for _, c := range key {
		next, ok := d.Follow(c, index)
		if !ok {
			return index, false
		}
		index = next
	}
	return index, true
}

// Contains reports whether key is in the dictionary.
func (d *Dictionary) Contains(key []byte) bool {
	index, ok := d.FollowBytes(key, d.Root())
	return ok && d.HasValue(index)
}

// Find returns the value associated with key, or -1 if key is absent.
func (d *Dictionary) Find(key []byte) int32 {
	value, ok := d.FindValue(key)
	if !ok {
		return -1
	}
	return value
}

// FindValue returns the value associated with key and whether it exists.
func (d *Dictionary) FindValue(key []byte) (int32, bool) {
	index, ok := d.FollowBytes(key, d.Root())
	if !ok || !d.HasValue(index) {
		return 0, false
	}
	return d.Value(index), true
}

// readErr maps short reads onto ErrTruncatedFile and wraps everything else.
func readErr(what string, err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return dawgerrors.ErrTruncatedFile
	}
	return fmt.Errorf("read %s: %w", what, err)
}

// unmapOn releases mm and returns err, joining an unmap failure if any.
func unmapOn(err error, mm mmap.MMap) error {
	if uerr := mm.Unmap(); uerr != nil {
		return fmt.Errorf("%w (unmap: %v)", err, uerr)
	}
	return err
}
