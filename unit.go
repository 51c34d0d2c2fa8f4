package dawgdex

// dictionaryUnitSize is the serialized size of one automaton unit in bytes.
const dictionaryUnitSize = 4

// guideUnitSize is the serialized size of one guide record in bytes.
const guideUnitSize = 2

// Flag bits of a dictionary unit.
const (
	hasLeafFlag   = uint32(1) << 8
	extensionFlag = uint32(1) << 9
	isLeafFlag    = uint32(1) << 31
)

// dictionaryUnit is one state of the double-array automaton, packed into a
// 32-bit word by the offline builder.
//
// Layout (little-endian uint32):
//
//	Bits   Field
//	0-7    transition label (non-leaf units)
//	8      has-leaf flag (a key ends at this state)
//	9      extension flag (offset stored <<2 instead of <<10)
//	10-31  offset field
//	31     is-leaf flag (value units)
//
// Value units reuse the whole word: base = value<<1 | isLeafFlag. The value
// field is 30 bits and non-negative; negative returns are reserved for the
// absent-key sentinel.
type dictionaryUnit uint32

// hasLeaf reports whether a key ends at this state.
func (u dictionaryUnit) hasLeaf() bool {
	return uint32(u)&hasLeafFlag != 0
}

// label returns the transition label with the leaf flag folded in, so a
// value unit can never compare equal to a byte label.
func (u dictionaryUnit) label() uint32 {
	return uint32(u) & (isLeafFlag | 0xFF)
}

// offset returns the XOR offset to this state's child block.
func (u dictionaryUnit) offset() uint32 {
	b := uint32(u)
	return (b >> 10) << ((b & extensionFlag) >> 6)
}

// value extracts the terminal value stored in a value unit.
func (u dictionaryUnit) value() int32 {
	return int32((uint32(u) &^ isLeafFlag) >> 1)
}
