// Package dawgtest fabricates serialized dictionary and guide images for
// tests. It packs a plain trie into the double-array layout the query side
// expects; real dictionaries come from the offline builder, which also
// minimizes shared suffixes. A trie is a valid (if wasteful) instance of
// the format, which is all the test suite needs.
package dawgtest

import (
	"encoding/binary"
	"fmt"
	"sort"
)

const (
	hasLeafFlag = uint32(1) << 8
	isLeafFlag  = uint32(1) << 31

	// Offsets at or above this would need the extension encoding; test
	// dictionaries never get near it.
	plainOffsetMax = uint32(1) << 21

	maxValue = int32(1)<<30 - 1
)

type node struct {
	labels   []byte
	children []*node
	terminal bool
	value    int32
}

func (n *node) child(label byte) *node {
	for i, c := range n.labels {
		if c == label {
			return n.children[i]
		}
	}
	child := &node{}
	n.labels = append(n.labels, label)
	n.children = append(n.children, child)
	return child
}

func (n *node) sortChildren() {
	sort.Sort(byLabel{n})
	for _, c := range n.children {
		c.sortChildren()
	}
}

type byLabel struct{ n *node }

func (b byLabel) Len() int           { return len(b.n.labels) }
func (b byLabel) Less(i, j int) bool { return b.n.labels[i] < b.n.labels[j] }
func (b byLabel) Swap(i, j int) {
	b.n.labels[i], b.n.labels[j] = b.n.labels[j], b.n.labels[i]
	b.n.children[i], b.n.children[j] = b.n.children[j], b.n.children[i]
}

// Build packs entries into serialized dictionary and guide images with
// lexicographic enumeration order. Keys must be non-empty and NUL-free;
// values must be in [0, 1<<30). It panics on invalid input, which in a
// test is always a bug in the test.
func Build(entries map[string]int32) (dict, guide []byte) {
	root := &node{}
	for key, value := range entries {
		if len(key) == 0 {
			panic("dawgtest: empty key")
		}
		if value < 0 || value > maxValue {
			panic(fmt.Sprintf("dawgtest: value %d out of range for key %q", value, key))
		}
		n := root
		for i := 0; i < len(key); i++ {
			if key[i] == 0 {
				panic(fmt.Sprintf("dawgtest: NUL byte in key %q", key))
			}
			n = n.child(key[i])
		}
		n.terminal = true
		n.value = value
	}
	root.sortChildren()

	b := &builder{
		units: []uint32{0},
		used:  []bool{true},
	}
	b.guideChild = []byte{0}
	b.guideSibling = []byte{0}
	b.place(0, root)

	dict = make([]byte, 4+4*len(b.units))
	binary.LittleEndian.PutUint32(dict, uint32(len(b.units)))
	for i, u := range b.units {
		binary.LittleEndian.PutUint32(dict[4+4*i:], u)
	}

	guide = make([]byte, 4+2*len(b.units))
	binary.LittleEndian.PutUint32(guide, uint32(len(b.units)))
	for i := range b.units {
		guide[4+2*i] = b.guideChild[i]
		guide[4+2*i+1] = b.guideSibling[i]
	}
	return dict, guide
}

// SortedKeys returns the entries' keys in the enumeration order Build
// bakes into the guide.
func SortedKeys(entries map[string]int32) []string {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

type builder struct {
	units        []uint32
	used         []bool
	guideChild   []byte
	guideSibling []byte
}

func (b *builder) ensure(index uint32) {
	for uint32(len(b.units)) <= index {
		b.units = append(b.units, 0)
		b.used = append(b.used, false)
		b.guideChild = append(b.guideChild, 0)
		b.guideSibling = append(b.guideSibling, 0)
	}
}

// fits reports whether offset o places all of n's slots (the value slot
// when terminal, one slot per child label) on unused units.
func (b *builder) fits(index uint32, n *node, o uint32) bool {
	if n.terminal {
		t := index ^ o
		b.ensure(t)
		if b.used[t] {
			return false
		}
	}
	for _, c := range n.labels {
		t := index ^ o ^ uint32(c)
		b.ensure(t)
		if b.used[t] {
			return false
		}
	}
	return true
}

// place assigns an offset to the node at index, writes its value and child
// units, fills the guide records, and recurses into the children.
func (b *builder) place(index uint32, n *node) {
	if !n.terminal && len(n.labels) == 0 {
		return
	}

	o := uint32(1)
	for ; o < plainOffsetMax; o++ {
		if b.fits(index, n, o) {
			break
		}
	}
	if o == plainOffsetMax {
		panic("dawgtest: no offset found")
	}

	b.units[index] |= o << 10
	if n.terminal {
		b.units[index] |= hasLeafFlag
		t := index ^ o
		b.used[t] = true
		b.units[t] = uint32(n.value)<<1 | isLeafFlag
	}

	childIndex := make([]uint32, len(n.labels))
	for i, c := range n.labels {
		t := index ^ o ^ uint32(c)
		b.used[t] = true
		b.units[t] = uint32(c)
		childIndex[i] = t
	}

	if len(n.labels) > 0 {
		b.guideChild[index] = n.labels[0]
	}
	for i, t := range childIndex {
		if i+1 < len(n.labels) {
			b.guideSibling[t] = n.labels[i+1]
		}
	}

	for i, c := range n.children {
		b.place(childIndex[i], c)
	}
}
