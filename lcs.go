package dawgdex

import (
	"github.com/dawgdex/dawgdex/internal/matrix"
)

// LCS enumerates every dictionary key sharing a longest common subsequence
// of at least a given length with the query word, reporting each match with
// its value and the reconstructed subsequence.
//
// The classic LCS table is maintained incrementally: the walker extends the
// current path one character at a time, and each extension computes one new
// table row from the previous one. Rows above the current depth stay valid
// across ascents, so a sibling branch reuses everything computed for the
// shared prefix.
type LCS struct {
	walk *walker

	word      []byte
	table     matrix.Matrix[int16]
	minLength int
	result    []byte
}

// NewLCS returns an LCS search over the pair. It fails if the guide does
// not match the dictionary.
func NewLCS(dic *Dictionary, guide *Guide) (*LCS, error) {
	s := &LCS{}
	walk, err := newWalker(dic, guide, s)
	if err != nil {
		return nil, err
	}
	s.walk = walk
	return s, nil
}

// Start begins a query for keys whose LCS with word has at least minLength
// characters. The word bytes are copied.
func (s *LCS) Start(word []byte, minLength int) {
	s.word = append(s.word[:0], word...)
	s.minLength = minLength
	if cap(s.result) < len(word) {
		s.result = make([]byte, 0, len(word))
	}

	columns := len(word) + 1
	s.table.Reset(columns)
	row0 := s.table.Allocate(0)
	for j := range row0 {
		row0[j] = 0
	}

	s.walk.start(s.walk.dic.Root(), nil, 2*len(word)+1)
}

// Next advances to the next match. It returns false iff the dictionary is
// exhausted.
func (s *LCS) Next() bool {
	return s.walk.next()
}

// Key returns the current match. Valid until the next call to Next or
// Start.
func (s *LCS) Key() []byte {
	return s.walk.key()
}

// Value returns the current match's value.
func (s *LCS) Value() int32 {
	return s.walk.value()
}

// Subsequence returns the longest common subsequence of the current match
// and the query word. Valid until the next call to Next or Start.
func (s *LCS) Subsequence() []byte {
	return s.result
}

func (s *LCS) onStep() (descend, emit bool) {
	path := s.walk.key()
	i := len(path)
	ai := path[i-1]

	columns := s.table.Columns()
	row := s.table.Allocate(i)
	prev := s.table.Row(i - 1)

	row[0] = 0
	for j := 1; j < columns; j++ {
		if ai == s.word[j-1] {
			row[j] = prev[j-1] + 1
		} else {
			row[j] = max(row[j-1], prev[j])
		}
	}

	// No prune: the table is monotone along the path and any descendant
	// may still reach the threshold.
	if s.walk.hasValue() && int(row[columns-1]) >= s.minLength {
		s.backtrack(i, columns-1)
		return true, true
	}
	return true, false
}

func (s *LCS) onAscend() {}

// backtrack reconstructs the subsequence from table cell (i, j): step
// diagonally on equal characters, otherwise toward the larger neighbor,
// breaking ties toward the previous row.
func (s *LCS) backtrack(i, j int) {
	s.result = s.result[:0]
	path := s.walk.key()
	for i > 0 && j > 0 {
		if path[i-1] == s.word[j-1] {
			s.result = append(s.result, path[i-1])
			i--
			j--
		} else if s.table.Row(i)[j-1] > s.table.Row(i - 1)[j] {
			j--
		} else {
			i--
		}
	}
	reverseBytes(s.result)
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
