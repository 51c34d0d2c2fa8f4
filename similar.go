package dawgdex

import (
	"github.com/dawgdex/dawgdex/internal/matrix"
)

// Similar enumerates every dictionary key whose weighted edit distance to a
// query word is at most a cost bound. The distance is the generalized
// Damerau–Levenshtein distance: insertion, deletion, and replacement are
// always available, and adjacent transposition, split (one source character
// matching two target characters), and merge (two source characters
// matching one) can each be enabled independently.
//
// The distance matrix is maintained incrementally along the walker's path,
// one row per path character, and branches prune as soon as the minimum of
// the current row exceeds the bound: every edit adds a non-negative cost,
// so no descendant of a hopeless row can come back under it.
type Similar struct {
	walk *walker

	costs        *Costs
	word         []byte
	cachedInsert []float64 // insertion cost of word[j], precomputed per query
	dist         matrix.Matrix[float64]
	maxCost      float64
	foundCost    float64

	transpose bool
	split     bool
	merge     bool

	// da[c] is the last row at which path character c occurred; daRollback
	// holds the value displaced at each depth so ascents can restore it.
	da         [256]int
	daRollback []int
}

// NewSimilar returns a Similar search over the pair. It fails if the guide
// does not match the dictionary.
func NewSimilar(dic *Dictionary, guide *Guide) (*Similar, error) {
	s := &Similar{}
	walk, err := newWalker(dic, guide, s)
	if err != nil {
		return nil, err
	}
	s.walk = walk
	return s, nil
}

// SetCosts installs a cost model. Without one, a query charges unit cost
// for every operation. The model may be shared with other searches.
func (s *Similar) SetCosts(costs *Costs) {
	s.costs = costs
}

// EnableTranspose toggles adjacent transpositions, turning the distance
// into a true Damerau–Levenshtein distance.
func (s *Similar) EnableTranspose(on bool) {
	s.transpose = on
}

// EnableSplit toggles one-to-two character matches.
func (s *Similar) EnableSplit(on bool) {
	s.split = on
}

// EnableMerge toggles two-to-one character matches.
func (s *Similar) EnableMerge(on bool) {
	s.merge = on
}

// Start begins a query for keys within maxCost of word. The word bytes are
// copied. A negative bound is treated as zero.
func (s *Similar) Start(word []byte, maxCost float64) {
	s.word = append(s.word[:0], word...)
	if s.costs == nil {
		s.costs = NewCosts()
	}
	s.maxCost = max(0, maxCost)
	s.foundCost = -1

	columns := len(word) + 1
	depthHint := 2*len(word) + 1
	s.dist.Reset(columns)
	s.dist.Reserve(depthHint)

	if cap(s.cachedInsert) < len(word) {
		s.cachedInsert = make([]float64, len(word))
	}
	s.cachedInsert = s.cachedInsert[:len(word)]

	row0 := s.dist.Allocate(0)
	row0[0] = 0
	cost := 0.0
	for j := 1; j < columns; j++ {
		ic := s.costs.InsertCost(word[j-1])
		s.cachedInsert[j-1] = ic
		cost += ic
		row0[j] = cost
	}

	if s.transpose {
		s.da = [256]int{}
		s.daRollback = s.daRollback[:0]
		if cap(s.daRollback) < depthHint {
			s.daRollback = make([]int, 0, depthHint)
		}
	}

	s.walk.start(s.walk.dic.Root(), nil, depthHint)
}

// Next advances to the next match. It returns false iff no further key can
// satisfy the bound.
func (s *Similar) Next() bool {
	return s.walk.next()
}

// Key returns the current match. Valid until the next call to Next or
// Start.
func (s *Similar) Key() []byte {
	return s.walk.key()
}

// Value returns the current match's value.
func (s *Similar) Value() int32 {
	return s.walk.value()
}

// Cost returns the current match's distance to the query word.
func (s *Similar) Cost() float64 {
	return s.foundCost
}

func (s *Similar) onStep() (descend, emit bool) {
	path := s.walk.key()
	i := len(path)
	ai := path[i-1]

	deleteCost := s.costs.DeleteCost(ai)
	columns := s.dist.Columns()
	row := s.dist.Allocate(i)
	prev := s.dist.Row(i - 1)
	row0 := s.dist.Row(0)

	row[0] = prev[0] + deleteCost

	// db is the largest column so far in this row whose word character
	// equals ai; da and db together locate the transposition corner.
	db := 0
	left := row[0] // row[j-1]
	smallest := left

	for j := 1; j < columns; j++ {
		bj := s.word[j-1]
		lastMatch := db

		cost := prev[j-1]
		if bj != ai {
			cost += s.costs.ReplaceCost(ai, bj)
			if ins := left + s.cachedInsert[j-1]; ins < cost {
				cost = ins
			}
			if del := prev[j] + deleteCost; del < cost {
				cost = del
			}
		} else if s.transpose {
			db = j
		}

		if s.transpose && lastMatch >= 1 {
			if k := s.da[bj]; k >= 1 {
				// d[k-1][L-1] plus the deletions of path[k..i-2], the
				// transposition itself, and the insertions of
				// word[L..j-2]. The ranges collapse to first-column and
				// first-row differences.
				transposed := s.dist.Row(k - 1)[lastMatch-1] +
					(prev[0] - s.dist.Row(k)[0]) +
					s.costs.TransposeCost(path[k-1], ai) +
					(row0[j-1] - row0[lastMatch])
				if transposed < cost {
					cost = transposed
				}
			}
		}

		if s.split && j > 1 {
			if sc := prev[j-2] + s.costs.SplitCost(ai, s.word[j-2], s.word[j-1]); sc < cost {
				cost = sc
			}
		}

		if s.merge && i > 1 {
			if mc := s.dist.Row(i - 2)[j-1] + s.costs.MergeCost(path[i-2], ai, s.word[j-1]); mc < cost {
				cost = mc
			}
		}

		row[j] = cost
		left = cost
		if cost < smallest {
			smallest = cost
		}
	}

	if s.transpose {
		for len(s.daRollback) <= i {
			s.daRollback = append(s.daRollback, 0)
		}
		s.daRollback[i] = s.da[ai]
		s.da[ai] = i
	}

	best := row[columns-1]
	descend = smallest <= s.maxCost
	if best <= s.maxCost && s.walk.hasValue() {
		s.foundCost = best
		return descend, true
	}
	s.foundCost = -1
	return descend, false
}

func (s *Similar) onAscend() {
	if !s.transpose {
		return
	}
	path := s.walk.key()
	i := len(path)
	s.da[path[i-1]] = s.daRollback[i]
}
