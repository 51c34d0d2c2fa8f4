// test_helpers_test.go holds fixtures shared by the package tests: pair
// construction over the in-repo test builder, deterministic RNG seeding,
// and reference implementations of Levenshtein, unrestricted
// Damerau-Levenshtein, and LCS length used to cross-check the searches.
package dawgdex

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	randv2 "math/rand/v2"
	"testing"

	"github.com/dawgdex/dawgdex/internal/dawgtest"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x9E3779B97F4A7C15
	testSeed2 = 0xC2B2AE3D27D4EB4F
)

func newTestRNG(t testing.TB) *randv2.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return randv2.New(randv2.NewPCG(testSeed1^s1, testSeed2^s2))
}

// animalEntries is the canonical small fixture used throughout the tests.
func animalEntries() map[string]int32 {
	return map[string]int32{"cat": 1, "car": 2, "cart": 3, "dog": 4}
}

// buildPair fabricates a dictionary/guide pair from entries.
func buildPair(t testing.TB, entries map[string]int32) (*Dictionary, *Guide) {
	t.Helper()
	dictData, guideData := dawgtest.Build(entries)

	dic, rest, err := MapDictionary(dictData)
	if err != nil {
		t.Fatalf("MapDictionary: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("MapDictionary left %d trailing bytes", len(rest))
	}

	guide, rest, err := MapGuide(guideData)
	if err != nil {
		t.Fatalf("MapGuide: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("MapGuide left %d trailing bytes", len(rest))
	}
	return dic, guide
}

// randomEntries generates count distinct keys over a small alphabet, so
// that near-miss keys (and transposition opportunities) are common.
func randomEntries(rng *randv2.Rand, count int) map[string]int32 {
	const alphabet = "abcd"
	entries := make(map[string]int32)
	for next := int32(0); len(entries) < count; {
		n := 1 + rng.IntN(6)
		key := make([]byte, n)
		for i := range key {
			key[i] = alphabet[rng.IntN(len(alphabet))]
		}
		if _, ok := entries[string(key)]; !ok {
			entries[string(key)] = next
			next++
		}
	}
	return entries
}

func randomWord(rng *randv2.Rand, maxLen int) string {
	const alphabet = "abcd"
	n := rng.IntN(maxLen + 1)
	word := make([]byte, n)
	for i := range word {
		word[i] = alphabet[rng.IntN(len(alphabet))]
	}
	return string(word)
}

// match is one search result, normalized for comparison.
type match struct {
	key   string
	value int32
	cost  float64
}

func (m match) String() string {
	return fmt.Sprintf("%s(%d)@%g", m.key, m.value, m.cost)
}

func collectSimilar(t testing.TB, s *Similar, word string, maxCost float64) []match {
	t.Helper()
	s.Start([]byte(word), maxCost)
	var out []match
	for s.Next() {
		out = append(out, match{string(s.Key()), s.Value(), s.Cost()})
	}
	return out
}

// similarCosts runs an unbounded search and returns the cost per key.
func similarCosts(t testing.TB, s *Similar, word string) map[string]float64 {
	t.Helper()
	out := make(map[string]float64)
	for _, m := range collectSimilar(t, s, word, math.Inf(1)) {
		if _, dup := out[m.key]; dup {
			t.Fatalf("key %q visited twice", m.key)
		}
		out[m.key] = m.cost
	}
	return out
}

// lcsMatch is one LCS search result.
type lcsMatch struct {
	key   string
	value int32
	lcs   string
}

func collectLCS(t testing.TB, s *LCS, word string, minLength int) []lcsMatch {
	t.Helper()
	s.Start([]byte(word), minLength)
	var out []lcsMatch
	for s.Next() {
		out = append(out, lcsMatch{string(s.Key()), s.Value(), string(s.Subsequence())})
	}
	return out
}

func collectCompletions(t testing.TB, c *Completer, prefix string) []match {
	t.Helper()
	c.Start([]byte(prefix))
	var out []match
	for c.Next() {
		out = append(out, match{key: string(c.Key()), value: c.Value()})
	}
	return out
}

// levenshtein is the classic unit-cost edit distance, implemented
// independently of the package's row recurrence.
func levenshtein(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			sub := prev[j-1]
			if a[i-1] != b[j-1] {
				sub++
			}
			cur[j] = min(sub, prev[j]+1, cur[j-1]+1)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// damerau is the textbook unrestricted Damerau-Levenshtein distance with
// unit costs.
func damerau(a, b string) int {
	maxDist := len(a) + len(b)
	d := make([][]int, len(a)+2)
	for i := range d {
		d[i] = make([]int, len(b)+2)
	}
	d[0][0] = maxDist
	for i := 0; i <= len(a); i++ {
		d[i+1][0] = maxDist
		d[i+1][1] = i
	}
	for j := 0; j <= len(b); j++ {
		d[0][j+1] = maxDist
		d[1][j+1] = j
	}

	var da [256]int
	for i := 1; i <= len(a); i++ {
		db := 0
		for j := 1; j <= len(b); j++ {
			k := da[b[j-1]]
			l := db
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
				db = j
			}
			d[i+1][j+1] = min(
				d[i][j]+cost,
				d[i+1][j]+1,
				d[i][j+1]+1,
				d[k][l]+(i-k-1)+1+(j-l-1),
			)
		}
		da[a[i-1]] = i
	}
	return d[len(a)+1][len(b)+1]
}

// lcsLen is the classic LCS length table, independent of the package's
// incremental rows.
func lcsLen(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else {
				cur[j] = max(cur[j-1], prev[j])
			}
		}
		prev, cur = cur, prev
		clear(cur)
	}
	return prev[len(b)]
}

func isSubsequence(sub, full string) bool {
	i := 0
	for j := 0; i < len(sub) && j < len(full); j++ {
		if sub[i] == full[j] {
			i++
		}
	}
	return i == len(sub)
}
