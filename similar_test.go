package dawgdex

import (
	"math"
	"testing"

	"github.com/dawgdex/dawgdex/internal/dawgtest"
)

func newSimilar(t testing.TB, dic *Dictionary, guide *Guide) *Similar {
	t.Helper()
	search, err := NewSimilar(dic, guide)
	if err != nil {
		t.Fatalf("NewSimilar: %v", err)
	}
	return search
}

func TestSimilarUnitCosts(t *testing.T) {
	dic, guide := buildPair(t, animalEntries())
	search := newSimilar(t, dic, guide)

	got := collectSimilar(t, search, "car", 1)
	want := []match{
		{"car", 2, 0},
		{"cart", 3, 1},
		{"cat", 1, 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("match %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSimilarTranspose(t *testing.T) {
	dic, guide := buildPair(t, animalEntries())
	search := newSimilar(t, dic, guide)

	search.EnableTranspose(true)
	got := collectSimilar(t, search, "act", 1)
	if len(got) != 1 || got[0].key != "cat" || got[0].cost != 1 {
		t.Errorf("with transposition: got %v, want cat@1", got)
	}

	search.EnableTranspose(false)
	if got := collectSimilar(t, search, "act", 1); len(got) != 0 {
		t.Errorf("without transposition: got %v, want none", got)
	}
}

func TestSimilarWeightedDelete(t *testing.T) {
	dic, guide := buildPair(t, animalEntries())
	search := newSimilar(t, dic, guide)

	costs := NewCosts()
	if err := costs.SetDeleteCost('t', 5); err != nil {
		t.Fatal(err)
	}
	search.SetCosts(costs)

	got := collectSimilar(t, search, "ca", 1)
	if len(got) != 1 || got[0].key != "car" || got[0].cost != 1 {
		t.Errorf("maxCost=1: got %v, want car@1 only", got)
	}

	got = collectSimilar(t, search, "ca", 5)
	want := []match{{"car", 2, 1}, {"cat", 1, 5}}
	if len(got) != len(want) {
		t.Fatalf("maxCost=5: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("maxCost=5 match %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSimilarEmptyWord(t *testing.T) {
	dic, guide := buildPair(t, animalEntries())
	search := newSimilar(t, dic, guide)

	got := collectSimilar(t, search, "", 3)
	// Unit insert costs make the distance to the empty word the key
	// length, so exactly the keys of length <= 3 qualify.
	want := []match{{"car", 2, 3}, {"cat", 1, 3}, {"dog", 4, 3}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("match %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSimilarEnumerationTotality(t *testing.T) {
	rng := newTestRNG(t)
	entries := randomEntries(rng, 60)
	dic, guide := buildPair(t, entries)
	search := newSimilar(t, dic, guide)

	got := collectSimilar(t, search, "abc", math.Inf(1))
	if len(got) != len(entries) {
		t.Fatalf("unbounded search visited %d keys, want %d", len(got), len(entries))
	}
	want := dawgtest.SortedKeys(entries)
	for i, m := range got {
		if m.key != want[i] {
			t.Fatalf("result %d = %q, want %q (guide order broken)", i, m.key, want[i])
		}
	}
}

func TestSimilarMatchesLevenshtein(t *testing.T) {
	rng := newTestRNG(t)
	entries := randomEntries(rng, 50)
	dic, guide := buildPair(t, entries)
	search := newSimilar(t, dic, guide)

	for round := 0; round < 25; round++ {
		word := randomWord(rng, 6)
		costs := similarCosts(t, search, word)
		for key := range entries {
			want := float64(levenshtein(key, word))
			if costs[key] != want {
				t.Fatalf("word=%q key=%q: cost %g, reference %g", word, key, costs[key], want)
			}
		}
	}
}

func TestSimilarPruningSoundness(t *testing.T) {
	rng := newTestRNG(t)
	entries := randomEntries(rng, 50)
	dic, guide := buildPair(t, entries)
	search := newSimilar(t, dic, guide)

	// A bounded search must return exactly the keys whose reference
	// distance fits the bound, with the same costs: pruning may cut
	// subtrees, never answers.
	for round := 0; round < 25; round++ {
		word := randomWord(rng, 6)
		bound := float64(rng.IntN(4))

		got := make(map[string]float64)
		for _, m := range collectSimilar(t, search, word, bound) {
			got[m.key] = m.cost
		}
		for key := range entries {
			want := float64(levenshtein(key, word))
			cost, reported := got[key]
			if (want <= bound) != reported {
				t.Fatalf("word=%q bound=%g key=%q: reported=%v, reference=%g",
					word, bound, key, reported, want)
			}
			if reported && cost != want {
				t.Fatalf("word=%q key=%q: cost %g, reference %g", word, key, cost, want)
			}
		}
	}
}

func TestSimilarTransposeMatchesDamerau(t *testing.T) {
	rng := newTestRNG(t)
	entries := randomEntries(rng, 50)
	dic, guide := buildPair(t, entries)
	search := newSimilar(t, dic, guide)
	search.EnableTranspose(true)

	for round := 0; round < 25; round++ {
		word := randomWord(rng, 6)
		costs := similarCosts(t, search, word)
		for key := range entries {
			want := float64(damerau(key, word))
			if costs[key] != want {
				t.Fatalf("word=%q key=%q: cost %g, damerau %g", word, key, costs[key], want)
			}
		}
	}
}

func TestSimilarFeatureMonotonicity(t *testing.T) {
	rng := newTestRNG(t)
	entries := randomEntries(rng, 40)
	dic, guide := buildPair(t, entries)

	configure := []func(*Similar){
		func(s *Similar) { s.EnableTranspose(true) },
		func(s *Similar) { s.EnableSplit(true) },
		func(s *Similar) { s.EnableMerge(true) },
		func(s *Similar) { s.EnableTranspose(true); s.EnableSplit(true); s.EnableMerge(true) },
	}

	for round := 0; round < 10; round++ {
		word := randomWord(rng, 6)

		plain := newSimilar(t, dic, guide)
		base := similarCosts(t, plain, word)

		for fi, enable := range configure {
			search := newSimilar(t, dic, guide)
			enable(search)
			costs := similarCosts(t, search, word)
			for key, cost := range costs {
				if cost > base[key] {
					t.Errorf("feature set %d, word=%q key=%q: cost rose from %g to %g",
						fi, word, key, base[key], cost)
				}
			}
		}
	}
}

func TestSimilarSymmetry(t *testing.T) {
	rng := newTestRNG(t)

	// Unit costs are symmetric, so the distance must be too: index one
	// string and query the other, both ways round.
	for round := 0; round < 30; round++ {
		a := randomWord(rng, 6)
		b := randomWord(rng, 6)
		if a == "" || b == "" {
			continue
		}

		dicA, guideA := buildPair(t, map[string]int32{a: 1})
		searchA := newSimilar(t, dicA, guideA)
		costAB := similarCosts(t, searchA, b)[a]

		dicB, guideB := buildPair(t, map[string]int32{b: 1})
		searchB := newSimilar(t, dicB, guideB)
		costBA := similarCosts(t, searchB, a)[b]

		if costAB != costBA {
			t.Errorf("d(%q,%q) = %g but d(%q,%q) = %g", a, b, costAB, b, a, costBA)
		}
	}
}

func TestSimilarSplit(t *testing.T) {
	dic, guide := buildPair(t, map[string]int32{"a": 7})
	search := newSimilar(t, dic, guide)

	costs := NewCosts()
	if err := costs.SetSplitCost('a', 'u', 'v', 0.5); err != nil {
		t.Fatal(err)
	}
	search.SetCosts(costs)

	if got := collectSimilar(t, search, "uv", 1); len(got) != 0 {
		t.Errorf("split disabled: got %v, want none", got)
	}

	search.EnableSplit(true)
	got := collectSimilar(t, search, "uv", 1)
	if len(got) != 1 || got[0].cost != 0.5 {
		t.Errorf("split enabled: got %v, want a@0.5", got)
	}
}

func TestSimilarMerge(t *testing.T) {
	dic, guide := buildPair(t, map[string]int32{"uv": 7})
	search := newSimilar(t, dic, guide)

	costs := NewCosts()
	if err := costs.SetMergeCost('u', 'v', 'a', 0.5); err != nil {
		t.Fatal(err)
	}
	search.SetCosts(costs)

	if got := collectSimilar(t, search, "a", 1); len(got) != 0 {
		t.Errorf("merge disabled: got %v, want none", got)
	}

	search.EnableMerge(true)
	got := collectSimilar(t, search, "a", 1)
	if len(got) != 1 || got[0].cost != 0.5 {
		t.Errorf("merge enabled: got %v, want uv@0.5", got)
	}
}

func TestSimilarZeroBound(t *testing.T) {
	dic, guide := buildPair(t, animalEntries())
	search := newSimilar(t, dic, guide)

	got := collectSimilar(t, search, "cat", 0)
	if len(got) != 1 || got[0].key != "cat" || got[0].cost != 0 {
		t.Errorf("maxCost=0: got %v, want cat@0", got)
	}

	// A negative bound clamps to zero rather than rejecting everything.
	got = collectSimilar(t, search, "cat", -3)
	if len(got) != 1 || got[0].key != "cat" {
		t.Errorf("negative bound: got %v, want cat@0", got)
	}
}

func TestSimilarRepeatedStart(t *testing.T) {
	dic, guide := buildPair(t, animalEntries())
	search := newSimilar(t, dic, guide)
	search.EnableTranspose(true)

	// Scratch state (matrix rows, da, rollback) must reset between
	// queries of different shapes.
	_ = collectSimilar(t, search, "cartwheel", 4)
	_ = collectSimilar(t, search, "", 1)
	got := collectSimilar(t, search, "act", 1)
	if len(got) != 1 || got[0].key != "cat" || got[0].cost != 1 {
		t.Errorf("after reuse: got %v, want cat@1", got)
	}
}
