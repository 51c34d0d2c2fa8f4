// Package dawgdex implements approximate string matching over a minimal,
// double-array-indexed DAWG (directed acyclic word graph).
//
// A Dictionary maps byte-string keys to non-negative integer values and is
// produced offline by an external builder; this package is the query side.
// Alongside exact lookup, a Guide sidecar enables ordered enumeration of
// the key set, on top of which three searches run: prefix completion
// (Completer), longest-common-subsequence matching (LCS), and weighted
// edit-distance matching with branch-and-bound pruning (Similar).
//
// # Basic Usage
//
// Opening a dictionary and guide:
//
//	dic, err := dawgdex.OpenDictionary("words.dic")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dic.Close()
//
//	guide, err := dawgdex.OpenGuide("words.gid")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer guide.Close()
//
// Exact lookup:
//
//	if value, ok := dic.FindValue([]byte("cart")); ok {
//	    fmt.Println(value)
//	}
//
// Edit-distance search:
//
//	search, err := dawgdex.NewSimilar(dic, guide)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	search.EnableTranspose(true)
//	search.Start([]byte("catr"), 1)
//	for search.Next() {
//	    fmt.Printf("%s (%d) cost=%g\n", search.Key(), search.Value(), search.Cost())
//	}
//
// # Package Structure
//
//   - Automaton: dictionary.go (exact lookup, transitions, I/O), guide.go
//     (ordered enumeration sidecar), unit.go (bit layout)
//   - Traversal: dfs.go (depth-first walker with pluggable delegate)
//   - Searches: lookup.go, completer.go, lcs.go, similar.go
//   - Cost models: costs.go, costs_toml.go
//   - Scratch space: internal/matrix (grow-on-demand DP matrix)
//   - Platform: prefault_*.go (page prefault hint)
//
// # Concurrency
//
// Dictionary and Guide are immutable after construction and may be shared
// by any number of searches on independent goroutines. A search instance
// owns mutable per-query scratch state and must not be used concurrently.
package dawgdex
