// Dawgdex is a query tool for double-array DAWG dictionaries.
//
// Usage:
//
//	dawgdex -dict words.dic -word cart
//	dawgdex -dict words.dic -guide words.gid -complete ca
//	dawgdex -dict words.dic -guide words.gid -lcs cart -min-lcs 3
//	dawgdex -dict words.dic -guide words.gid -similar catr -max-cost 1 -transpose
//
// Flags:
//
//	-dict      Dictionary file (required)
//	-guide     Guide file (required for -complete, -lcs, -similar)
//	-costs     TOML cost model for -similar (optional)
//	-word      Exact lookup
//	-complete  Prefix completion
//	-lcs       Longest-common-subsequence search
//	-similar   Weighted edit-distance search
//	-min-lcs   Minimum LCS length (default: 3)
//	-max-cost  Edit-distance bound (default: 1)
//	-transpose / -split / -merge  Extra edit operations for -similar
//	-prefault  Prefault mapped pages before querying
package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"

	"github.com/dawgdex/dawgdex"
)

func main() {
	dictFlag := flag.String("dict", "", "dictionary file")
	guideFlag := flag.String("guide", "", "guide file")
	costsFlag := flag.String("costs", "", "TOML cost model file")
	wordFlag := flag.String("word", "", "exact lookup")
	completeFlag := flag.String("complete", "", "prefix completion")
	lcsFlag := flag.String("lcs", "", "longest-common-subsequence search")
	similarFlag := flag.String("similar", "", "weighted edit-distance search")
	minLCSFlag := flag.Int("min-lcs", 3, "minimum LCS length")
	maxCostFlag := flag.Float64("max-cost", 1, "edit-distance bound")
	transposeFlag := flag.Bool("transpose", false, "enable transpositions")
	splitFlag := flag.Bool("split", false, "enable splits")
	mergeFlag := flag.Bool("merge", false, "enable merges")
	prefaultFlag := flag.Bool("prefault", false, "prefault mapped pages")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "dawgdex",
		ReportTimestamp: true,
	})

	if *dictFlag == "" {
		logger.Fatal("missing -dict")
	}

	var opts []dawgdex.OpenOption
	if *prefaultFlag {
		opts = append(opts, dawgdex.WithPrefault())
	}

	dic, err := dawgdex.OpenDictionary(*dictFlag, opts...)
	if err != nil {
		logger.Fatal("open dictionary", "err", err)
	}
	defer dic.Close()
	logger.Info("dictionary loaded",
		"units", dic.Size(), "bytes", dic.FileSize(), "checksum", dic.Checksum())

	var guide *dawgdex.Guide
	if *guideFlag != "" {
		guide, err = dawgdex.OpenGuide(*guideFlag, opts...)
		if err != nil {
			logger.Fatal("open guide", "err", err)
		}
		defer guide.Close()
		logger.Info("guide loaded", "units", guide.Size(), "checksum", guide.Checksum())
	}

	switch {
	case *wordFlag != "":
		if value, ok := dic.FindValue([]byte(*wordFlag)); ok {
			logger.Info("found", "key", *wordFlag, "value", value)
		} else {
			logger.Warn("not found", "key", *wordFlag)
		}

	case *completeFlag != "":
		search, err := dawgdex.NewCompleter(dic, mustGuide(logger, guide))
		if err != nil {
			logger.Fatal("completer", "err", err)
		}
		search.Start([]byte(*completeFlag))
		n := 0
		for search.Next() {
			logger.Info("completion", "key", string(search.Key()), "value", search.Value())
			n++
		}
		logger.Info("done", "matches", n)

	case *lcsFlag != "":
		search, err := dawgdex.NewLCS(dic, mustGuide(logger, guide))
		if err != nil {
			logger.Fatal("lcs", "err", err)
		}
		search.Start([]byte(*lcsFlag), *minLCSFlag)
		n := 0
		for search.Next() {
			logger.Info("match", "key", string(search.Key()), "value", search.Value(),
				"lcs", string(search.Subsequence()))
			n++
		}
		logger.Info("done", "matches", n)

	case *similarFlag != "":
		search, err := dawgdex.NewSimilar(dic, mustGuide(logger, guide))
		if err != nil {
			logger.Fatal("similar", "err", err)
		}
		if *costsFlag != "" {
			costs, err := dawgdex.LoadCosts(*costsFlag)
			if err != nil {
				logger.Fatal("load costs", "err", err)
			}
			search.SetCosts(costs)
		}
		search.EnableTranspose(*transposeFlag)
		search.EnableSplit(*splitFlag)
		search.EnableMerge(*mergeFlag)
		search.Start([]byte(*similarFlag), *maxCostFlag)
		n := 0
		for search.Next() {
			logger.Info("match", "key", string(search.Key()), "value", search.Value(),
				"cost", search.Cost())
			n++
		}
		logger.Info("done", "matches", n)

	default:
		logger.Fatal("nothing to do: pass -word, -complete, -lcs, or -similar")
	}
}

func mustGuide(logger *log.Logger, guide *dawgdex.Guide) *dawgdex.Guide {
	if guide == nil {
		logger.Fatal("missing -guide")
	}
	return guide
}
