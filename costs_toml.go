package dawgdex

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	dawgerrors "github.com/dawgdex/dawgdex/errors"
)

// costsConfig is the TOML shape of a cost model. Keys of the costs tables
// are the byte combination as a string: one character for insert/delete,
// two for replace/transpose (source then target), three for split (source,
// then the two targets) and merge (the two sources, then the target).
//
//	[delete]
//	default = 1.0
//	[delete.costs]
//	"t" = 5.0
//
//	[replace.costs]
//	"sz" = 0.25
type costsConfig struct {
	Insert    opConfig `toml:"insert"`
	Delete    opConfig `toml:"delete"`
	Replace   opConfig `toml:"replace"`
	Transpose opConfig `toml:"transpose"`
	Split     opConfig `toml:"split"`
	Merge     opConfig `toml:"merge"`
}

type opConfig struct {
	Default *float64           `toml:"default"`
	Costs   map[string]float64 `toml:"costs"`
}

// LoadCosts reads a cost model from a TOML file.
func LoadCosts(path string) (*Costs, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open costs file: %w", err)
	}
	defer file.Close()
	return DecodeCosts(file)
}

// DecodeCosts reads a TOML cost model from r. Omitted operations keep unit
// cost; defaults apply before per-combination overrides.
func DecodeCosts(r io.Reader) (*Costs, error) {
	var cfg costsConfig
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode costs: %w", err)
	}

	costs := NewCosts()
	ops := []struct {
		name  string
		arity int
		op    opConfig
		def   func(float64) error
		set   func([]byte, float64) error
	}{
		{"insert", 1, cfg.Insert, costs.SetDefaultInsertCost,
			func(k []byte, c float64) error { return costs.SetInsertCost(k[0], c) }},
		{"delete", 1, cfg.Delete, costs.SetDefaultDeleteCost,
			func(k []byte, c float64) error { return costs.SetDeleteCost(k[0], c) }},
		{"replace", 2, cfg.Replace, costs.SetDefaultReplaceCost,
			func(k []byte, c float64) error { return costs.SetReplaceCost(k[0], k[1], c) }},
		{"transpose", 2, cfg.Transpose, costs.SetDefaultTransposeCost,
			func(k []byte, c float64) error { return costs.SetTransposeCost(k[0], k[1], c) }},
		{"split", 3, cfg.Split, costs.SetDefaultSplitCost,
			func(k []byte, c float64) error { return costs.SetSplitCost(k[0], k[1], k[2], c) }},
		{"merge", 3, cfg.Merge, costs.SetDefaultMergeCost,
			func(k []byte, c float64) error { return costs.SetMergeCost(k[0], k[1], k[2], c) }},
	}

	for _, o := range ops {
		if o.op.Default != nil {
			if err := o.def(*o.op.Default); err != nil {
				return nil, fmt.Errorf("%s default: %w", o.name, err)
			}
		}
		for key, cost := range o.op.Costs {
			if len(key) != o.arity {
				return nil, fmt.Errorf("%w: %s key %q wants %d bytes",
					dawgerrors.ErrBadCostKey, o.name, key, o.arity)
			}
			if err := o.set([]byte(key), cost); err != nil {
				return nil, fmt.Errorf("%s key %q: %w", o.name, key, err)
			}
		}
	}
	return costs, nil
}
