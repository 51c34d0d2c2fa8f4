package dawgdex

// Completer enumerates every dictionary key extending a prefix, in guide
// order, with values. It is the plain traversal of the family: the walker
// does all the work and the delegate only decides to emit at terminal
// states.
type Completer struct {
	walk *walker

	// The walker reports transitions only, so a prefix that is itself a
	// complete key is emitted out of band before the walk starts.
	pendingSeed bool
	alive       bool
}

// NewCompleter returns a Completer over the pair. It fails if the guide
// does not match the dictionary.
func NewCompleter(dic *Dictionary, guide *Guide) (*Completer, error) {
	c := &Completer{}
	walk, err := newWalker(dic, guide, c)
	if err != nil {
		return nil, err
	}
	c.walk = walk
	return c, nil
}

// Start begins enumerating keys that extend prefix. An empty prefix
// enumerates the whole key set. The prefix bytes are copied into the
// result buffer.
func (c *Completer) Start(prefix []byte) {
	seed, ok := c.walk.dic.FollowBytes(prefix, c.walk.dic.Root())
	if !ok {
		c.alive = false
		return
	}
	c.walk.start(seed, prefix, len(prefix)+16)
	c.pendingSeed = c.walk.dic.HasValue(seed)
	c.alive = true
}

// Next advances to the next completion. It returns false iff the prefix's
// subtree is exhausted (or the prefix is not in the dictionary at all).
func (c *Completer) Next() bool {
	if !c.alive {
		return false
	}
	if c.pendingSeed {
		c.pendingSeed = false
		return true
	}
	return c.walk.next()
}

// Key returns the current completion, prefix included. Valid until the
// next call to Next or Start.
func (c *Completer) Key() []byte {
	return c.walk.key()
}

// Value returns the current completion's value.
func (c *Completer) Value() int32 {
	return c.walk.value()
}

func (c *Completer) onStep() (descend, emit bool) {
	return true, c.walk.hasValue()
}

func (c *Completer) onAscend() {}
