package dawgdex

import (
	dawgerrors "github.com/dawgdex/dawgdex/errors"
)

// walkDelegate is the capability set a search plugs into the walker. The
// walker owns the traversal; the delegate owns the per-depth computation.
//
// onStep is called after every successful transition, with the path buffer
// already reflecting the consumed label. descend=false marks the branch as
// fully explored; emit=true suspends the walk and returns control to the
// caller of next.
//
// onAscend is called before a label is popped, with the path buffer still
// containing it, so the delegate can roll back incremental state indexed by
// the current depth.
type walkDelegate interface {
	onStep() (descend, emit bool)
	onAscend()
}

// walkMode is the walker's traversal mode.
type walkMode uint8

const (
	// nextChild descends to the first child of the top state.
	nextChild walkMode = iota
	// nextSibling ascends one state and tries its next sibling.
	nextSibling
)

// walker is a reusable depth-first traversal over a (Dictionary, Guide)
// pair. It visits the subtree below its seed state in guide order, calling
// the delegate at every transition. Each key below the seed is visited at
// most once per start.
type walker struct {
	dic      *Dictionary
	guide    *Guide
	delegate walkDelegate

	stack []uint32
	path  []byte
	mode  walkMode
}

// newWalker validates the pair and binds the delegate. A guide whose length
// differs from the dictionary's would index out of step with it, so the
// mismatch is rejected here rather than surfacing as a bad traversal.
func newWalker(dic *Dictionary, guide *Guide, delegate walkDelegate) (*walker, error) {
	if guide.Size() != dic.Size() {
		return nil, dawgerrors.ErrGuideMismatch
	}
	return &walker{dic: dic, guide: guide, delegate: delegate}, nil
}

// start seeds the walk at the given state. prefix primes the path buffer so
// key() returns full keys when the seed is below the root (Completer);
// depth-indexed delegates pass nil. depthHint reserves path capacity to
// keep the inner loop free of growth.
func (w *walker) start(seed uint32, prefix []byte, depthHint int) {
	w.mode = nextChild
	w.stack = append(w.stack[:0], seed)
	if cap(w.path) < depthHint {
		w.path = make([]byte, 0, depthHint)
	}
	w.path = append(w.path[:0], prefix...)
}

// key returns the current path. Valid only while the walk is suspended; the
// buffer is rewritten as the walk advances.
func (w *walker) key() []byte {
	return w.path
}

// value returns the value of the current state.
func (w *walker) value() int32 {
	return w.dic.Value(w.top())
}

// hasValue reports whether a key ends at the current state.
func (w *walker) hasValue() bool {
	return w.dic.HasValue(w.top())
}

func (w *walker) top() uint32 {
	return w.stack[len(w.stack)-1]
}

// follow pushes the transition on label from the top state. A failed
// transition means the guide does not belong to this dictionary; the walk
// cannot continue.
func (w *walker) follow(label byte) bool {
	index, ok := w.dic.Follow(label, w.top())
	if !ok {
		return false
	}
	w.stack = append(w.stack, index)
	w.path = append(w.path, label)
	return true
}

// ascend pops the top state. The delegate is notified, and the path
// shortened, only when the pop leaves the seed's subtree intact; popping
// the seed itself ends the walk and has no label to roll back.
func (w *walker) ascend() {
	if len(w.stack) > 1 {
		w.delegate.onAscend()
		w.path = w.path[:len(w.path)-1]
	}
	w.stack = w.stack[:len(w.stack)-1]
}

// next advances the walk until the delegate emits or the subtree is
// exhausted. It returns false iff the walk is exhausted.
func (w *walker) next() bool {
	if len(w.stack) == 0 {
		return false
	}

	for {
		switch w.mode {
		case nextChild:
			child := w.guide.Child(w.top())
			if child == 0 {
				w.mode = nextSibling
				continue
			}
			if !w.follow(child) {
				return false
			}
			descend, emit := w.delegate.onStep()
			if !descend {
				w.mode = nextSibling
			}
			if emit {
				return true
			}

		case nextSibling:
			for {
				// The seed's sibling belongs to the enclosing subtree,
				// not this walk.
				var sibling byte
				if len(w.stack) > 1 {
					sibling = w.guide.Sibling(w.top())
				}
				w.ascend()

				if sibling == 0 {
					if len(w.stack) == 0 {
						return false
					}
					continue
				}

				if !w.follow(sibling) {
					return false
				}
				descend, emit := w.delegate.onStep()
				if descend {
					w.mode = nextChild
				} else {
					w.mode = nextSibling
				}
				if emit {
					return true
				}
				break
			}
		}
	}
}
