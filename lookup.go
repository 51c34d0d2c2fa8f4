package dawgdex

// Lookup is exact matching expressed through the same start/next surface as
// the other searches, so callers can treat all query kinds uniformly. It
// yields at most one result per Start.
type Lookup struct {
	dic *Dictionary

	word  []byte
	value int32
	found bool
	done  bool
}

// NewLookup returns a Lookup over dic.
func NewLookup(dic *Dictionary) *Lookup {
	return &Lookup{dic: dic}
}

// Start begins an exact-match query for word. The word bytes are copied.
func (l *Lookup) Start(word []byte) {
	l.word = append(l.word[:0], word...)
	l.value, l.found = l.dic.FindValue(l.word)
	l.done = false
}

// Next reports whether a result is available. It returns true at most once
// per Start, and false on every later call.
func (l *Lookup) Next() bool {
	if l.done || !l.found {
		l.done = true
		return false
	}
	l.done = true
	return true
}

// Key returns the matched key. Valid only after Next has returned true.
func (l *Lookup) Key() []byte {
	return l.word
}

// Value returns the matched key's value. Valid only after Next has
// returned true.
func (l *Lookup) Value() int32 {
	return l.value
}
