package concat

import "sync/atomic"

// Sequencer hands out the strictly increasing document indices used by the
// CXML format. One Sequencer lives for one run; the first index is 1 and no
// value is ever reused, no matter how many roots are walked. The counter is
// atomic so that a parallel traversal could share it without collisions.
type Sequencer struct {
	next atomic.Int64
}

// NewSequencer returns a Sequencer whose first Next call yields 1.
func NewSequencer() *Sequencer {
	s := &Sequencer{}
	s.next.Store(1)
	return s
}

// Next returns the next document index.
func (s *Sequencer) Next() int64 {
	return s.next.Add(1) - 1
}
