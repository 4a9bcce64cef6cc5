package completion

import "sync/atomic"

// Sequencer issues monotonically increasing request ids. A result is only
// applied if its id is still the latest one issued.
type Sequencer struct {
	last atomic.Uint64
}

// Next issues a new id, superseding every earlier one
func (s *Sequencer) Next() uint64 {
	return s.last.Add(1)
}

// Latest returns the last id issued
func (s *Sequencer) Latest() uint64 {
	return s.last.Load()
}

// IsLatest reports whether id is the last id issued
func (s *Sequencer) IsLatest(id uint64) bool {
	return id == s.last.Load()
}
