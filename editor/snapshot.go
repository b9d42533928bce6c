package editor

import "sync/atomic"

// Snapshots holds the last saved state of the product, the baseline every
// diff is computed against. A snapshot is never modified after it is taken;
// taking a new one replaces the old one atomically.
type Snapshots struct {
	cur atomic.Pointer[Product]
}

// Take installs a deep copy of p as the current snapshot and returns it.
func (s *Snapshots) Take(p *Product) *Product {
	c := p.Clone()
	s.cur.Store(c)
	return c
}

// Get returns the current snapshot, or nil before the first one is taken.
// Callers must treat the result as read-only.
func (s *Snapshots) Get() *Product {
	return s.cur.Load()
}
