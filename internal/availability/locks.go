package availability

import (
	"fmt"
	"sync"
	"time"
)

// SlotLocks serializes the occupancy-check-then-insert section of booking
// creation per (venue, booking date). Without it two concurrent requests can
// both pass Admit against the same stale occupancy snapshot and jointly
// exceed CapacityLimit. A per-day key is coarser than the ±89-minute window
// but always covers it, and venue booking volume is low enough that the
// extra serialization is not felt.
type SlotLocks struct {
	mu    sync.Mutex
	locks map[string]*slotLock
}

type slotLock struct {
	mu   sync.Mutex
	refs int
}

// NewSlotLocks returns an empty lock table.
func NewSlotLocks() *SlotLocks {
	return &SlotLocks{locks: make(map[string]*slotLock)}
}

// Do runs fn while holding the lock for the venue's booking date. Lock
// entries are reference counted and removed once the last holder leaves, so
// the table stays bounded by in-flight requests.
func (s *SlotLocks) Do(venueID uint64, date time.Time, fn func() error) error {
	key := fmt.Sprintf("%d:%s", venueID, date.Format(DateLayout))

	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &slotLock{}
		s.locks[key] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	defer func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, key)
		}
		s.mu.Unlock()
	}()
	return fn()
}
