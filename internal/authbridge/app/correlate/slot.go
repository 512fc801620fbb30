package correlate

import "sync"

// Slot holds at most one pending handle.
type Slot struct {
	mu      sync.Mutex
	current *Pending
}

// Replace installs p and returns the handle it displaced, if any. The
// displaced handle is left unresolved.
func (s *Slot) Replace(p *Pending) *Pending {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.current
	s.current = p

	return previous
}

// Take clears the slot and returns what it held.
func (s *Slot) Take() *Pending {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.current
	s.current = nil

	return p
}

// ClearIf clears the slot only when it still holds p.
func (s *Slot) ClearIf(p *Pending) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p == nil || s.current != p {
		return false
	}

	s.current = nil

	return true
}

func (s *Slot) Peek() *Pending {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}
