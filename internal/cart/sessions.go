package cart

import "sync"

// Sessions hands out one cart per user id. Carts live only as long as the
// process; after a successful checkout the caller clears its cart.
type Sessions struct {
	mu    sync.Mutex
	carts map[int64]*Cart
}

func NewSessions() *Sessions {
	return &Sessions{carts: make(map[int64]*Cart)}
}

// With runs fn against the user's cart (created empty on first use),
// so concurrent requests for the same user cannot interleave a
// read-modify-write.
func (s *Sessions) With(userID int64, fn func(*Cart)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		c = New(userID)
		s.carts[userID] = c
	}
	fn(c)
}

// Drop discards the user's cart entirely.
func (s *Sessions) Drop(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}
