package client

import (
	"sync"
)

// State is the whole of the client's mutable state: the signed-in user
// (or nil), the derived privilege flag, and the cached game list. All
// writes go through the transition methods below.
type State struct {
	mu    sync.RWMutex
	user  *User
	admin bool
	cache []Game
}

func NewState() *State {
	return &State{}
}

func (s *State) SetUser(u *User, admin bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	s.admin = admin
}

func (s *State) ClearUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.admin = false
}

func (s *State) User() (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.admin
}

func (s *State) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin
}

// ReplaceCache swaps the game list wholesale; the cache is never patched
// in place. It reflects the last fetch to complete, nothing more.
func (s *State) ReplaceCache(games []Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = games
}

// Cache returns a copy so callers can filter and render without holding
// the lock.
func (s *State) Cache() []Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Game, len(s.cache))
	copy(out, s.cache)
	return out
}
