package client

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

type fetchState int

const (
	fetchIdle fetchState = iota
	fetchFetching
	fetchError
)

// refresher is the single writer of the game cache. Triggers land in a
// one-slot queue, so any number of overlapping refresh requests (user
// actions, change-feed pushes) coalesce into at most one pending fetch
// behind the one in flight.
type refresher struct {
	games    GameTable
	state    *State
	onUpdate func() // re-render hook, may be nil

	triggers chan struct{}

	mu     sync.Mutex
	fstate fetchState
}

func newRefresher(games GameTable, state *State, onUpdate func()) *refresher {
	return &refresher{
		games:    games,
		state:    state,
		onUpdate: onUpdate,
		triggers: make(chan struct{}, 1),
	}
}

// Run consumes triggers until the context ends.
func (r *refresher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.triggers:
			r.fetch(ctx)
		}
	}
}

// Trigger requests a refresh without blocking; a trigger arriving while
// one is already queued is dropped, not stacked.
func (r *refresher) Trigger() {
	select {
	case r.triggers <- struct{}{}:
	default:
	}
}

func (r *refresher) fetch(ctx context.Context) error {
	r.setState(fetchFetching)

	games, err := r.games.ListGames(ctx)
	if err != nil {
		log.Errorf("Error [GameTable.ListGames] %s", err)
		r.setState(fetchError)
		return err
	}

	r.state.ReplaceCache(games)
	r.setState(fetchIdle)

	if r.onUpdate != nil {
		r.onUpdate()
	}
	return nil
}

func (r *refresher) setState(s fetchState) {
	r.mu.Lock()
	r.fstate = s
	r.mu.Unlock()
}

func (r *refresher) State() fetchState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fstate
}
