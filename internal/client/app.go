package client

import (
	"context"
	"sync"
)

// App ties the collaborators to the state object. One App per viewer.
type App struct {
	identity    Identity
	games       GameTable
	suggestions SuggestionTable
	storage     ObjectStorage
	feed        ChangeFeed
	adminEmail  string

	state     *State
	refresher *refresher

	mu  sync.Mutex
	sub Subscription
}

func New(identity Identity, games GameTable, suggestions SuggestionTable,
	storage ObjectStorage, feed ChangeFeed, adminEmail string, onUpdate func()) *App {
	state := NewState()
	return &App{
		identity:    identity,
		games:       games,
		suggestions: suggestions,
		storage:     storage,
		feed:        feed,
		adminEmail:  adminEmail,
		state:       state,
		refresher:   newRefresher(games, state, onUpdate),
	}
}

func (a *App) State() *State {
	return a.state
}

// Start loads the session, starts the refresher loop, kicks the first
// fetch and opens the change-feed subscription.
func (a *App) Start(ctx context.Context) error {
	a.LoadSession(ctx)

	go a.refresher.Run(ctx)
	a.Refresh()

	return a.SubscribeToChanges(ctx)
}

// Refresh queues a full re-fetch of the game list; overlapping calls
// coalesce in the refresher.
func (a *App) Refresh() {
	a.refresher.Trigger()
}

// RefreshNow fetches synchronously, for callers that need the cache
// settled before continuing.
func (a *App) RefreshNow(ctx context.Context) error {
	return a.refresher.fetch(ctx)
}

// SubscribeToChanges keeps exactly one live subscription on the games
// table; a re-subscribe tears down the previous one first. Any event
// funnels into the same coalescing refresh path.
func (a *App) SubscribeToChanges(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sub != nil {
		a.sub.Unsubscribe()
		a.sub = nil
	}

	sub, err := a.feed.Subscribe(ctx, "games", func(ChangeEvent) {
		a.Refresh()
	})
	if err != nil {
		return err
	}

	a.sub = sub
	return nil
}
