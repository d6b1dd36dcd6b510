// Package client is the catalog front end rebuilt around an explicit
// application state object. Every backend surface it touches (identity,
// tables, object storage, change feed, rich-text editor) sits behind an
// interface so the whole flow runs against fakes in tests.
package client

import (
	"context"
	"io"
)

type User struct {
	ID    int64  `json:"user_id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type Game struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Genre    string `json:"genre,omitempty"`
	Platform string `json:"platform,omitempty"`
	Cover    string `json:"cover,omitempty"`
	Guide    string `json:"guide,omitempty"`
}

type Suggestion struct {
	Title    string `json:"title"`
	Platform string `json:"platform,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

type ChangeEvent struct {
	Action string `json:"action"`
	Table  string `json:"table"`
	ID     int64  `json:"id"`
}

// Identity is the auth collaborator. Session returns nil without error
// when nobody is signed in.
type Identity interface {
	Session(ctx context.Context) (*User, error)
	SignIn(ctx context.Context, email, password string) (*User, error)
	SignUp(ctx context.Context, email, password, name string) (*User, error)
	SignOut(ctx context.Context) error
}

// GameTable is the games table collaborator. ListGames returns rows in
// title order; GetGame returns nil for a missing id.
type GameTable interface {
	ListGames(ctx context.Context) ([]Game, error)
	GetGame(ctx context.Context, id int64) (*Game, error)
	InsertGame(ctx context.Context, g Game) (*Game, error)
	UpdateGame(ctx context.Context, id int64, g Game) error
	SaveGuide(ctx context.Context, id int64, guide string) error
	DeleteGame(ctx context.Context, id int64) error
}

// SuggestionTable is write-only from this side.
type SuggestionTable interface {
	SubmitSuggestion(ctx context.Context, s Suggestion) error
}

// ObjectStorage uploads under a caller-derived key and returns the
// public URL. Remove exists so multi-step commands can roll back an
// upload whose follow-up write failed.
type ObjectStorage interface {
	Upload(ctx context.Context, path string, r io.Reader, contentType string) (string, error)
	Remove(ctx context.Context, path string) error
}

// Subscription is one live change-feed registration.
type Subscription interface {
	Unsubscribe() error
}

// ChangeFeed delivers row-level change events for a table.
type ChangeFeed interface {
	Subscribe(ctx context.Context, table string, onChange func(ChangeEvent)) (Subscription, error)
}

// Editor is the rich-text widget capability: serialized-HTML get/set,
// cursor query and image embedding. Concrete widgets and test stubs both
// satisfy it.
type Editor interface {
	Content() string
	SetContent(html string)
	Selection() (index int, ok bool)
	Length() int
	InsertImage(index int, url string)
}

// Upload carries one picked file into a command.
type Upload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}
