package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ErrTitleRequired is returned before any collaborator call when a game
// or suggestion is submitted without a title.
var ErrTitleRequired = errors.New("title is required")

// AddGame optionally uploads a cover, then inserts the record with an
// empty guide. If the insert fails after the upload succeeded, the
// uploaded object is removed so nothing is orphaned.
func (a *App) AddGame(ctx context.Context, title, genre, platform string, cover *Upload) (*Game, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	var coverPath, coverURL string
	if cover != nil {
		coverPath = coverKey(cover.Filename)
		url, err := a.storage.Upload(ctx, coverPath, cover.Reader, cover.ContentType)
		if err != nil {
			return nil, fmt.Errorf("cover upload failed: %w", err)
		}
		coverURL = url
	}

	created, err := a.games.InsertGame(ctx, Game{
		Title:    title,
		Genre:    genre,
		Platform: platform,
		Cover:    coverURL,
	})
	if err != nil {
		a.rollbackUpload(ctx, coverPath)
		return nil, err
	}

	a.Refresh()
	return created, nil
}

// EditGame optionally uploads a replacement cover, then updates the
// catalog fields. The fresh record is re-fetched for the detail view.
func (a *App) EditGame(ctx context.Context, id int64, title, genre, platform string, cover *Upload) (*Game, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	current, err := a.games.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("game %d not found", id)
	}

	coverURL := current.Cover
	var coverPath string
	if cover != nil {
		coverPath = coverKeyForGame(id, cover.Filename)
		url, err := a.storage.Upload(ctx, coverPath, cover.Reader, cover.ContentType)
		if err != nil {
			return nil, fmt.Errorf("cover upload failed: %w", err)
		}
		coverURL = url
	}

	err = a.games.UpdateGame(ctx, id, Game{
		Title:    title,
		Genre:    genre,
		Platform: platform,
		Cover:    coverURL,
	})
	if err != nil {
		a.rollbackUpload(ctx, coverPath)
		return nil, err
	}

	a.Refresh()
	return a.games.GetGame(ctx, id)
}

// DeleteGame removes the record; the caller has already confirmed.
func (a *App) DeleteGame(ctx context.Context, id int64) error {
	if err := a.games.DeleteGame(ctx, id); err != nil {
		return err
	}

	a.Refresh()
	return nil
}

func (a *App) SubmitSuggestion(ctx context.Context, s Suggestion) error {
	s.Title = strings.TrimSpace(s.Title)
	if s.Title == "" {
		return ErrTitleRequired
	}

	return a.suggestions.SubmitSuggestion(ctx, s)
}

// rollbackUpload closes the orphaned-file gap: when the write step of an
// upload-then-write command fails, the uploaded object is deleted. A
// failing rollback is only logged; the command error already surfaced.
func (a *App) rollbackUpload(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := a.storage.Remove(ctx, path); err != nil {
		log.Errorf("failed to roll back upload %s: %s", path, err)
	}
}
