package client

import (
	"context"
	"fmt"
)

// OpenGame fetches one record for the detail view.
func (a *App) OpenGame(ctx context.Context, id int64) (*Game, error) {
	return a.games.GetGame(ctx, id)
}

// SaveGuide writes the editor's serialized HTML to the record, then
// round-trips through the backend for the re-render instead of trusting
// local state.
func (a *App) SaveGuide(ctx context.Context, id int64, ed Editor) (*Game, error) {
	if err := a.games.SaveGuide(ctx, id, ed.Content()); err != nil {
		return nil, err
	}

	a.Refresh()
	return a.games.GetGame(ctx, id)
}

// InsertGuideImage is the toolbar image hook: upload the picked file
// under a key derived from the game id and current time, then embed its
// public URL at the cursor, or at the end when there is no selection.
// An upload failure aborts before the editor is touched.
func (a *App) InsertGuideImage(ctx context.Context, id int64, ed Editor, file Upload) error {
	path := guideImageKey(id, file.Filename)

	url, err := a.storage.Upload(ctx, path, file.Reader, file.ContentType)
	if err != nil {
		return fmt.Errorf("image upload failed: %w", err)
	}

	index, ok := ed.Selection()
	if !ok {
		index = ed.Length()
	}
	ed.InsertImage(index, url)

	return nil
}
