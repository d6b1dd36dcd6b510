package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/todtix/gamewiki-services/internal/client"
)

func (c *Client) ListGames(ctx context.Context) ([]client.Game, error) {
	var games []client.Game
	if err := c.doJSON(ctx, http.MethodGet, "/v1/games", nil, &games); err != nil {
		return nil, err
	}
	return games, nil
}

func (c *Client) GetGame(ctx context.Context, id int64) (*client.Game, error) {
	var g client.Game
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/v1/games/%d", id), nil, &g)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (c *Client) InsertGame(ctx context.Context, g client.Game) (*client.Game, error) {
	var created client.Game
	if err := c.doJSON(ctx, http.MethodPost, "/v1/games", g, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateGame(ctx context.Context, id int64, g client.Game) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/v1/games/%d", id), g, nil)
}

func (c *Client) SaveGuide(ctx context.Context, id int64, guide string) error {
	return c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/v1/games/%d/guide", id),
		map[string]string{"guide": guide}, nil)
}

func (c *Client) DeleteGame(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/v1/games/%d", id), nil, nil)
}

func (c *Client) SubmitSuggestion(ctx context.Context, s client.Suggestion) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/suggestions", s, nil)
}
