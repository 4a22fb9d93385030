package api

import (
	"context"
	"fmt"
	"net/http"
)

// Game is a catalog entry.
type Game struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	MinPlayer   int     `json:"minPlayer"`
	MaxPlayer   int     `json:"maxPlayer"`
	Duration    int     `json:"duration"`
	MultipleOf  int     `json:"multipleOf"`
	GifURL      string  `json:"gifURL"`
}

// GameInput is the payload for creating a catalog entry.
type GameInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	MinPlayer   int     `json:"minPlayer"`
	MaxPlayer   int     `json:"maxPlayer"`
	Duration    int     `json:"duration"`
	MultipleOf  int     `json:"multipleOf"`
	GifURL      string  `json:"gifURL"`
}

// ListGames fetches the catalog.
func (c *Client) ListGames(ctx context.Context) ([]Game, error) {
	var games []Game
	if err := c.do(ctx, http.MethodGet, "/games", nil, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// CreateGame adds a catalog entry. Admin only.
func (c *Client) CreateGame(ctx context.Context, input GameInput) (*Game, error) {
	var game Game
	if err := c.do(ctx, http.MethodPost, "/admin/games", input, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// DeleteGame removes a catalog entry. Admin only.
func (c *Client) DeleteGame(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/games/%d", id), nil, nil)
}
