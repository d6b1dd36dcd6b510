package service

import (
	"context"
	"errors"
	"strings"

	"github.com/todtix/gamewiki-services/internal/catalogsvc/models"
)

// ErrTitleRequired is returned before any store call when a game is
// submitted without a title.
var ErrTitleRequired = errors.New("game title is required")

// GameStore is what the service needs from the persistence layer.
type GameStore interface {
	ListGames(ctx context.Context) ([]models.Game, error)
	GetGameByID(ctx context.Context, gameID int64) (*models.Game, error)
	InsertGame(ctx context.Context, g models.Game) (*models.Game, error)
	UpdateGame(ctx context.Context, gameID int64, g models.Game) error
	UpdateGuide(ctx context.Context, gameID int64, guide string) error
	DeleteGame(ctx context.Context, gameID int64) error
}

type GameService struct {
	gameStore GameStore
}

func NewGameService(gameStore GameStore) *GameService {
	return &GameService{gameStore: gameStore}
}

func (s *GameService) ListGames(ctx context.Context) ([]models.Game, error) {
	return s.gameStore.ListGames(ctx)
}

func (s *GameService) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	return s.gameStore.GetGameByID(ctx, gameID)
}

func (s *GameService) CreateGame(ctx context.Context, g models.Game) (*models.Game, error) {
	g.Title = strings.TrimSpace(g.Title)
	if g.Title == "" {
		return nil, ErrTitleRequired
	}

	// new entries always start with an empty guide
	g.Guide = ""

	return s.gameStore.InsertGame(ctx, g)
}

func (s *GameService) UpdateGame(ctx context.Context, gameID int64, g models.Game) error {
	g.Title = strings.TrimSpace(g.Title)
	if g.Title == "" {
		return ErrTitleRequired
	}

	return s.gameStore.UpdateGame(ctx, gameID, g)
}

// SaveGuide overwrites the guide HTML unconditionally. Concurrent admin
// edits resolve last-write-wins.
func (s *GameService) SaveGuide(ctx context.Context, gameID int64, guide string) error {
	return s.gameStore.UpdateGuide(ctx, gameID, guide)
}

func (s *GameService) DeleteGame(ctx context.Context, gameID int64) error {
	return s.gameStore.DeleteGame(ctx, gameID)
}
