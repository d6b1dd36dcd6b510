package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/todtix/gamewiki-services/internal/catalogsvc/models"
)

type GameStore struct {
	db *pgxpool.Pool
}

func NewGameStore(db *pgxpool.Pool) *GameStore {
	return &GameStore{db: db}
}

// ListGames returns every game ordered by title. The client replaces its
// cache wholesale with this result.
func (s *GameStore) ListGames(ctx context.Context) ([]models.Game, error) {
	query := `
		SELECT id, title, genre, platform, cover, guide, created_at, updated_at
		FROM games
		ORDER BY title
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	games := []models.Game{}
	for rows.Next() {
		var g models.Game
		err := rows.Scan(
			&g.ID,
			&g.Title,
			&g.Genre,
			&g.Platform,
			&g.Cover,
			&g.Guide,
			&g.CreatedAt,
			&g.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading game rows: %w", err)
	}

	return games, nil
}

func (s *GameStore) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	query := `
		SELECT id, title, genre, platform, cover, guide, created_at, updated_at
		FROM games
		WHERE id = $1
	`

	game := &models.Game{}
	err := s.db.QueryRow(ctx, query, gameID).Scan(
		&game.ID,
		&game.Title,
		&game.Genre,
		&game.Platform,
		&game.Cover,
		&game.Guide,
		&game.CreatedAt,
		&game.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Game not found
		}
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}

	return game, nil
}

func (s *GameStore) InsertGame(ctx context.Context, g models.Game) (*models.Game, error) {
	query := `
		INSERT INTO games (title, genre, platform, cover, guide)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, genre, platform, cover, guide, created_at, updated_at
	`

	created := &models.Game{}
	err := s.db.QueryRow(ctx, query, g.Title, g.Genre, g.Platform, g.Cover, g.Guide).Scan(
		&created.ID,
		&created.Title,
		&created.Genre,
		&created.Platform,
		&created.Cover,
		&created.Guide,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert game: %w", err)
	}

	return created, nil
}

// UpdateGame rewrites the catalog fields. The guide is deliberately left
// alone; it has its own update path.
func (s *GameStore) UpdateGame(ctx context.Context, gameID int64, g models.Game) error {
	query := `
		UPDATE games
		SET title = $1, genre = $2, platform = $3, cover = $4, updated_at = now()
		WHERE id = $5
	`

	tag, err := s.db.Exec(ctx, query, g.Title, g.Genre, g.Platform, g.Cover, gameID)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("game %d not found", gameID)
	}

	return nil
}

func (s *GameStore) UpdateGuide(ctx context.Context, gameID int64, guide string) error {
	query := `
		UPDATE games
		SET guide = $1, updated_at = now()
		WHERE id = $2
	`

	tag, err := s.db.Exec(ctx, query, guide, gameID)
	if err != nil {
		return fmt.Errorf("failed to update guide: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("game %d not found", gameID)
	}

	return nil
}

func (s *GameStore) DeleteGame(ctx context.Context, gameID int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM games WHERE id = $1`, gameID)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("game %d not found", gameID)
	}

	return nil
}
