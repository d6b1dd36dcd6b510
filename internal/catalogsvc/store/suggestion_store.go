package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/todtix/gamewiki-services/internal/catalogsvc/models"
)

type SuggestionStore struct {
	db *pgxpool.Pool
}

func NewSuggestionStore(db *pgxpool.Pool) *SuggestionStore {
	return &SuggestionStore{db: db}
}

func (s *SuggestionStore) InsertSuggestion(ctx context.Context, sg models.Suggestion) (int64, error) {
	var id int64

	query := `
		INSERT INTO suggestions (title, platform, reason)
		VALUES ($1, $2, $3)
		RETURNING id;
	`

	err := s.db.QueryRow(ctx, query, sg.Title, sg.Platform, sg.Reason).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("could not insert suggestion: %w", err)
	}

	return id, nil
}
