package service

import (
	"context"
	"errors"
	"strings"

	"github.com/todtix/gamewiki-services/internal/catalogsvc/models"
)

var ErrSuggestionTitleRequired = errors.New("suggestion title is required")

type SuggestionStore interface {
	InsertSuggestion(ctx context.Context, sg models.Suggestion) (int64, error)
}

type SuggestionService struct {
	suggestionStore SuggestionStore
}

func NewSuggestionService(suggestionStore SuggestionStore) *SuggestionService {
	return &SuggestionService{suggestionStore: suggestionStore}
}

func (s *SuggestionService) SubmitSuggestion(ctx context.Context, sg models.Suggestion) (int64, error) {
	sg.Title = strings.TrimSpace(sg.Title)
	if sg.Title == "" {
		return 0, ErrSuggestionTitleRequired
	}

	return s.suggestionStore.InsertSuggestion(ctx, sg)
}
