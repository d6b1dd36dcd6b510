package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/todtix/gamewiki-services/internal/catalogsvc/models"
	"github.com/todtix/gamewiki-services/internal/catalogsvc/service"
)

type suggestionRequest struct {
	Title    string `json:"title"`
	Platform string `json:"platform"`
	Reason   string `json:"reason"`
}

func (h *Handler) SubmitSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	var req suggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	_, err := h.suggestionService.SubmitSuggestion(r.Context(), models.Suggestion{
		Title:    req.Title,
		Platform: req.Platform,
		Reason:   req.Reason,
	})
	if err != nil {
		if errors.Is(err, service.ErrSuggestionTitleRequired) {
			h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: err.Error()})
			return
		}
		log.Errorf("Error [SuggestionService.SubmitSuggestion] %s", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "failed to submit suggestion"})
		return
	}

	h.CreateResponse(w, Response{Message: "suggestion received", Code: http.StatusCreated})
}
