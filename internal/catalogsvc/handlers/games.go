package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"

	"github.com/todtix/gamewiki-services/internal/catalogsvc/models"
	"github.com/todtix/gamewiki-services/internal/catalogsvc/service"
	"github.com/todtix/gamewiki-services/internal/comm"
)

type gameRequest struct {
	Title    string `json:"title"`
	Genre    string `json:"genre"`
	Platform string `json:"platform"`
	Cover    string `json:"cover"`
}

type guideRequest struct {
	Guide string `json:"guide"`
}

func (h *Handler) ListGamesHandler(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameService.ListGames(r.Context())
	if err != nil {
		log.Errorf("Error [GameService.ListGames] %s", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "failed to list games"})
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: games})
}

func (h *Handler) GetGameHandler(w http.ResponseWriter, r *http.Request) {
	gameID, ok := h.gameIDParam(w, r)
	if !ok {
		return
	}

	game, err := h.gameService.GetGameByID(r.Context(), gameID)
	if err != nil {
		log.Errorf("Error [GameService.GetGameByID] %s", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "failed to get game"})
		return
	}
	if game == nil {
		h.CreateResponse(w, Response{Code: http.StatusNotFound, Error: "game not found"})
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: game})
}

func (h *Handler) CreateGameHandler(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	game, err := h.gameService.CreateGame(r.Context(), models.Game{
		Title:    req.Title,
		Genre:    req.Genre,
		Platform: req.Platform,
		Cover:    req.Cover,
	})
	if err != nil {
		if errors.Is(err, service.ErrTitleRequired) {
			h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: err.Error()})
			return
		}
		log.Errorf("Error [GameService.CreateGame] %s", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "failed to create game"})
		return
	}

	h.broker.PublishGameChange(comm.ActionInsert, game.ID)
	h.CreateResponse(w, Response{Message: "game created", Code: http.StatusCreated, Data: game})
}

func (h *Handler) UpdateGameHandler(w http.ResponseWriter, r *http.Request) {
	gameID, ok := h.gameIDParam(w, r)
	if !ok {
		return
	}

	var req gameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	err := h.gameService.UpdateGame(r.Context(), gameID, models.Game{
		Title:    req.Title,
		Genre:    req.Genre,
		Platform: req.Platform,
		Cover:    req.Cover,
	})
	if err != nil {
		if errors.Is(err, service.ErrTitleRequired) {
			h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: err.Error()})
			return
		}
		log.Errorf("Error [GameService.UpdateGame] %s", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "failed to update game"})
		return
	}

	h.broker.PublishGameChange(comm.ActionUpdate, gameID)
	h.CreateResponse(w, Response{Message: "game updated", Code: http.StatusOK})
}

func (h *Handler) SaveGuideHandler(w http.ResponseWriter, r *http.Request) {
	gameID, ok := h.gameIDParam(w, r)
	if !ok {
		return
	}

	var req guideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	if err := h.gameService.SaveGuide(r.Context(), gameID, req.Guide); err != nil {
		log.Errorf("Error [GameService.SaveGuide] %s", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "failed to save guide"})
		return
	}

	h.broker.PublishGameChange(comm.ActionUpdate, gameID)
	h.CreateResponse(w, Response{Message: "guide saved", Code: http.StatusOK})
}

func (h *Handler) DeleteGameHandler(w http.ResponseWriter, r *http.Request) {
	gameID, ok := h.gameIDParam(w, r)
	if !ok {
		return
	}

	if err := h.gameService.DeleteGame(r.Context(), gameID); err != nil {
		log.Errorf("Error [GameService.DeleteGame] %s", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "failed to delete game"})
		return
	}

	h.broker.PublishGameChange(comm.ActionDelete, gameID)
	h.CreateResponse(w, Response{Message: "game deleted", Code: http.StatusOK})
}

func (h *Handler) gameIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	gameID, err := strconv.ParseInt(chi.URLParam(r, "gameID"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid game id"})
		return 0, false
	}
	return gameID, true
}
