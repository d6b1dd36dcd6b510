package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/go-chi/jwtauth"

	"github.com/todtix/gamewiki-services/internal/catalogsvc/broker"
	"github.com/todtix/gamewiki-services/internal/catalogsvc/service"
	"github.com/todtix/gamewiki-services/internal/catalogsvc/storage"
)

type Handler struct {
	tokenAuth *jwtauth.JWTAuth

	authService       *service.AuthService
	gameService       *service.GameService
	suggestionService *service.SuggestionService
	storage           *storage.Store
	broker            *broker.Broker
}

func NewHandler(authService *service.AuthService, gameService *service.GameService,
	suggestionService *service.SuggestionService, st *storage.Store, b *broker.Broker) *Handler {
	return &Handler{
		authService:       authService,
		gameService:       gameService,
		suggestionService: suggestionService,
		storage:           st,
		broker:            b,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error,omitempty"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	json.NewEncoder(w).Encode(rsp)
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "catalog service is running at port " + os.Getenv("CATALOG_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	json.NewEncoder(w).Encode(rsp)
}
