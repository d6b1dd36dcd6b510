package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"

	"github.com/todtix/gamewiki-services/internal/catalogsvc/service"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type sessionResponse struct {
	UserId  int64  `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	IsAdmin bool   `json:"is_admin"`
	Token   string `json:"token,omitempty"`
}

func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	user, err := h.authService.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		log.Errorf("Error [AuthService.Register] %s", err)
		code := http.StatusInternalServerError
		if errors.Is(err, service.ErrEmailTaken) || errors.Is(err, service.ErrEmailRequired) ||
			errors.Is(err, service.ErrPasswordRequired) {
			code = http.StatusBadRequest
		}
		h.CreateResponse(w, Response{Code: code, Error: err.Error()})
		return
	}

	token := h.issueToken(user.UserId, user.Email)
	h.CreateResponse(w, Response{
		Message: "registered",
		Code:    http.StatusCreated,
		Data: sessionResponse{
			UserId:  user.UserId,
			Email:   user.Email,
			Name:    user.Name,
			IsAdmin: h.authService.IsAdmin(user.Email),
			Token:   token,
		},
	})
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: err.Error()})
			return
		}
		log.Errorf("Error [AuthService.Login] %s", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "login failed"})
		return
	}

	token := h.issueToken(user.UserId, user.Email)
	h.CreateResponse(w, Response{
		Message: "logged in",
		Code:    http.StatusOK,
		Data: sessionResponse{
			UserId:  user.UserId,
			Email:   user.Email,
			Name:    user.Name,
			IsAdmin: h.authService.IsAdmin(user.Email),
			Token:   token,
		},
	})
}

func (h *Handler) SessionHandler(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "unauthorized"})
		return
	}

	email, _ := claims["email"].(string)
	userId := claimInt64(claims, "user_id")

	user, err := h.authService.GetUser(r.Context(), userId)
	if err != nil || user == nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "no session"})
		return
	}

	h.CreateResponse(w, Response{
		Code: http.StatusOK,
		Data: sessionResponse{
			UserId:  user.UserId,
			Email:   email,
			Name:    user.Name,
			IsAdmin: h.authService.IsAdmin(email),
		},
	})
}

// LogoutHandler is best-effort: jwtauth has no revocation list, the
// client discards the token.
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, Response{Message: "logged out", Code: http.StatusOK})
}

func (h *Handler) issueToken(userId int64, email string) string {
	expirationTime := time.Now().Add(7 * 24 * time.Hour).Unix()

	_, tokenString, _ := h.tokenAuth.Encode(map[string]interface{}{
		"user_id": userId,
		"email":   email,
		"exp":     expirationTime,
	})

	return tokenString
}

// claimInt64 pulls a numeric claim out of the decoded token; jwx hands
// numbers back as float64.
func claimInt64(claims map[string]interface{}, key string) int64 {
	switch v := claims[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	}
	return 0
}
