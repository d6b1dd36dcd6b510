package handlers

import (
	"net/http"
	"os"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {

		// public routes
		r.Get("/health", h.HealthHandler)
		r.Get("/games", h.ListGamesHandler)
		r.Get("/games/{gameID}", h.GetGameHandler)
		r.Post("/suggestions", h.SubmitSuggestionHandler)
		r.Post("/auth/register", h.RegisterHandler)
		r.Post("/auth/login", h.LoginHandler)

		// secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/auth/session", h.SessionHandler)
			r.Post("/auth/logout", h.LogoutHandler)

			// admin only mutations
			r.Group(func(r chi.Router) {
				r.Use(h.AdminOnly)

				r.Post("/games", h.CreateGameHandler)
				r.Put("/games/{gameID}", h.UpdateGameHandler)
				r.Patch("/games/{gameID}/guide", h.SaveGuideHandler)
				r.Delete("/games/{gameID}", h.DeleteGameHandler)

				r.Post("/uploads", h.UploadHandler)
				r.Delete("/uploads", h.DeleteUploadHandler)
			})
		})
	})

	// public object serving, stands in for the bucket's public URL surface
	r.Get("/files/*", h.ServeFileHandler)
}

func (h *Handler) InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)
}

// AdminOnly allows only the configured administrator through. Everyone
// else gets the same forbidden response regardless of what they asked.
func (h *Handler) AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "unauthorized"})
			return
		}

		email, _ := claims["email"].(string)
		if !h.authService.IsAdmin(email) {
			h.CreateResponse(w, Response{Code: http.StatusForbidden, Error: "admin privileges required"})
			return
		}

		next.ServeHTTP(w, r)
	})
}
