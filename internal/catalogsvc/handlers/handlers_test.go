package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"

	"github.com/todtix/gamewiki-services/internal/catalogsvc/models"
	"github.com/todtix/gamewiki-services/internal/catalogsvc/service"
)

// in-memory stores backing the services under test

type memGameStore struct {
	games  map[int64]models.Game
	nextID int64
}

func (m *memGameStore) ListGames(ctx context.Context) ([]models.Game, error) {
	out := []models.Game{}
	for _, g := range m.games {
		out = append(out, g)
	}
	return out, nil
}

func (m *memGameStore) GetGameByID(ctx context.Context, id int64) (*models.Game, error) {
	g, ok := m.games[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (m *memGameStore) InsertGame(ctx context.Context, g models.Game) (*models.Game, error) {
	m.nextID++
	g.ID = m.nextID
	m.games[g.ID] = g
	return &g, nil
}

func (m *memGameStore) UpdateGame(ctx context.Context, id int64, g models.Game) error {
	cur, ok := m.games[id]
	if !ok {
		return errors.New("not found")
	}
	cur.Title, cur.Genre, cur.Platform, cur.Cover = g.Title, g.Genre, g.Platform, g.Cover
	m.games[id] = cur
	return nil
}

func (m *memGameStore) UpdateGuide(ctx context.Context, id int64, guide string) error {
	cur, ok := m.games[id]
	if !ok {
		return errors.New("not found")
	}
	cur.Guide = guide
	m.games[id] = cur
	return nil
}

func (m *memGameStore) DeleteGame(ctx context.Context, id int64) error {
	delete(m.games, id)
	return nil
}

type memSuggestionStore struct {
	rows []models.Suggestion
}

func (m *memSuggestionStore) InsertSuggestion(ctx context.Context, sg models.Suggestion) (int64, error) {
	m.rows = append(m.rows, sg)
	return int64(len(m.rows)), nil
}

type memUserStore struct {
	users  map[string]models.User
	nextID int64
}

func (m *memUserStore) CreateUser(ctx context.Context, user models.User) (int64, error) {
	m.nextID++
	user.UserId = m.nextID
	m.users[user.Email] = user
	return user.UserId, nil
}

func (m *memUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range m.users {
		if u.UserId == id {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUserStore) CreateProfile(ctx context.Context, p models.Profile) error {
	return nil
}

type testEnv struct {
	handler *Handler
	server  *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	h := NewHandler(
		service.NewAuthService(&memUserStore{users: map[string]models.User{}}, "admin@wiki.test"),
		service.NewGameService(&memGameStore{games: map[int64]models.Game{}}),
		service.NewSuggestionService(&memSuggestionStore{}),
		nil, // no bucket in handler tests
		nil, // no NATS in handler tests
	)
	h.InitAuth()

	r := chi.NewRouter()
	h.SetRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{handler: h, server: srv}
}

type envelope struct {
	Message string          `json:"message"`
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	json.NewDecoder(resp.Body).Decode(&env) // ignore decode errors on empty bodies
	return resp, env
}

func TestListGamesIsPublic(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodGet, "/v1/games", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var games []models.Game
	if err := json.Unmarshal(body.Data, &games); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("expected empty list, got %d", len(games))
	}
}

func TestMutationsRequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	game := map[string]string{"title": "Okami"}

	// no token at all
	resp, _ := env.do(t, http.MethodPost, "/v1/games", "", game)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("anonymous create: status = %d, want 401", resp.StatusCode)
	}

	// signed in, not the admin
	memberToken := env.handler.issueToken(2, "member@wiki.test")
	resp, body := env.do(t, http.MethodPost, "/v1/games", memberToken, game)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("member create: status = %d, want 403", resp.StatusCode)
	}
	if body.Error == "" {
		t.Error("forbidden response should carry an error message")
	}

	// the admin
	adminToken := env.handler.issueToken(1, "admin@wiki.test")
	resp, _ = env.do(t, http.MethodPost, "/v1/games", adminToken, game)
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("admin create: status = %d, want 201", resp.StatusCode)
	}
}

func TestCreateGameRejectsEmptyTitle(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.handler.issueToken(1, "admin@wiki.test")

	resp, _ := env.do(t, http.MethodPost, "/v1/games", adminToken, map[string]string{"title": "  "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGuideSaveRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.handler.issueToken(1, "admin@wiki.test")

	_, body := env.do(t, http.MethodPost, "/v1/games", adminToken, map[string]string{"title": "Okami"})
	var created models.Game
	if err := json.Unmarshal(body.Data, &created); err != nil {
		t.Fatalf("decode created game: %v", err)
	}

	resp, _ := env.do(t, http.MethodPatch, "/v1/games/1/guide", adminToken,
		map[string]string{"guide": "<p>new</p>"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save guide: status = %d, want 200", resp.StatusCode)
	}

	_, body = env.do(t, http.MethodGet, "/v1/games/1", "", nil)
	var got models.Game
	if err := json.Unmarshal(body.Data, &got); err != nil {
		t.Fatalf("decode game: %v", err)
	}
	if got.Guide != "<p>new</p>" {
		t.Errorf("guide = %q, want %q", got.Guide, "<p>new</p>")
	}
}

func TestDeleteGameThenNotFound(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.handler.issueToken(1, "admin@wiki.test")

	env.do(t, http.MethodPost, "/v1/games", adminToken, map[string]string{"title": "Okami"})

	resp, _ := env.do(t, http.MethodDelete, "/v1/games/1", adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: status = %d, want 200", resp.StatusCode)
	}

	resp, _ = env.do(t, http.MethodGet, "/v1/games/1", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete: status = %d, want 404", resp.StatusCode)
	}
}

func TestSuggestionSubmission(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodPost, "/v1/suggestions", "",
		map[string]string{"title": "", "platform": "PC"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty title: status = %d, want 400", resp.StatusCode)
	}

	resp, _ = env.do(t, http.MethodPost, "/v1/suggestions", "",
		map[string]string{"title": "Okami", "platform": "PS2", "reason": "classic"})
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("valid suggestion: status = %d, want 201", resp.StatusCode)
	}
}

func TestRegisterLoginSessionFlow(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email":    "player@wiki.test",
		"password": "hunter22",
		"name":     "Player",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: status = %d, want 201", resp.StatusCode)
	}

	var reg struct {
		Token   string `json:"token"`
		IsAdmin bool   `json:"is_admin"`
	}
	if err := json.Unmarshal(body.Data, &reg); err != nil {
		t.Fatalf("decode register data: %v", err)
	}
	if reg.Token == "" {
		t.Fatal("register did not issue a token")
	}
	if reg.IsAdmin {
		t.Error("a regular registration must not be admin")
	}

	resp, body = env.do(t, http.MethodGet, "/v1/auth/session", reg.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("session: status = %d, want 200", resp.StatusCode)
	}

	var sess struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body.Data, &sess); err != nil {
		t.Fatalf("decode session data: %v", err)
	}
	if sess.Email != "player@wiki.test" {
		t.Errorf("session email = %q", sess.Email)
	}

	resp, _ = env.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email":    "player@wiki.test",
		"password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad login: status = %d, want 401", resp.StatusCode)
	}
}
