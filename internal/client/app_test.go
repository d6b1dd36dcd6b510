package client

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"
)

// ---- collaborator fakes ----

type fakeIdentity struct {
	user       *User
	sessionErr error
	signInErr  error
	signOutErr error
}

func (f *fakeIdentity) Session(ctx context.Context) (*User, error) {
	return f.user, f.sessionErr
}

func (f *fakeIdentity) SignIn(ctx context.Context, email, password string) (*User, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	f.user = &User{ID: 1, Email: email}
	return f.user, nil
}

func (f *fakeIdentity) SignUp(ctx context.Context, email, password, name string) (*User, error) {
	f.user = &User{ID: 1, Email: email, Name: name}
	return f.user, nil
}

func (f *fakeIdentity) SignOut(ctx context.Context) error {
	f.user = nil
	return f.signOutErr
}

type fakeGames struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]Game

	insertErr error
	updateErr error

	listCalls   int
	insertCalls int

	// optional gates making in-flight fetches observable
	listStarted chan struct{}
	listRelease chan struct{}
}

func newFakeGames(seed ...Game) *fakeGames {
	f := &fakeGames{rows: map[int64]Game{}}
	for _, g := range seed {
		f.nextID++
		g.ID = f.nextID
		f.rows[g.ID] = g
	}
	return f
}

func (f *fakeGames) ListGames(ctx context.Context) ([]Game, error) {
	f.mu.Lock()
	f.listCalls++
	started, release := f.listStarted, f.listRelease
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	out := []Game{}
	for _, g := range f.rows {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (f *fakeGames) GetGame(ctx context.Context, id int64) (*Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (f *fakeGames) InsertGame(ctx context.Context, g Game) (*Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertCalls++
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.nextID++
	g.ID = f.nextID
	f.rows[g.ID] = g
	return &g, nil
}

func (f *fakeGames) UpdateGame(ctx context.Context, id int64, g Game) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	cur, ok := f.rows[id]
	if !ok {
		return errors.New("not found")
	}
	cur.Title, cur.Genre, cur.Platform, cur.Cover = g.Title, g.Genre, g.Platform, g.Cover
	f.rows[id] = cur
	return nil
}

func (f *fakeGames) SaveGuide(ctx context.Context, id int64, guide string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.rows[id]
	if !ok {
		return errors.New("not found")
	}
	cur.Guide = guide
	f.rows[id] = cur
	return nil
}

func (f *fakeGames) DeleteGame(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

type fakeSuggestions struct {
	submitted []Suggestion
}

func (f *fakeSuggestions) SubmitSuggestion(ctx context.Context, s Suggestion) error {
	f.submitted = append(f.submitted, s)
	return nil
}

type fakeStorage struct {
	uploads   []string
	removed   []string
	uploadErr error
}

func (f *fakeStorage) Upload(ctx context.Context, path string, r io.Reader, contentType string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads = append(f.uploads, path)
	return "https://cdn.test/" + path, nil
}

func (f *fakeStorage) Remove(ctx context.Context, path string) error {
	f.removed = append(f.removed, path)
	return nil
}

type fakeSub struct {
	closed bool
}

func (s *fakeSub) Unsubscribe() error {
	s.closed = true
	return nil
}

type fakeFeed struct {
	subs     []*fakeSub
	onChange func(ChangeEvent)
}

func (f *fakeFeed) Subscribe(ctx context.Context, table string, onChange func(ChangeEvent)) (Subscription, error) {
	sub := &fakeSub{}
	f.subs = append(f.subs, sub)
	f.onChange = onChange
	return sub, nil
}

type fakeEditor struct {
	content   string
	selection *int
	inserts   []string // "url@index" records
}

func (e *fakeEditor) Content() string        { return e.content }
func (e *fakeEditor) SetContent(html string) { e.content = html }
func (e *fakeEditor) Length() int            { return len(e.content) }

func (e *fakeEditor) Selection() (int, bool) {
	if e.selection == nil {
		return 0, false
	}
	return *e.selection, true
}

func (e *fakeEditor) InsertImage(index int, url string) {
	e.inserts = append(e.inserts, url)
	e.content = e.content[:index] + `<img src="` + url + `">` + e.content[index:]
}

type testEnv struct {
	app         *App
	identity    *fakeIdentity
	games       *fakeGames
	suggestions *fakeSuggestions
	storage     *fakeStorage
	feed        *fakeFeed
}

func newTestEnv(seed ...Game) *testEnv {
	env := &testEnv{
		identity:    &fakeIdentity{},
		games:       newFakeGames(seed...),
		suggestions: &fakeSuggestions{},
		storage:     &fakeStorage{},
		feed:        &fakeFeed{},
	}
	env.app = New(env.identity, env.games, env.suggestions, env.storage, env.feed,
		"admin@wiki.test", nil)
	return env
}

// ---- session ----

func TestLoadSessionDerivesPrivilege(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv()
	env.identity.user = &User{ID: 1, Email: "admin@wiki.test"}
	env.app.LoadSession(ctx)
	if _, admin := env.app.State().User(); !admin {
		t.Error("expected admin privilege for the configured email")
	}

	env.identity.user = &User{ID: 2, Email: "visitor@wiki.test"}
	env.app.LoadSession(ctx)
	if _, admin := env.app.State().User(); admin {
		t.Error("expected no privilege for another email")
	}
}

func TestLoadSessionSwallowsFailure(t *testing.T) {
	env := newTestEnv()
	env.identity.user = &User{ID: 1, Email: "admin@wiki.test"}
	env.app.LoadSession(context.Background())

	env.identity.sessionErr = errors.New("identity unreachable")
	env.app.LoadSession(context.Background())

	if u, admin := env.app.State().User(); u != nil || admin {
		t.Error("a failed session load must leave the viewer signed out")
	}
}

func TestSignOutClearsUserEvenOnError(t *testing.T) {
	env := newTestEnv()
	env.identity.user = &User{ID: 1, Email: "admin@wiki.test"}
	env.app.LoadSession(context.Background())
	env.identity.signOutErr = errors.New("network down")

	err := env.app.SignOut(context.Background())
	if err == nil {
		t.Error("expected the sign-out error to surface")
	}
	if u, _ := env.app.State().User(); u != nil {
		t.Error("viewer must be signed out locally regardless")
	}
}

// ---- cache synchronization ----

func TestRefreshNowReplacesCacheWholesale(t *testing.T) {
	env := newTestEnv(Game{Title: "Beta"}, Game{Title: "Alpha"})

	if err := env.app.RefreshNow(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	cache := env.app.State().Cache()
	if len(cache) != 2 || cache[0].Title != "Alpha" || cache[1].Title != "Beta" {
		t.Fatalf("cache not in title order: %+v", cache)
	}
}

func TestOverlappingRefreshTriggersCoalesce(t *testing.T) {
	env := newTestEnv(Game{Title: "Alpha"})
	env.games.listStarted = make(chan struct{})
	env.games.listRelease = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go env.app.refresher.Run(ctx)

	env.app.Refresh()
	<-env.games.listStarted // first fetch in flight

	// these must collapse into a single pending fetch
	env.app.Refresh()
	env.app.Refresh()
	env.app.Refresh()

	env.games.listRelease <- struct{}{}
	<-env.games.listStarted // the one coalesced fetch
	env.games.listRelease <- struct{}{}

	select {
	case <-env.games.listStarted:
		t.Fatal("a third fetch ran; triggers did not coalesce")
	case <-time.After(50 * time.Millisecond):
	}

	env.games.mu.Lock()
	calls := env.games.listCalls
	env.games.mu.Unlock()
	if calls != 2 {
		t.Fatalf("expected 2 fetches, got %d", calls)
	}
}

func TestSubscribeToChangesReplacesPrevious(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if err := env.app.SubscribeToChanges(ctx); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if err := env.app.SubscribeToChanges(ctx); err != nil {
		t.Fatalf("re-subscribe failed: %v", err)
	}

	if len(env.feed.subs) != 2 {
		t.Fatalf("expected 2 subscriptions, got %d", len(env.feed.subs))
	}
	if !env.feed.subs[0].closed {
		t.Error("previous subscription was not torn down")
	}
	if env.feed.subs[1].closed {
		t.Error("live subscription must stay open")
	}
}

func TestChangeEventTriggersRefetch(t *testing.T) {
	env := newTestEnv(Game{Title: "Alpha"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go env.app.refresher.Run(ctx)

	if err := env.app.SubscribeToChanges(ctx); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	// another client inserts a row, then the push event arrives
	env.games.InsertGame(ctx, Game{Title: "Beta"})
	env.feed.onChange(ChangeEvent{Action: "INSERT", Table: "games", ID: 2})

	deadline := time.After(time.Second)
	for {
		if len(env.app.State().Cache()) == 2 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("cache never reflected the pushed change")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

// ---- admin commands ----

func TestAddGameRejectsEmptyTitleBeforeAnyCall(t *testing.T) {
	env := newTestEnv()

	_, err := env.app.AddGame(context.Background(), "   ", "RPG", "", nil)
	if !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if env.games.insertCalls != 0 {
		t.Error("insert must not be attempted")
	}
	if len(env.storage.uploads) != 0 {
		t.Error("no upload may happen for a rejected submit")
	}
}

func TestAddGameUploadsCoverThenInserts(t *testing.T) {
	env := newTestEnv()

	created, err := env.app.AddGame(context.Background(), "Chrono", "RPG", "SNES", &Upload{
		Filename:    "My Cover.png",
		ContentType: "image/png",
		Reader:      strings.NewReader("img-bytes"),
	})
	if err != nil {
		t.Fatalf("add game failed: %v", err)
	}

	if len(env.storage.uploads) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(env.storage.uploads))
	}
	key := env.storage.uploads[0]
	if !strings.HasPrefix(key, "covers/") || !strings.HasSuffix(key, "_My_Cover.png") {
		t.Errorf("unexpected cover key %q", key)
	}
	if created.Cover != "https://cdn.test/"+key {
		t.Errorf("cover URL %q does not match uploaded object", created.Cover)
	}
	if created.Guide != "" {
		t.Error("new games must start with an empty guide")
	}
}

func TestAddGameRollsBackUploadWhenInsertFails(t *testing.T) {
	env := newTestEnv()
	env.games.insertErr = errors.New("insert rejected")

	_, err := env.app.AddGame(context.Background(), "Chrono", "RPG", "", &Upload{
		Filename:    "cover.png",
		ContentType: "image/png",
		Reader:      strings.NewReader("img"),
	})
	if err == nil {
		t.Fatal("expected the insert failure to surface")
	}

	if len(env.storage.uploads) != 1 || len(env.storage.removed) != 1 {
		t.Fatalf("expected 1 upload and 1 rollback, got %d/%d",
			len(env.storage.uploads), len(env.storage.removed))
	}
	if env.storage.removed[0] != env.storage.uploads[0] {
		t.Error("rollback removed a different object than was uploaded")
	}
}

func TestEditGameKeepsCoverWithoutNewUpload(t *testing.T) {
	env := newTestEnv(Game{Title: "Chrono", Cover: "https://cdn.test/covers/old.png"})

	updated, err := env.app.EditGame(context.Background(), 1, "Chrono Trigger", "RPG", "SNES", nil)
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if updated.Cover != "https://cdn.test/covers/old.png" {
		t.Errorf("existing cover lost: %q", updated.Cover)
	}
	if updated.Title != "Chrono Trigger" {
		t.Errorf("title not updated: %q", updated.Title)
	}
}

func TestEditGameRollsBackReplacementCoverOnFailure(t *testing.T) {
	env := newTestEnv(Game{Title: "Chrono"})
	env.games.updateErr = errors.New("update rejected")

	_, err := env.app.EditGame(context.Background(), 1, "Chrono", "", "", &Upload{
		Filename:    "new.png",
		ContentType: "image/png",
		Reader:      strings.NewReader("img"),
	})
	if err == nil {
		t.Fatal("expected the update failure to surface")
	}
	if len(env.storage.removed) != 1 {
		t.Fatal("replacement cover was not rolled back")
	}
}

func TestDeleteGameGoneFromNextFetch(t *testing.T) {
	env := newTestEnv(Game{Title: "Alpha"}, Game{Title: "Beta"})
	ctx := context.Background()

	if err := env.app.DeleteGame(ctx, 1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := env.app.RefreshNow(ctx); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	for _, g := range env.app.State().Cache() {
		if g.ID == 1 {
			t.Error("deleted game still present after refetch")
		}
	}
	if len(env.app.State().Cache()) != 1 {
		t.Errorf("expected 1 game left, got %d", len(env.app.State().Cache()))
	}
}

func TestSubmitSuggestion(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if err := env.app.SubmitSuggestion(ctx, Suggestion{Title: ""}); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if len(env.suggestions.submitted) != 0 {
		t.Fatal("rejected suggestion must not reach the table")
	}

	if err := env.app.SubmitSuggestion(ctx, Suggestion{Title: "Okami", Platform: "PS2", Reason: "classic"}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if len(env.suggestions.submitted) != 1 {
		t.Fatal("suggestion did not reach the table")
	}
}

// ---- guide editor ----

func TestSaveGuideRoundTrips(t *testing.T) {
	env := newTestEnv(Game{Title: "Chrono", Guide: "<p>old</p>"})
	ed := &fakeEditor{content: "<p>new</p>"}

	saved, err := env.app.SaveGuide(context.Background(), 1, ed)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if saved.Guide != "<p>new</p>" {
		t.Errorf("saved guide = %q, want %q", saved.Guide, "<p>new</p>")
	}

	reopened, err := env.app.OpenGame(context.Background(), 1)
	if err != nil || reopened == nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if reopened.Guide != "<p>new</p>" {
		t.Errorf("reopened guide = %q, want %q", reopened.Guide, "<p>new</p>")
	}
}

func TestInsertGuideImageAtCursor(t *testing.T) {
	env := newTestEnv(Game{Title: "Chrono"})
	sel := 3
	ed := &fakeEditor{content: "<p></p>", selection: &sel}

	err := env.app.InsertGuideImage(context.Background(), 1, ed, Upload{
		Filename:    "map shot.png",
		ContentType: "image/png",
		Reader:      strings.NewReader("img"),
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if len(env.storage.uploads) != 1 {
		t.Fatal("image was not uploaded")
	}
	key := env.storage.uploads[0]
	if !strings.HasPrefix(key, "guides/1_") || !strings.HasSuffix(key, "_map_shot.png") {
		t.Errorf("unexpected guide image key %q", key)
	}
	if !strings.Contains(ed.content, `<img src="https://cdn.test/`+key+`">`) {
		t.Errorf("image not embedded: %q", ed.content)
	}
	if !strings.HasPrefix(ed.content, `<p>`) {
		t.Errorf("image not inserted at cursor: %q", ed.content)
	}
}

func TestInsertGuideImageAppendsWithoutSelection(t *testing.T) {
	env := newTestEnv(Game{Title: "Chrono"})
	ed := &fakeEditor{content: "<p>x</p>"}

	if err := env.app.InsertGuideImage(context.Background(), 1, ed, Upload{
		Filename:    "end.png",
		ContentType: "image/png",
		Reader:      strings.NewReader("img"),
	}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if !strings.HasPrefix(ed.content, "<p>x</p><img") {
		t.Errorf("image not appended at end: %q", ed.content)
	}
}

func TestInsertGuideImageUploadFailureLeavesEditorAlone(t *testing.T) {
	env := newTestEnv(Game{Title: "Chrono"})
	env.storage.uploadErr = errors.New("bucket down")
	ed := &fakeEditor{content: "<p>x</p>"}

	err := env.app.InsertGuideImage(context.Background(), 1, ed, Upload{
		Filename:    "broken.png",
		ContentType: "image/png",
		Reader:      strings.NewReader("img"),
	})
	if err == nil {
		t.Fatal("expected upload failure to surface")
	}
	if ed.content != "<p>x</p>" || len(ed.inserts) != 0 {
		t.Error("editor state must be untouched after a failed upload")
	}
}
