package ui

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/yusra/internal/api"
	"github.com/tgienger/yusra/internal/controller"
	"github.com/tgienger/yusra/internal/fakeapi"
	"github.com/tgienger/yusra/internal/session"
	"github.com/tgienger/yusra/internal/ui/views"
)

type testEnv struct {
	app     *App
	session *session.Session
	store   *session.MemoryStore
	backend *fakeapi.Server
}

func newTestEnv(t *testing.T, store *session.MemoryStore) testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend := fakeapi.New(logger)
	srv := httptest.NewServer(backend.Handler("/api"))
	t.Cleanup(srv.Close)

	sess, err := session.Open(store)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	client := api.New(srv.URL+"/api", sess, api.WithLogger(logger))
	app := NewApp(context.Background(), client, sess, store, logger)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return testEnv{app: app, session: sess, store: store, backend: backend}
}

func TestStartsOnLoginWithoutCredential(t *testing.T) {
	env := newTestEnv(t, session.NewMemoryStore())
	env.app.Init()

	if env.app.CurrentView() != ViewAuth {
		t.Fatalf("expected auth view, got %v", env.app.CurrentView())
	}
}

func TestHeaderHiddenOnAuthScreens(t *testing.T) {
	env := newTestEnv(t, session.NewMemoryStore())
	env.app.Init()

	quote := env.app.header.Quote()
	if strings.Contains(env.app.View(), quote) {
		t.Fatalf("expected no header quote on the login screen")
	}

	env.app.Update(controller.LoggedIn{})
	if !strings.Contains(env.app.View(), quote) {
		t.Fatalf("expected the header quote once logged in")
	}
}

func TestLoginFlowStoresTokens(t *testing.T) {
	env := newTestEnv(t, session.NewMemoryStore())
	env.backend.CreateUser("Yusra", "yusra@example.com", "secret")
	env.app.Init()

	msg := env.app.auth.Login("yusra@example.com", "secret")()
	_, cmd := env.app.Update(msg)
	if cmd == nil {
		t.Fatalf("expected the auth result to produce a follow-up")
	}
	next := cmd()
	if _, ok := next.(controller.LoggedIn); !ok {
		t.Fatalf("expected LoggedIn, got %#v", next)
	}
	env.app.Update(next)

	if env.app.CurrentView() != ViewWorkspaces {
		t.Fatalf("expected workspace list, got %v", env.app.CurrentView())
	}
	if !env.session.LoggedIn() {
		t.Fatalf("expected credential stored")
	}
	if got, _ := env.store.GetSetting(session.RefreshTokenKey); got == "" {
		t.Fatalf("expected refresh token persisted")
	}
}

func TestNavigationRemembersWorkspace(t *testing.T) {
	env := newTestEnv(t, session.NewMemoryStore())

	env.app.Update(controller.LoggedIn{})
	env.app.Update(controller.NavigateToWorkspace{WorkspaceID: "ws9"})
	if env.app.CurrentView() != ViewBoards {
		t.Fatalf("expected board list, got %v", env.app.CurrentView())
	}
	if got, _ := env.store.GetSetting(LastWorkspaceKey); got != "ws9" {
		t.Fatalf("expected ws9 remembered, got %q", got)
	}

	env.app.Update(views.OpenBoard{BoardID: "b1"})
	if env.app.CurrentView() != ViewBoard {
		t.Fatalf("expected board view, got %v", env.app.CurrentView())
	}

	env.app.Update(controller.NavigateToWorkspaces{})
	if got, _ := env.store.GetSetting(LastWorkspaceKey); got != "" {
		t.Fatalf("expected last workspace cleared, got %q", got)
	}
}

func TestRestoresLastWorkspace(t *testing.T) {
	store := session.NewMemoryStore()
	store.SetSetting(session.AccessTokenKey, "token")
	store.SetSetting(LastWorkspaceKey, "ws1")

	env := newTestEnv(t, store)
	env.app.Init()

	if env.app.CurrentView() != ViewBoards {
		t.Fatalf("expected to reopen the last workspace, got %v", env.app.CurrentView())
	}
}

func TestLogoutReturnsToLogin(t *testing.T) {
	store := session.NewMemoryStore()
	store.SetSetting(session.AccessTokenKey, "token")
	store.SetSetting(session.RefreshTokenKey, "refresh")
	env := newTestEnv(t, store)
	env.app.Init()

	msg := env.app.auth.Logout()()
	env.app.Update(msg)

	if env.app.CurrentView() != ViewAuth {
		t.Fatalf("expected auth view, got %v", env.app.CurrentView())
	}
	if env.session.LoggedIn() {
		t.Fatalf("expected session cleared")
	}
	if got, _ := store.GetSetting(session.AccessTokenKey); got != "" {
		t.Fatalf("expected stored token removed, got %q", got)
	}
}
