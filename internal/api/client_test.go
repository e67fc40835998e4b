package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tgienger/yusra/internal/api"
	"github.com/tgienger/yusra/internal/fakeapi"
)

type staticToken string

func (s staticToken) AccessToken() string { return string(s) }

func newTestClient(t *testing.T) (*api.Client, *fakeapi.Server) {
	t.Helper()
	backend := fakeapi.New(nil)
	token := backend.CreateUser("Test", "test@example.com", "secret")
	srv := httptest.NewServer(backend.Handler("/api"))
	t.Cleanup(srv.Close)
	return api.New(srv.URL+"/api", staticToken(token)), backend
}

func TestAttachesBearerToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	if _, err := api.New(srv.URL, staticToken("abc")).ListWorkspaces(context.Background()); err != nil {
		t.Fatalf("list workspaces: %v", err)
	}
	if got != "Bearer abc" {
		t.Fatalf("expected bearer header, got %q", got)
	}

	if _, err := api.New(srv.URL, staticToken("")).ListWorkspaces(context.Background()); err != nil {
		t.Fatalf("list workspaces: %v", err)
	}
	if got != "" {
		t.Fatalf("expected no header without a token, got %q", got)
	}
}

func TestHTTPErrorCarriesServerMessage(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.GetWorkspace(context.Background(), "missing")
	var he *api.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Status != http.StatusNotFound || he.Message != "Workspace not found" {
		t.Fatalf("unexpected error: %+v", he)
	}
	if !api.IsNotFound(err) {
		t.Fatalf("expected IsNotFound")
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := api.New(url, nil).ListWorkspaces(context.Background())
	var ne *api.NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if ne.Method != http.MethodGet || ne.Path != "/workspaces" {
		t.Fatalf("unexpected error fields: %+v", ne)
	}
}

func TestValidationSendsNoRequest(t *testing.T) {
	client, backend := newTestClient(t)
	ctx := context.Background()

	checks := []error{
		func() error { _, err := client.CreateWorkspace(ctx, "   "); return err }(),
		func() error { _, err := client.CreateColumn(ctx, "board", ""); return err }(),
		client.RenameCard(ctx, "", "title"),
		client.ReorderColumns(ctx, "board", nil),
		client.MoveCard(ctx, api.MoveCardRequest{CardID: "a", ToColumnID: "c", ToPosition: -1}),
	}
	for i, err := range checks {
		var ve *api.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("check %d: expected ValidationError, got %v", i, err)
		}
	}
	if n := len(backend.Requests()); n != 0 {
		t.Fatalf("expected no requests, got %d", n)
	}
}

func TestBoardLifecycle(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	ws, err := client.CreateWorkspace(ctx, "Home")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	board, err := client.CreateBoard(ctx, ws.ID, "Chores")
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	todo, err := client.CreateColumn(ctx, board.ID, "Todo")
	if err != nil {
		t.Fatalf("create column: %v", err)
	}
	done, err := client.CreateColumn(ctx, board.ID, "Done")
	if err != nil {
		t.Fatalf("create column: %v", err)
	}
	card, err := client.CreateCard(ctx, board.ID, todo.ID, "Dishes")
	if err != nil {
		t.Fatalf("create card: %v", err)
	}

	if err := client.ReorderColumns(ctx, board.ID, []string{done.ID, todo.ID}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if err := client.MoveCard(ctx, api.MoveCardRequest{CardID: card.ID, ToColumnID: done.ID, ToPosition: 0}); err != nil {
		t.Fatalf("move: %v", err)
	}
	if err := client.RenameCard(ctx, card.ID, "Wash dishes"); err != nil {
		t.Fatalf("rename card: %v", err)
	}

	detail, err := client.GetBoard(ctx, board.ID)
	if err != nil {
		t.Fatalf("get board: %v", err)
	}
	if detail.Board.WorkspaceID != ws.ID {
		t.Fatalf("expected workspace %s, got %s", ws.ID, detail.Board.WorkspaceID)
	}
	if len(detail.Columns) != 2 || detail.Columns[0].ID != done.ID {
		t.Fatalf("expected Done first, got %+v", detail.Columns)
	}
	if len(detail.Columns[0].Cards) != 1 || detail.Columns[0].Cards[0].Title != "Wash dishes" {
		t.Fatalf("expected moved card in Done, got %+v", detail.Columns[0].Cards)
	}
	if detail.Columns[1].Cards == nil {
		t.Fatalf("expected empty card slice, got nil")
	}

	if err := client.DeleteBoard(ctx, board.ID); err != nil {
		t.Fatalf("delete board: %v", err)
	}
	boards, err := client.ListBoards(ctx, ws.ID)
	if err != nil {
		t.Fatalf("list boards: %v", err)
	}
	if len(boards) != 0 {
		t.Fatalf("expected no boards, got %d", len(boards))
	}
}

func TestLoginAndRegister(t *testing.T) {
	backend := fakeapi.New(nil)
	srv := httptest.NewServer(backend.Handler("/api"))
	defer srv.Close()
	client := api.New(srv.URL+"/api", nil)
	ctx := context.Background()

	tokens, err := client.Register(ctx, "Yusra", "y@example.com", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("expected tokens, got %+v", tokens)
	}

	_, err = client.Login(ctx, "y@example.com", "wrong")
	if !api.IsUnauthorized(err) {
		t.Fatalf("expected 401, got %v", err)
	}
	if msg := api.MessageOf(err, "Login failed"); msg != "Invalid email or password" {
		t.Fatalf("unexpected message %q", msg)
	}
	if _, err := client.Login(ctx, "y@example.com", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
}
