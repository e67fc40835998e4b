package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/tgienger/yusra/internal/api"
	"github.com/tgienger/yusra/internal/fakeapi"
)

var setupOnce sync.Once

type staticToken string

func (t staticToken) AccessToken() string { return string(t) }

// execute runs the root command with args against a fresh data dir
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	setupOnce.Do(func() { addCommands("test", "abc123", "today") })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func newBackend(t *testing.T) (*fakeapi.Server, string) {
	t.Helper()
	backend := fakeapi.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := httptest.NewServer(backend.Handler("/api"))
	t.Cleanup(srv.Close)

	dataDir := t.TempDir()
	t.Setenv("YUSRA_SERVER_BASE_URL", srv.URL+"/api")
	t.Setenv("YUSRA_DATA_DIR", dataDir)
	configPath = filepath.Join(dataDir, "missing.yaml")
	t.Cleanup(func() { configPath = "" })
	return backend, dataDir
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "yusra test (commit: abc123") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestLoginWorkspacesLogout(t *testing.T) {
	backend, _ := newBackend(t)
	backend.CreateUser("Yusra", "yusra@example.com", "secret")

	if _, err := execute(t, "workspaces"); err == nil || !strings.Contains(err.Error(), "not logged in") {
		t.Fatalf("expected not logged in error, got %v", err)
	}

	if _, err := execute(t, "login", "--email", "yusra@example.com", "--password", "wrong"); err == nil {
		t.Fatal("expected wrong password to fail")
	}

	out, err := execute(t, "login", "--email", "yusra@example.com", "--password", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Logged in as yusra@example.com") {
		t.Fatalf("unexpected login output %q", out)
	}

	out, err = execute(t, "workspaces")
	if err != nil {
		t.Fatalf("workspaces: %v", err)
	}
	if !strings.Contains(out, "No workspaces yet") {
		t.Fatalf("unexpected workspaces output %q", out)
	}

	if _, err := execute(t, "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := execute(t, "workspaces"); err == nil {
		t.Fatal("expected workspaces to fail after logout")
	}
}

func TestExportWorkspaceToDirectory(t *testing.T) {
	backend, dataDir := newBackend(t)
	token := backend.CreateUser("Yusra", "yusra@example.com", "secret")

	client := api.New(strings.TrimSuffix(os.Getenv("YUSRA_SERVER_BASE_URL"), "/"), staticToken(token))
	ctx := context.Background()
	ws, err := client.CreateWorkspace(ctx, "Home")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	board, err := client.CreateBoard(ctx, ws.ID, "Chores")
	if err != nil {
		t.Fatalf("create board: %v", err)
	}

	if _, err := execute(t, "login", "--email", "yusra@example.com", "--password", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	outDir := filepath.Join(dataDir, "out")
	out, err := execute(t, "export", "--workspace", ws.ID, "--out", outDir)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	location := strings.TrimSpace(out)
	if !strings.HasPrefix(location, filepath.Join(outDir, "boards", board.ID)) {
		t.Fatalf("unexpected export location %q", location)
	}
	data, err := os.ReadFile(location)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), `"title": "Chores"`) {
		t.Fatalf("export does not contain the board: %s", data)
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	configPath = filepath.Join(dir, "config.yaml")
	t.Cleanup(func() { configPath = "" })

	if _, err := execute(t, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if _, err := execute(t, "config", "init"); err == nil {
		t.Fatal("expected second init to refuse overwriting")
	}
}
