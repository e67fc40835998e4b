package session

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/tgienger/yusra/internal/db"
	"github.com/tgienger/yusra/internal/models"
)

func TestSetAndClearCredential(t *testing.T) {
	store := NewMemoryStore()
	s, err := Open(store)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.LoggedIn() {
		t.Fatalf("expected fresh session to be logged out")
	}

	if err := s.SetCredential(models.Tokens{AccessToken: "a", RefreshToken: "r"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if s.AccessToken() != "a" || s.RefreshToken() != "r" {
		t.Fatalf("unexpected tokens %q %q", s.AccessToken(), s.RefreshToken())
	}
	if v, _ := store.GetSetting(AccessTokenKey); v != "a" {
		t.Fatalf("expected access token persisted under %q, got %q", AccessTokenKey, v)
	}

	if err := s.ClearCredential(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if s.LoggedIn() {
		t.Fatalf("expected logged out after clear")
	}
	if v, _ := store.GetSetting(RefreshTokenKey); v != "" {
		t.Fatalf("expected refresh token removed, got %q", v)
	}
}

func TestCredentialSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yusra.db")

	first, err := db.New(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	s, err := Open(first)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	if err := s.SetCredential(models.Tokens{AccessToken: "tok", RefreshToken: "ref"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	first.Close()

	second, err := db.New(path)
	if err != nil {
		t.Fatalf("reopen db: %v", err)
	}
	defer second.Close()
	restored, err := Open(second)
	if err != nil {
		t.Fatalf("reopen session: %v", err)
	}
	if restored.AccessToken() != "tok" {
		t.Fatalf("expected token to survive restart, got %q", restored.AccessToken())
	}
}

type brokenStore struct {
	*MemoryStore
}

func (brokenStore) SetSettings(map[string]string) error { return errors.New("disk full") }

func TestFailedSaveKeepsPreviousCredential(t *testing.T) {
	mem := NewMemoryStore()
	mem.SetSetting(AccessTokenKey, "old-access")
	mem.SetSetting(RefreshTokenKey, "old-refresh")

	s, err := Open(brokenStore{mem})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SetCredential(models.Tokens{AccessToken: "new-access", RefreshToken: "new-refresh"}); err == nil {
		t.Fatal("expected save to fail")
	}

	if s.AccessToken() != "old-access" || s.RefreshToken() != "old-refresh" {
		t.Fatalf("expected previous pair in memory, got %q %q", s.AccessToken(), s.RefreshToken())
	}
	access, _ := mem.GetSetting(AccessTokenKey)
	refresh, _ := mem.GetSetting(RefreshTokenKey)
	if access != "old-access" || refresh != "old-refresh" {
		t.Fatalf("expected previous pair in store, got %q %q", access, refresh)
	}
}
