package db

import (
	"path/filepath"
	"testing"
)

func TestSettingsRoundTrip(t *testing.T) {
	database := newTestDB(t)

	got, err := database.GetSetting("missing")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty value, got %q", got)
	}

	if err := database.SetSetting("accessToken", "one"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := database.SetSetting("accessToken", "two"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = database.GetSetting("accessToken")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "two" {
		t.Fatalf("expected 'two', got %q", got)
	}

	if err := database.DeleteSetting("accessToken"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := database.GetSetting("accessToken"); got != "" {
		t.Fatalf("expected value to be deleted, got %q", got)
	}
}

func TestSettingsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "yusra.db")
	first, err := New(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.SetSetting("last_workspace_id", "ws1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	first.Close()

	second, err := New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	if got, _ := second.GetSetting("last_workspace_id"); got != "ws1" {
		t.Fatalf("expected ws1 after reopen, got %q", got)
	}
}

func TestSetSettingsIsAllOrNothing(t *testing.T) {
	database := newTestDB(t)

	if err := database.SetSettings(map[string]string{"accessToken": "a1", "refreshToken": "r1"}); err != nil {
		t.Fatalf("set pair: %v", err)
	}
	if got, _ := database.GetSetting("refreshToken"); got != "r1" {
		t.Fatalf("expected r1, got %q", got)
	}

	_, err := database.Exec(`CREATE TRIGGER reject_r2 BEFORE INSERT ON settings
		WHEN NEW.value = 'r2' BEGIN SELECT RAISE(ABORT, 'rejected'); END`)
	if err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	if err := database.SetSettings(map[string]string{"accessToken": "a2", "refreshToken": "r2"}); err == nil {
		t.Fatal("expected the rejected write to fail")
	}
	if got, _ := database.GetSetting("accessToken"); got != "a1" {
		t.Fatalf("expected access token rolled back to a1, got %q", got)
	}
	if got, _ := database.GetSetting("refreshToken"); got != "r1" {
		t.Fatalf("expected refresh token r1, got %q", got)
	}
}

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}
