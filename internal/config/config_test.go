package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BaseURL != DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", cfg.Server.BaseURL)
	}
	if cfg.DevServer.Addr != "127.0.0.1:8080" {
		t.Fatalf("unexpected dev server addr %q", cfg.DevServer.Addr)
	}
	if !strings.HasSuffix(cfg.DatabasePath(), filepath.Join("yusra", "yusra.db")) {
		t.Fatalf("unexpected database path %q", cfg.DatabasePath())
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  base_url: http://localhost:5000/api/
data_dir: /tmp/yusra-test
export:
  s3:
    bucket: boards
    use_path_style: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("YUSRA_EXPORT_S3_REGION", "eu-west-1")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BaseURL != "http://localhost:5000/api" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Server.BaseURL)
	}
	if cfg.Export.S3.Bucket != "boards" || !cfg.Export.S3.UsePathStyle {
		t.Fatalf("unexpected s3 config %+v", cfg.Export.S3)
	}
	if cfg.Export.S3.Region != "eu-west-1" {
		t.Fatalf("expected env override, got %q", cfg.Export.S3.Region)
	}
	if cfg.LogPath() != filepath.Join("/tmp/yusra-test", "yusra.log") {
		t.Fatalf("unexpected log path %q", cfg.LogPath())
	}
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for invalid yaml")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Server.BaseURL = "http://127.0.0.1:8080"
	cfg.DataDir = "/var/lib/yusra"

	if err := Save(path, cfg, false); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := Save(path, cfg, false); err == nil {
		t.Fatalf("expected Save to refuse overwriting")
	}
	if err := Save(path, cfg, true); err != nil {
		t.Fatalf("forced Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Server.BaseURL != cfg.Server.BaseURL || got.DataDir != cfg.DataDir {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}
