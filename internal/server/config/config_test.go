package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func validConfig(t *testing.T) *ServerConfig {
	t.Helper()
	cfg := Default()
	cfg.Storage.DataDir = filepath.Join(t.TempDir(), "data")
	return cfg
}

func TestVerify_DefaultsAreValid(t *testing.T) {
	cfg := validConfig(t)
	if err := Verify(cfg); err != nil {
		t.Fatalf("Verify(default) = %v", err)
	}
}

func TestVerify_RequiresDataDir(t *testing.T) {
	cfg := validConfig(t)
	cfg.Storage.DataDir = ""
	if err := Verify(cfg); err == nil {
		t.Fatal("expected error for empty data_dir")
	}
}

func TestVerify_ShortPassphrase(t *testing.T) {
	cfg := validConfig(t)
	cfg.Storage.Passphrase = "short"
	if err := Verify(cfg); err == nil {
		t.Fatal("expected error for short passphrase")
	}

	cfg.Storage.Passphrase = "long enough passphrase"
	if err := Verify(cfg); err != nil {
		t.Fatalf("Verify = %v", err)
	}
}

func TestVerify_RemoteURL(t *testing.T) {
	cfg := validConfig(t)

	cfg.Remote.URL = "ftp://example.com"
	if err := Verify(cfg); err == nil {
		t.Fatal("expected error for non-http remote url")
	}

	cfg.Remote.URL = "https://example.com"
	if err := Verify(cfg); err != nil {
		t.Fatalf("Verify = %v", err)
	}

	// Empty URL disables the remote and skips validation.
	cfg.Remote.URL = ""
	cfg.Remote.Timeout = -1
	if err := Verify(cfg); err != nil {
		t.Fatalf("Verify with disabled remote = %v", err)
	}
}

func TestVerify_SyncSection(t *testing.T) {
	cfg := validConfig(t)

	cfg.Sync.MaxVersionHistory = 0
	if err := Verify(cfg); err == nil {
		t.Fatal("expected error for zero max_version_history")
	}
	cfg.Sync.MaxVersionHistory = 1
	if err := Verify(cfg); err != nil {
		t.Fatalf("Verify = %v", err)
	}

	cfg.Sync.Regions = []RegionWatch{{Path: "", SnippetID: "snip-a"}}
	if err := Verify(cfg); err == nil {
		t.Fatal("expected error for region without path")
	}

	cfg.Sync.Regions = []RegionWatch{{Path: "/tmp/a.txt", SnippetID: ""}}
	if err := Verify(cfg); err == nil {
		t.Fatal("expected error for region without snippet_id")
	}

	cfg.Sync.Regions = []RegionWatch{{Path: "/tmp/a.txt", SnippetID: "snip-a"}}
	if err := Verify(cfg); err != nil {
		t.Fatalf("Verify = %v", err)
	}
}

func TestDefault_Values(t *testing.T) {
	cfg := Default()

	if cfg.Sync.MaxVersionHistory != 10 {
		t.Fatalf("MaxVersionHistory = %d, want 10", cfg.Sync.MaxVersionHistory)
	}
	if !cfg.Sync.AutoSave {
		t.Fatal("AutoSave should default to true")
	}
	if cfg.Sync.AutoSaveDelay != DefaultAutoSaveDelay {
		t.Fatalf("AutoSaveDelay = %v", cfg.Sync.AutoSaveDelay)
	}
	if cfg.Log.Format != "json" {
		t.Fatalf("Log.Format = %q", cfg.Log.Format)
	}
}

func TestSanitize_MasksSecrets(t *testing.T) {
	cfg := Default()
	cfg.Storage.Passphrase = "super-secret-passphrase"
	cfg.Remote.AuthToken = "tok-1234567890"
	cfg.Server.HTTP.AuthToken = "api-0987654321"

	s := Sanitize(cfg)

	if s.Storage.Passphrase == cfg.Storage.Passphrase {
		t.Fatal("passphrase not masked")
	}
	if !strings.Contains(s.Storage.Passphrase, "*") {
		t.Fatalf("masked passphrase = %q", s.Storage.Passphrase)
	}
	if s.Remote.AuthToken == cfg.Remote.AuthToken {
		t.Fatal("auth token not masked")
	}
	if s.Server.HTTP.AuthToken == cfg.Server.HTTP.AuthToken {
		t.Fatal("API auth token not masked")
	}

	// Original untouched.
	if cfg.Storage.Passphrase != "super-secret-passphrase" {
		t.Fatal("Sanitize mutated the original")
	}
}

func TestSanitize_ShortSecret(t *testing.T) {
	cfg := Default()
	cfg.Remote.AuthToken = "abc"

	if got := Sanitize(cfg).Remote.AuthToken; got != "****" {
		t.Fatalf("masked short secret = %q, want ****", got)
	}
}
