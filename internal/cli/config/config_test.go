package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DefaultServer != "http://localhost:5180" {
		t.Errorf("DefaultServer = %q, want %q", cfg.DefaultServer, "http://localhost:5180")
	}
	if cfg.DefaultOutput != "table" {
		t.Errorf("DefaultOutput = %q, want %q", cfg.DefaultOutput, "table")
	}
	if cfg.AuthToken != "" {
		t.Errorf("AuthToken = %q, want empty", cfg.AuthToken)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if path == "" {
		t.Fatal("DefaultConfigPath should not be empty")
	}
	if !filepath.IsAbs(path) {
		t.Error("path should be absolute")
	}
	if !strings.HasSuffix(path, filepath.Join(".snipsync", "cli.yaml")) {
		t.Errorf("path = %q, want suffix .snipsync/cli.yaml", path)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultServer != Default().DefaultServer {
		t.Errorf("DefaultServer = %q, want default", cfg.DefaultServer)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")

	cfg := &CLIConfig{
		DefaultServer: "https://snip.example.com",
		DefaultOutput: "json",
		AuthToken:     "sekrit",
	}
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file permissions = %v, want 0600", perm)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.DefaultServer != cfg.DefaultServer {
		t.Errorf("DefaultServer = %q, want %q", loaded.DefaultServer, cfg.DefaultServer)
	}
	if loaded.DefaultOutput != cfg.DefaultOutput {
		t.Errorf("DefaultOutput = %q, want %q", loaded.DefaultOutput, cfg.DefaultOutput)
	}
	if loaded.AuthToken != cfg.AuthToken {
		t.Errorf("AuthToken = %q, want %q", loaded.AuthToken, cfg.AuthToken)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	if err := os.WriteFile(path, []byte("{not yaml: ["), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load() error = nil, want parse error")
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	if err := os.WriteFile(path, []byte("default_output: yaml\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultOutput != "yaml" {
		t.Errorf("DefaultOutput = %q, want %q", cfg.DefaultOutput, "yaml")
	}
	if cfg.DefaultServer != Default().DefaultServer {
		t.Errorf("DefaultServer = %q, want default preserved", cfg.DefaultServer)
	}
}
