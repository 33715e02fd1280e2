package command

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSnippetList(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	server.handle("/v1/snippets", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		envelopeResponse(w, map[string]any{
			"items": []any{sampleSnippet()},
			"total": 1,
		})
	})

	c := makeTestContext(server, nil, nil)
	if err := snippetList(c); err != nil {
		t.Fatalf("snippetList() error = %v", err)
	}
}

func TestSnippetGet(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	var gotPath string
	server.handle("/v1/snippets/", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		envelopeResponse(w, sampleSnippet())
	})

	c := makeTestContext(server, nil, []string{"greeting"})
	if err := snippetGet(c); err != nil {
		t.Fatalf("snippetGet() error = %v", err)
	}
	if gotPath != "/v1/snippets/greeting" {
		t.Errorf("path = %q, want /v1/snippets/greeting", gotPath)
	}
}

func TestSnippetGet_MissingID(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	c := makeTestContext(server, nil, nil)
	if err := snippetGet(c); err == nil {
		t.Fatal("snippetGet() error = nil, want error for missing ID")
	}
}

func TestSnippetGet_NotFound(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	server.handle("/v1/snippets/", func(w http.ResponseWriter, r *http.Request) {
		errorResponse(w, http.StatusNotFound, "SS-SNIP-4040", "snippet not found")
	})

	c := makeTestContext(server, nil, []string{"missing"})
	err := snippetGet(c)
	if err == nil {
		t.Fatal("snippetGet() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "SS-SNIP-4040") {
		t.Errorf("error = %v, want server code included", err)
	}
}

func TestSnippetSave_WithContentFlag(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	var gotBody map[string]string
	server.handle("/v1/snippets/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		envelopeResponse(w, sampleVersion(3, gotBody["content"]))
	})

	c := makeTestContext(server, map[string]any{
		"content": "hello there",
		"author":  "alice",
		"file":    "",
	}, []string{"greeting"})
	if err := snippetSave(c); err != nil {
		t.Fatalf("snippetSave() error = %v", err)
	}

	if gotBody["content"] != "hello there" {
		t.Errorf("content = %q, want %q", gotBody["content"], "hello there")
	}
	if gotBody["author"] != "alice" {
		t.Errorf("author = %q, want %q", gotBody["author"], "alice")
	}
}

func TestSnippetSave_WithFileFlag(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	path := filepath.Join(t.TempDir(), "snippet.txt")
	if err := os.WriteFile(path, []byte("from a file"), 0644); err != nil {
		t.Fatal(err)
	}

	var gotBody map[string]string
	server.handle("/v1/snippets/", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		envelopeResponse(w, sampleVersion(0, gotBody["content"]))
	})

	c := makeTestContext(server, map[string]any{
		"content": "",
		"file":    path,
		"author":  "",
	}, []string{"greeting"})
	if err := snippetSave(c); err != nil {
		t.Fatalf("snippetSave() error = %v", err)
	}

	if gotBody["content"] != "from a file" {
		t.Errorf("content = %q, want file contents", gotBody["content"])
	}
}

func TestSnippetSave_ContentAndFileExclusive(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	c := makeTestContext(server, map[string]any{
		"content": "inline",
		"file":    "somewhere.txt",
		"author":  "",
	}, []string{"greeting"})
	if err := snippetSave(c); err == nil {
		t.Fatal("snippetSave() error = nil, want mutual exclusion error")
	}
}

func TestSnippetSave_RequiresContent(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	c := makeTestContext(server, map[string]any{
		"content": "",
		"file":    "",
		"author":  "",
	}, []string{"greeting"})
	if err := snippetSave(c); err == nil {
		t.Fatal("snippetSave() error = nil, want error")
	}
}

func TestSnippetVersions(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	server.handle("/v1/snippets/", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/versions") {
			t.Errorf("path = %q, want /versions suffix", r.URL.Path)
		}
		envelopeResponse(w, map[string]any{
			"snippet_id": "greeting",
			"versions": []any{
				sampleVersion(0, "first"),
				sampleVersion(1, "second"),
			},
		})
	})

	c := makeTestContext(server, nil, []string{"greeting"})
	if err := snippetVersions(c); err != nil {
		t.Fatalf("snippetVersions() error = %v", err)
	}
}

func TestSnippetRestore(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	var gotBody map[string]int
	server.handle("/v1/snippets/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		envelopeResponse(w, sampleVersion(3, "first"))
	})

	c := makeTestContext(server, nil, []string{"greeting", "0"})
	if err := snippetRestore(c); err != nil {
		t.Fatalf("snippetRestore() error = %v", err)
	}
	if gotBody["version_index"] != 0 {
		t.Errorf("version_index = %d, want 0", gotBody["version_index"])
	}
}

func TestSnippetRestore_InvalidIndex(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	c := makeTestContext(server, nil, []string{"greeting", "abc"})
	if err := snippetRestore(c); err == nil {
		t.Fatal("snippetRestore() error = nil, want error for bad index")
	}
}

func TestSnippetDelete_Force(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	var gotMethod string
	server.handle("/v1/snippets/", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		envelopeResponse(w, map[string]any{"id": "greeting", "deleted": true})
	})

	c := makeTestContext(server, map[string]any{"force": true}, []string{"greeting"})
	if err := snippetDelete(c); err != nil {
		t.Fatalf("snippetDelete() error = %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("method = %q, want DELETE", gotMethod)
	}
}

func TestTruncateContent(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 48, "short"},
		{"line\nbreak", 48, "line break"},
		{strings.Repeat("a", 60), 10, "aaaaaaa..."},
	}

	for _, tt := range tests {
		if got := truncateContent(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateContent(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
