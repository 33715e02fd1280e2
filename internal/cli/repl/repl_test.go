package repl

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// newTestREPL builds a REPL reading from input with history kept in a
// temp dir so tests never touch the real home directory.
func newTestREPL(t *testing.T, input string, execute Executor) (*REPL, *bytes.Buffer) {
	t.Helper()
	output := &bytes.Buffer{}
	return &REPL{
		input:     strings.NewReader(input),
		output:    output,
		completer: NewCompleter(),
		history: &History{
			maxSize: 1000,
			file:    filepath.Join(t.TempDir(), "history"),
		},
		execute: execute,
	}, output
}

func TestREPL_Run_Exit(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"exit command", "exit\n"},
		{"quit command", "quit\n"},
		{"EOF", ""}, // No newline, simulates Ctrl+D
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestREPL(t, tt.input, nil)
			if err := r.Run(); err != nil {
				t.Errorf("Run() returned error: %v", err)
			}
		})
	}
}

func TestREPL_Run_EmptyLinesSkipped(t *testing.T) {
	var calls int
	r, _ := newTestREPL(t, "\n\n\nexit\n", func(args []string) error {
		calls++
		return nil
	})
	if err := r.Run(); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if calls != 0 {
		t.Errorf("executor calls = %d, want 0", calls)
	}
}

func TestREPL_Run_DispatchesArgs(t *testing.T) {
	var got [][]string
	r, _ := newTestREPL(t, "snippet list\nsnippet get greeting\nexit\n", func(args []string) error {
		got = append(got, args)
		return nil
	})
	if err := r.Run(); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("executor calls = %d, want 2", len(got))
	}
	if strings.Join(got[0], " ") != "snippet list" {
		t.Errorf("first call = %v", got[0])
	}
	if strings.Join(got[1], " ") != "snippet get greeting" {
		t.Errorf("second call = %v", got[1])
	}
}

func TestREPL_Run_ExecutorErrorPrinted(t *testing.T) {
	r, output := newTestREPL(t, "snippet get missing\nexit\n", func(args []string) error {
		return &testError{"snippet not found"}
	})
	if err := r.Run(); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if !strings.Contains(output.String(), "Error: snippet not found") {
		t.Errorf("output = %q, want error line", output.String())
	}
}

func TestREPL_Run_Help(t *testing.T) {
	r, output := newTestREPL(t, "help\nexit\n", nil)
	if err := r.Run(); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if !strings.Contains(output.String(), "snippet list") {
		t.Errorf("help output missing commands: %q", output.String())
	}
}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }
