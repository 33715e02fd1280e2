// Package repl provides the interactive REPL mode for snipsync-cli.
package repl

import "strings"

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a new Completer.
func NewCompleter() *Completer {
	return &Completer{
		commands: []string{
			"snippet", "snippet list", "snippet get", "snippet save", "snippet delete",
			"snippet versions", "snippet restore",
			"collection", "collection export", "collection import",
			"config", "config show", "config set",
			"system", "system health", "system version",
			"help", "exit", "quit",
		},
	}
}

// Complete returns completion suggestions for the given prefix.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
