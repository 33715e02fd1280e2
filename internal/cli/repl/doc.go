// Package repl provides interactive mode for snipsync-cli.
//
// This package implements the Read-Eval-Print Loop for interactive sessions:
//
//   - repl.go: Main REPL loop and command dispatch
//   - completer.go: Prefix completion for commands
//   - history.go: Command history persistence
//
// Lines entered at the prompt are split into arguments and dispatched
// through the same command tree used in single-command mode.
package repl
