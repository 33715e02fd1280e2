// Package command provides CLI command definitions for snipsync.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command, global flags, REPL mode
//   - snippet.go: Snippet subcommand group
//   - collection.go: Collection export/import subcommand group
//   - config.go: CLI configuration subcommand group
//   - system.go: System subcommand group
//
// Commands follow a consistent pattern of parsing flags,
// calling the server's /v1 API, and formatting output.
package command
