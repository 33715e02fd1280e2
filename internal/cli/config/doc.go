// Package config provides CLI configuration for snipsync-cli.
//
// This package defines CLI-specific configuration:
//
//   - spec.go: CLIConfig struct (~/.snipsync/cli.yaml)
//   - loader.go: Configuration loading and saving
//
// Configuration includes:
//
//   - Default server address and auth token
//   - Output format preference
//
// Command-line flags and SNIPSYNC_* environment variables take
// precedence over values from the config file.
package config
