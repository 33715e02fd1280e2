// Package config defines the CLI configuration structure.
package config

// CLIConfig is the configuration for snipsync-cli.
type CLIConfig struct {
	// Default connection settings
	DefaultServer string `yaml:"default_server"`
	DefaultOutput string `yaml:"default_output"` // table, json, yaml

	// Auth token for the default server. Flags and environment
	// variables override this value.
	AuthToken string `yaml:"auth_token,omitempty"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		DefaultServer: "http://localhost:5180",
		DefaultOutput: "table",
	}
}
