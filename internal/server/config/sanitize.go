// Package config defines the server configuration structure.
package config

import "strings"

// Sanitize returns a copy of the config with sensitive fields masked.
//
// This is used for logging configuration without exposing secrets.
func Sanitize(cfg *ServerConfig) *ServerConfig {
	// Create a shallow copy
	sanitized := *cfg

	// Mask sensitive fields
	if sanitized.Storage.Passphrase != "" {
		sanitized.Storage.Passphrase = maskSecret(sanitized.Storage.Passphrase)
	}
	if sanitized.Remote.AuthToken != "" {
		sanitized.Remote.AuthToken = maskSecret(sanitized.Remote.AuthToken)
	}
	if sanitized.Server.HTTP.AuthToken != "" {
		sanitized.Server.HTTP.AuthToken = maskSecret(sanitized.Server.HTTP.AuthToken)
	}

	return &sanitized
}

// maskSecret masks a secret value for safe logging.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
