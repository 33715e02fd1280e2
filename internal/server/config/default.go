// Package config defines the server configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultHTTPAddr = "127.0.0.1:5180"

	DefaultDataDir    = "/var/lib/snipsync-server/data"
	DefaultGCInterval = 10 * time.Minute

	DefaultRemoteTimeout = 30 * time.Second

	DefaultMaxVersionHistory = 10
	DefaultAutoSave          = true
	DefaultAutoSaveDelay     = 2000 * time.Millisecond
	DefaultAuthor            = "unknown"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr: DefaultHTTPAddr,
			},
		},
		Storage: StorageSection{
			DataDir:    DefaultDataDir,
			GCInterval: DefaultGCInterval,
		},
		Remote: RemoteSection{
			Timeout: DefaultRemoteTimeout,
		},
		Sync: SyncSection{
			MaxVersionHistory: DefaultMaxVersionHistory,
			AutoSave:          DefaultAutoSave,
			AutoSaveDelay:     DefaultAutoSaveDelay,
			Author:            DefaultAuthor,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
