// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for snipsync-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Storage StorageSection `koanf:"storage"`
	Remote  RemoteSection  `koanf:"remote"`
	Sync    SyncSection    `koanf:"sync"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	HTTP HTTPConfig `koanf:"http"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr        string `koanf:"addr"`
	TLSCertFile string `koanf:"tls_cert_file"`
	TLSKeyFile  string `koanf:"tls_key_file"`

	// AuthToken, when set, is required as a bearer token on the
	// /v1/* endpoints. Empty disables API authentication.
	AuthToken string `koanf:"auth_token"`
}

// StorageSection configures the durable local store.
type StorageSection struct {
	DataDir    string        `koanf:"data_dir"`
	SyncWrites bool          `koanf:"sync_writes"`
	GCInterval time.Duration `koanf:"gc_interval"`

	// Passphrase, when set, seals the stored collection at rest.
	Passphrase string `koanf:"passphrase"`
}

// RemoteSection configures the remote snippet store. An empty URL
// disables remote synchronization entirely.
type RemoteSection struct {
	URL       string        `koanf:"url"`
	AuthToken string        `koanf:"auth_token"`
	Timeout   time.Duration `koanf:"timeout"`
}

// SyncSection configures the synchronization engine and the change
// capture.
type SyncSection struct {
	// MaxVersionHistory caps the versions retained per snippet.
	MaxVersionHistory int `koanf:"max_version_history"`

	// AutoSave gates the change capture.
	AutoSave bool `koanf:"auto_save"`

	// AutoSaveDelay is the capture debounce window.
	AutoSaveDelay time.Duration `koanf:"auto_save_delay"`

	// Author is attributed to captured saves.
	Author string `koanf:"author"`

	// Regions are files watched for changes at startup.
	Regions []RegionWatch `koanf:"regions"`
}

// RegionWatch binds one watched file to a snippet ID.
type RegionWatch struct {
	Path      string `koanf:"path"`
	SnippetID string `koanf:"snippet_id"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
