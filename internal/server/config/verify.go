// Package config defines the server configuration structure.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	if err := verifyRemote(&cfg.Remote); err != nil {
		return err
	}
	return verifySync(&cfg.Sync)
}

func verifyStorage(cfg *StorageSection) error {
	if cfg.DataDir == "" {
		return errors.New("storage.data_dir is required")
	}

	// Check if data directory exists or can be created
	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return errors.New("cannot create data directory: " + err.Error())
	}

	if cfg.Passphrase != "" && len(cfg.Passphrase) < 8 {
		return errors.New("storage.passphrase must be at least 8 characters")
	}

	return nil
}

func verifyRemote(cfg *RemoteSection) error {
	if cfg.URL == "" {
		// Remote sync disabled.
		return nil
	}
	if !strings.HasPrefix(cfg.URL, "http://") && !strings.HasPrefix(cfg.URL, "https://") {
		return errors.New("remote.url must start with http:// or https://")
	}
	if cfg.Timeout < 0 {
		return errors.New("remote.timeout must not be negative")
	}
	return nil
}

func verifySync(cfg *SyncSection) error {
	if cfg.MaxVersionHistory < 1 {
		return errors.New("sync.max_version_history must be at least 1")
	}
	if cfg.AutoSaveDelay < 0 {
		return errors.New("sync.auto_save_delay must not be negative")
	}

	for i, r := range cfg.Regions {
		if r.Path == "" {
			return fmt.Errorf("sync.regions[%d].path is required", i)
		}
		if r.SnippetID == "" {
			return fmt.Errorf("sync.regions[%d].snippet_id is required", i)
		}
	}
	return nil
}
