package config

import "time"

// applyDefaults fills values that have reasonable fallbacks so a bare
// invocation still starts against a local setup.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = "localhost:8080"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = "draft-keeper"
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = 12 * time.Hour
	}
	if cfg.Client.ServerURL == "" {
		cfg.Client.ServerURL = "http://localhost:8080"
	}
	if cfg.Client.RequestTimeout == 0 {
		cfg.Client.RequestTimeout = 15 * time.Second
	}
	if cfg.Client.RefreshInterval == 0 {
		cfg.Client.RefreshInterval = 5 * time.Minute
	}
}

// ValidateServer checks the invariants the server binary needs at startup.
func (cfg *StructuredConfig) ValidateServer() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}
	return nil
}

// ValidateClient checks the invariants the client binary needs at startup.
func (cfg *StructuredConfig) ValidateClient() error {
	if cfg.Client.ServerURL == "" || cfg.Client.RequestTimeout == 0 {
		return ErrInvalidClientConfigs
	}
	return nil
}
