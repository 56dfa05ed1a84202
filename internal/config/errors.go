package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete.
var (
	ErrInvalidServerConfigs  = errors.New("invalid server configuration")
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	ErrInvalidAppConfigs     = errors.New("invalid app configuration")
	ErrInvalidClientConfigs  = errors.New("invalid client configuration")
)
