package models

import "time"

// User represents an account used for authentication against the storage
// server. The master password itself never appears in this struct: the
// client sends only the base64 auth verifier derived from the encryption
// key, so the server can check identity without ever being able to decrypt.
type User struct {
	// UserID is the internal unique identifier of the user. Assigned by
	// the persistence layer, not exposed via JSON.
	UserID int64 `json:"-"`

	// Login is the unique user login identifier.
	Login string `json:"login"`

	// AuthVerifier is base64(SHA-256(derived key ‖ verifier label)).
	// It proves knowledge of the password-derived key without revealing
	// it; the server stores and compares it but cannot invert it.
	AuthVerifier string `json:"auth_verifier"`

	// EncryptionSalt is the base64 per-user key-derivation salt. Not a
	// secret; its only job is making identical passwords derive
	// different keys for different users. Immutable after signup.
	EncryptionSalt string `json:"encryption_salt"`

	// CreatedAt is the account creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}
