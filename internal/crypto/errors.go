package crypto

import "errors"

var (
	// ErrKeyDerivation indicates PBKDF2 could not run, e.g. a salt of the
	// wrong length or an empty password.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrDecryptionFailed covers every decryption failure mode: GCM tag
	// mismatch, wrong key, malformed base64, or a truncated IV. Callers
	// must not try to distinguish them: the plaintext is unavailable
	// either way.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKey indicates a nil or zeroized key was passed to an
	// encrypt/decrypt operation.
	ErrInvalidKey = errors.New("invalid encryption key")

	// ErrKeyNotExportable is returned by any attempt to serialize a Key.
	ErrKeyNotExportable = errors.New("encryption key is not exportable")
)
