package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")
	ErrTokenIsExpired      = errors.New("token is expired")

	// ErrEncryptionKeyUnavailable : encrypt/decrypt was attempted while no
	// session key is present. A contract violation inside the app, never
	// silently ignored: the caller must surface it, not save an empty draft.
	ErrEncryptionKeyUnavailable = errors.New("encryption key not ready")

	// ErrReauthRequired : stored ciphertext failed to decrypt with the
	// current key. Recoverable: prompt the user to re-enter the password
	// and retry with a freshly derived key; the data itself is not lost.
	ErrReauthRequired = errors.New("decryption failed, password re-entry required")

	ErrRegisterOnServer = errors.New("registration failed on server")
	ErrLoginOnServer    = errors.New("login failed on server")
)
