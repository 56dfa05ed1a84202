// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Unsaid Authors

// Package crypto implements the client-side zero-knowledge encryption
// primitives: salt and IV generation, PBKDF2 key derivation, and
// AES-256-GCM encryption of draft text. Everything leaving the client is
// base64 ciphertext; the derived key exists only in memory (see Key).
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the per-user key-derivation salt length in bytes.
	// Generated once at signup and immutable afterwards: changing it
	// would change the derived key and orphan all stored ciphertext.
	SaltSize = 16

	// IVSize is the GCM nonce length: 96 bits, the standard GCM size.
	IVSize = 12

	// KeySize is the AES-256 key length.
	KeySize = 32

	// KDFIterations is the PBKDF2-HMAC-SHA256 iteration count. Fixed for
	// interoperability: stored ciphertext can only be recovered with a
	// key derived using exactly this count.
	KDFIterations = 100_000
)

// EncryptedPayload is the output of a single Encrypt call: base64
// ciphertext (GCM tag embedded) plus the base64 IV that was generated
// for this call and this call only.
type EncryptedPayload struct {
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
}

// GenerateSalt reads SaltSize random bytes from the OS CSPRNG. Called
// exactly once per account, at signup.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// GenerateIV reads IVSize random bytes from the OS CSPRNG. A fresh IV is
// required for every encryption: reusing one under the same key breaks
// both confidentiality and authenticity of GCM.
func GenerateIV() ([]byte, error) {
	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("generate iv: %w", err)
	}
	return iv, nil
}

// DeriveKey stretches password into a 256-bit AES key with
// PBKDF2-HMAC-SHA256 over KDFIterations rounds. Deterministic: the same
// (password, salt) pair always reproduces the same key, which is what
// lets a returning user decrypt previously stored drafts.
func DeriveKey(password string, salt []byte) (*Key, error) {
	if password == "" {
		return nil, fmt.Errorf("%w: empty password", ErrKeyDerivation)
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt length %d, want %d", ErrKeyDerivation, len(salt), SaltSize)
	}

	material := pbkdf2.Key([]byte(password), salt, KDFIterations, KeySize, sha256.New)
	return newKey(material), nil
}

// Encrypt encodes plaintext as UTF-8, generates a fresh IV, and seals the
// bytes with AES-256-GCM. The GCM authentication tag is embedded in the
// ciphertext per the standard Seal output.
func Encrypt(plaintext string, key *Key) (EncryptedPayload, error) {
	if !key.valid() {
		return EncryptedPayload{}, ErrInvalidKey
	}

	gcm, err := newGCM(key)
	if err != nil {
		return EncryptedPayload{}, err
	}

	iv, err := GenerateIV()
	if err != nil {
		return EncryptedPayload{}, err
	}

	ct := gcm.Seal(nil, iv, []byte(plaintext), nil)
	return EncryptedPayload{
		Ciphertext: ToBase64(ct),
		IV:         ToBase64(iv),
	}, nil
}

// Decrypt reverses Encrypt. It fails closed: malformed base64, a
// truncated IV, a wrong key, and any tampering with the ciphertext all
// surface as ErrDecryptionFailed. Partial or corrupted plaintext is
// never returned.
func Decrypt(ciphertext, iv string, key *Key) (string, error) {
	if !key.valid() {
		return "", ErrInvalidKey
	}

	ct, err := FromBase64(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: decode ciphertext: %v", ErrDecryptionFailed, err)
	}
	nonce, err := FromBase64(iv)
	if err != nil {
		return "", fmt.Errorf("%w: decode iv: %v", ErrDecryptionFailed, err)
	}
	if len(nonce) != IVSize {
		return "", fmt.Errorf("%w: iv length %d, want %d", ErrDecryptionFailed, len(nonce), IVSize)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	pt, err := gcm.Open(nil, nonce, ct, nil)
	if err != nil {
		// Auth-tag mismatch. Almost always a wrong password (and
		// therefore a wrong derived key) or corrupted storage.
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}

	return string(pt), nil
}

// AuthVerifier computes SHA-256(key ‖ label). The label domain-separates
// the verifier from the key itself, so the value sent to the server for
// login proves knowledge of the key without revealing it.
func AuthVerifier(key *Key, label string) []byte {
	h := sha256.New()
	h.Write(key.bytes)
	h.Write([]byte(label))
	return h.Sum(nil)
}

// ToBase64 encodes arbitrary bytes with standard base64.
func ToBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// FromBase64 decodes a standard-base64 string. Round-trips exactly with
// ToBase64 for any byte sequence, including bytes >= 0x80.
func FromBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

func newGCM(key *Key) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key.bytes)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
