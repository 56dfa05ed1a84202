// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Unsaid Authors

package crypto

import (
	"crypto/hmac"
	"runtime"
)

// Key is an in-memory AES-256 key. The raw bytes are deliberately
// unexported: only this package can use the key for encrypt/decrypt
// operations, and there is no accessor that would let callers export,
// log, or persist the material. This approximates a non-extractable
// key handle in a garbage-collected language.
type Key struct {
	bytes []byte
}

func newKey(b []byte) *Key {
	return &Key{bytes: b}
}

// Zeroize overwrites the key material with zeros. Best effort only:
// the GC may have copied the slice before this runs.
func (k *Key) Zeroize() {
	if k == nil {
		return
	}
	for i := range k.bytes {
		k.bytes[i] = 0
	}
	runtime.KeepAlive(k.bytes)
	k.bytes = nil
}

// Equal reports whether two keys hold the same material, in constant time.
func (k *Key) Equal(other *Key) bool {
	if k == nil || other == nil {
		return k == other
	}
	return hmac.Equal(k.bytes, other.bytes)
}

func (k *Key) valid() bool {
	return k != nil && len(k.bytes) == KeySize
}

// String implements fmt.Stringer and never reveals key material.
func (k *Key) String() string { return "crypto.Key(redacted)" }

// GoString keeps %#v output redacted as well.
func (k *Key) GoString() string { return "crypto.Key(redacted)" }

// MarshalJSON refuses to serialize the key. Any struct that accidentally
// embeds a *Key fails loudly instead of leaking material to a log or a wire.
func (k *Key) MarshalJSON() ([]byte, error) {
	return nil, ErrKeyNotExportable
}
