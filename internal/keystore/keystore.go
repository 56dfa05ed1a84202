// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Unsaid Authors

// Package keystore holds the current session's derived encryption key and
// salt. It is a single-slot holder, not a cache: one key at a time, set on
// login or signup, cleared on logout, never written to durable storage.
package keystore

import (
	"sync"

	"github.com/theunsaid/draft-keeper/internal/crypto"
)

// Store is the sole authoritative holder of the session key. It is an
// explicit injectable object (owned by the client application and passed to
// the services that need it) rather than package-global state, so tests
// cannot leak key material into each other.
//
// Only the session service calls Set and Clear; everything else treats the
// store as read-only through Key and Has. Mutations are last-writer-wins
// under an RWMutex; unlike a browser's single event loop, Go callers may
// touch the slot from multiple goroutines.
type Store struct {
	mu   sync.RWMutex
	key  *crypto.Key
	salt []byte
}

func New() *Store {
	return &Store{}
}

// Set stores the key/salt pair, overwriting any prior value. Called once,
// immediately after a successful key derivation.
func (s *Store) Set(key *crypto.Key, salt []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.key = key
	s.salt = append([]byte(nil), salt...)
}

// Key returns the current key, or nil when no key has been set (not logged
// in, or the session was restored without password re-entry).
func (s *Store) Key() *crypto.Key {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key
}

// Salt returns a copy of the stored salt, or nil when absent.
func (s *Store) Salt() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.salt == nil {
		return nil
	}
	return append([]byte(nil), s.salt...)
}

// Has reports whether a key is currently available. UI layers use this to
// decide whether to prompt for password re-entry.
func (s *Store) Has() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key != nil
}

// Clear zeroizes and drops both key and salt. The only sanctioned way to
// remove key material; must run on logout before any navigation away from
// the authenticated state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.key.Zeroize()
	s.key = nil
	for i := range s.salt {
		s.salt[i] = 0
	}
	s.salt = nil
}
