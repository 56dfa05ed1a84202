// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Unsaid Authors

package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/theunsaid/draft-keeper/internal/adapter"
	"github.com/theunsaid/draft-keeper/internal/crypto"
	"github.com/theunsaid/draft-keeper/internal/keystore"
	"github.com/theunsaid/draft-keeper/internal/logger"
	"github.com/theunsaid/draft-keeper/internal/store"
	"github.com/theunsaid/draft-keeper/internal/utils"
	"github.com/theunsaid/draft-keeper/models"
)

// verifierLabel domain-separates the login verifier from the encryption
// key: the server receives SHA-256(key ‖ label), never anything that can
// be replayed as key material. Changing this constant invalidates every
// stored verifier, so it is fixed for the lifetime of the scheme.
const verifierLabel = "draft-keeper/auth/v1"

// clientSessionService implements [SessionService]. It is the only code
// allowed to call Set/Clear on the key store; everything else reads.
type clientSessionService struct {
	keys    *keystore.Store
	adapter adapter.ServerAdapter
	cache   store.DraftCache
	logger  *logger.Logger

	mu     sync.Mutex
	userID int64
}

func NewClientSessionService(keys *keystore.Store, serverAdapter adapter.ServerAdapter, cache store.DraftCache, logger *logger.Logger) SessionService {
	return &clientSessionService{
		keys:    keys,
		adapter: serverAdapter,
		cache:   cache,
		logger:  logger,
	}
}

// SignUp implements [SessionService]. Order matters: the key is derived
// and the account registered before anything is published to the key
// store, so a failure at any step leaves the store exactly as it was.
func (s *clientSessionService) SignUp(ctx context.Context, login, password string) error {
	salt, err := crypto.GenerateSalt()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRegisterOnServer, err)
	}

	key, err := crypto.DeriveKey(password, salt)
	if err != nil {
		return fmt.Errorf("derive key: %w", err)
	}

	user := models.User{
		Login:          login,
		AuthVerifier:   crypto.ToBase64(crypto.AuthVerifier(key, verifierLabel)),
		EncryptionSalt: crypto.ToBase64(salt),
	}

	token, err := s.adapter.Register(ctx, user)
	if err != nil {
		key.Zeroize()
		return fmt.Errorf("%w: %v", ErrRegisterOnServer, err)
	}

	return s.openSession(token, key, salt)
}

// LogIn implements [SessionService]. The salt comes from the server (it
// was generated at signup and never changes), the key is derived locally,
// and only the verifier travels back.
func (s *clientSessionService) LogIn(ctx context.Context, login, password string) error {
	saltRec, err := s.adapter.FetchSaltByLogin(ctx, login)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoginOnServer, err)
	}

	salt, err := crypto.FromBase64(saltRec.Salt)
	if err != nil {
		return fmt.Errorf("%w: decode salt: %v", ErrLoginOnServer, err)
	}

	key, err := crypto.DeriveKey(password, salt)
	if err != nil {
		return fmt.Errorf("derive key: %w", err)
	}

	user := models.User{
		Login:        login,
		AuthVerifier: crypto.ToBase64(crypto.AuthVerifier(key, verifierLabel)),
	}

	token, err := s.adapter.Login(ctx, user)
	if err != nil {
		key.Zeroize()
		return fmt.Errorf("%w: %v", ErrLoginOnServer, err)
	}

	return s.openSession(token, key, salt)
}

// Reauthenticate implements [SessionService]. Derivation is deterministic,
// so the same password and the session salt reproduce the same key; a
// wrong password will simply keep failing decryption and the caller can
// prompt again.
func (s *clientSessionService) Reauthenticate(ctx context.Context, password string) error {
	salt := s.keys.Salt()
	if salt == nil {
		// No salt in memory means the session itself is gone.
		saltRec, err := s.adapter.FetchSalt(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrLoginOnServer, err)
		}
		if salt, err = crypto.FromBase64(saltRec.Salt); err != nil {
			return fmt.Errorf("%w: decode salt: %v", ErrLoginOnServer, err)
		}
	}

	key, err := crypto.DeriveKey(password, salt)
	if err != nil {
		return fmt.Errorf("derive key: %w", err)
	}

	s.keys.Set(key, salt)
	return nil
}

// LogOut implements [SessionService]. The key store is cleared first:
// there must be no window in which the user believes they are logged out
// while key material is still reachable.
func (s *clientSessionService) LogOut(ctx context.Context) error {
	s.keys.Clear()

	s.mu.Lock()
	s.userID = 0
	s.mu.Unlock()

	s.adapter.SetToken("")

	if s.cache != nil {
		if err := s.cache.Purge(ctx); err != nil {
			s.logger.Err(err).Msg("purging local cache on logout")
			return err
		}
	}

	return nil
}

func (s *clientSessionService) UserID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *clientSessionService) Unlocked() bool {
	return s.keys.Has()
}

func (s *clientSessionService) openSession(token models.Token, key *crypto.Key, salt []byte) error {
	userID, err := utils.ParseUserIDFromJWT(token.SignedString)
	if err != nil {
		key.Zeroize()
		return fmt.Errorf("parse session token: %w", err)
	}

	s.keys.Set(key, salt)

	s.mu.Lock()
	s.userID = userID
	s.mu.Unlock()

	return nil
}
