// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Unsaid Authors

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/theunsaid/draft-keeper/internal/adapter"
	"github.com/theunsaid/draft-keeper/internal/crypto"
	"github.com/theunsaid/draft-keeper/internal/keystore"
	"github.com/theunsaid/draft-keeper/internal/logger"
	"github.com/theunsaid/draft-keeper/internal/store"
	"github.com/theunsaid/draft-keeper/internal/utils"
	"github.com/theunsaid/draft-keeper/models"
)

// clientDraftService implements [DraftService]. Content and metadata are
// sealed by two independent Encrypt calls, each drawing its own IV;
// reusing one IV for two ciphertexts under the same GCM key is the one
// mistake this layer exists to make impossible.
type clientDraftService struct {
	keys    *keystore.Store
	adapter adapter.ServerAdapter
	cache   store.DraftCache
	ids     *utils.UUIDGenerator
	logger  *logger.Logger
}

func NewClientDraftService(keys *keystore.Store, serverAdapter adapter.ServerAdapter, cache store.DraftCache, logger *logger.Logger) DraftService {
	return &clientDraftService{
		keys:    keys,
		adapter: serverAdapter,
		cache:   cache,
		ids:     utils.NewUUIDGenerator(),
		logger:  logger,
	}
}

// CreateDraft implements [DraftService].
func (s *clientDraftService) CreateDraft(ctx context.Context, draft models.Draft) (models.Draft, error) {
	if draft.ID == "" {
		draft.ID = s.ids.Generate()
	}

	enc, err := s.seal(draft)
	if err != nil {
		return models.Draft{}, err
	}

	saved, err := s.adapter.UploadDraft(ctx, enc)
	if err != nil {
		return models.Draft{}, fmt.Errorf("upload draft: %w", err)
	}

	s.cacheQuietly(ctx, saved)

	draft.CreatedAt = saved.CreatedAt
	draft.UpdatedAt = saved.UpdatedAt
	return draft, nil
}

// ListDrafts implements [DraftService]. Fetched ciphertext is cached as a
// side effect, so the offline path stays warm.
func (s *clientDraftService) ListDrafts(ctx context.Context) ([]models.Draft, error) {
	encrypted, err := s.adapter.ListDrafts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}

	drafts, err := s.openAll(encrypted)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cacheErr := s.cache.UpsertDrafts(ctx, encrypted); cacheErr != nil {
			s.logger.Err(cacheErr).Msg("refreshing draft cache after list")
		}
	}

	return drafts, nil
}

// GetDraft implements [DraftService].
func (s *clientDraftService) GetDraft(ctx context.Context, draftID string) (models.Draft, error) {
	enc, err := s.adapter.GetDraft(ctx, draftID)
	if err != nil {
		return models.Draft{}, fmt.Errorf("get draft: %w", err)
	}

	return s.open(enc)
}

// UpdateDraft implements [DraftService].
func (s *clientDraftService) UpdateDraft(ctx context.Context, draft models.Draft) (models.Draft, error) {
	if draft.ID == "" {
		return models.Draft{}, ErrInvalidDataProvided
	}

	enc, err := s.seal(draft)
	if err != nil {
		return models.Draft{}, err
	}

	saved, err := s.adapter.UpdateDraft(ctx, enc)
	if err != nil {
		return models.Draft{}, fmt.Errorf("update draft: %w", err)
	}

	s.cacheQuietly(ctx, saved)

	draft.CreatedAt = saved.CreatedAt
	draft.UpdatedAt = saved.UpdatedAt
	return draft, nil
}

// DeleteDraft implements [DraftService].
func (s *clientDraftService) DeleteDraft(ctx context.Context, draftID string) error {
	if err := s.adapter.DeleteDraft(ctx, draftID); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.RemoveDraft(ctx, 0, draftID); err != nil {
			s.logger.Err(err).Msg("removing draft from cache")
		}
	}

	return nil
}

// RefreshCache implements [DraftService]. Runs without touching the key:
// it moves ciphertext from server to cache, nothing is decrypted.
func (s *clientDraftService) RefreshCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	encrypted, err := s.adapter.ListDrafts(ctx)
	if err != nil {
		return fmt.Errorf("refresh cache: %w", err)
	}

	return s.cache.UpsertDrafts(ctx, encrypted)
}

// CachedDrafts implements [DraftService].
func (s *clientDraftService) CachedDrafts(ctx context.Context) ([]models.Draft, error) {
	if s.cache == nil {
		return nil, nil
	}

	encrypted, err := s.cache.CachedDrafts(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}

	return s.openAll(encrypted)
}

// seal encrypts a plaintext draft into its wire form.
func (s *clientDraftService) seal(draft models.Draft) (models.EncryptedDraft, error) {
	key := s.keys.Key()
	if key == nil {
		return models.EncryptedDraft{}, ErrEncryptionKeyUnavailable
	}

	content, err := crypto.Encrypt(draft.Content, key)
	if err != nil {
		return models.EncryptedDraft{}, fmt.Errorf("encrypt content: %w", err)
	}
	metadata, err := crypto.Encrypt(draft.Metadata, key)
	if err != nil {
		return models.EncryptedDraft{}, fmt.Errorf("encrypt metadata: %w", err)
	}

	return models.EncryptedDraft{
		ID:                draft.ID,
		EncryptedContent:  content.Ciphertext,
		ContentIV:         content.IV,
		EncryptedMetadata: metadata.Ciphertext,
		MetadataIV:        metadata.IV,
	}, nil
}

// open decrypts a wire draft. A failed decrypt surfaces as
// ErrReauthRequired: the ciphertext is fine, the key is wrong, and the
// fix is a password re-entry, never displaying corrupted text.
func (s *clientDraftService) open(enc models.EncryptedDraft) (models.Draft, error) {
	key := s.keys.Key()
	if key == nil {
		return models.Draft{}, ErrEncryptionKeyUnavailable
	}

	content, err := crypto.Decrypt(enc.EncryptedContent, enc.ContentIV, key)
	if err != nil {
		return models.Draft{}, s.mapDecryptError(err)
	}
	metadata, err := crypto.Decrypt(enc.EncryptedMetadata, enc.MetadataIV, key)
	if err != nil {
		return models.Draft{}, s.mapDecryptError(err)
	}

	return models.Draft{
		ID:        enc.ID,
		Content:   content,
		Metadata:  metadata,
		CreatedAt: enc.CreatedAt,
		UpdatedAt: enc.UpdatedAt,
	}, nil
}

func (s *clientDraftService) openAll(encrypted []models.EncryptedDraft) ([]models.Draft, error) {
	drafts := make([]models.Draft, 0, len(encrypted))
	for _, enc := range encrypted {
		d, err := s.open(enc)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

func (s *clientDraftService) mapDecryptError(err error) error {
	if errors.Is(err, crypto.ErrDecryptionFailed) {
		return fmt.Errorf("%w: %v", ErrReauthRequired, err)
	}
	return err
}

func (s *clientDraftService) cacheQuietly(ctx context.Context, draft models.EncryptedDraft) {
	if s.cache == nil {
		return
	}
	if err := s.cache.UpsertDrafts(ctx, []models.EncryptedDraft{draft}); err != nil {
		s.logger.Err(err).Msg("caching draft")
	}
}
