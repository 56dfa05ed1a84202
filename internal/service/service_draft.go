package service

import (
	"context"

	"github.com/theunsaid/draft-keeper/internal/crypto"
	"github.com/theunsaid/draft-keeper/internal/logger"
	"github.com/theunsaid/draft-keeper/internal/store"
	"github.com/theunsaid/draft-keeper/models"
)

// draftStoreService implements [DraftStoreService]. Validation here is
// purely structural (the payload must look like base64 blobs with two
// distinct IVs) because semantically the server has nothing to check:
// it cannot read what it stores.
type draftStoreService struct {
	drafts store.DraftRepository
	logger *logger.Logger
}

func NewDraftStoreService(drafts store.DraftRepository, logger *logger.Logger) DraftStoreService {
	logger.Debug().Msg("creating draft store service")
	return &draftStoreService{drafts: drafts, logger: logger}
}

func (s *draftStoreService) SaveDraft(ctx context.Context, draft models.EncryptedDraft) (models.EncryptedDraft, error) {
	if err := validateEncryptedDraft(draft); err != nil {
		return models.EncryptedDraft{}, err
	}
	return s.drafts.CreateDraft(ctx, draft)
}

func (s *draftStoreService) ListDrafts(ctx context.Context, userID int64) ([]models.EncryptedDraft, error) {
	return s.drafts.ListDrafts(ctx, userID)
}

func (s *draftStoreService) GetDraft(ctx context.Context, userID int64, draftID string) (models.EncryptedDraft, error) {
	if draftID == "" {
		return models.EncryptedDraft{}, ErrInvalidDataProvided
	}
	return s.drafts.GetDraft(ctx, userID, draftID)
}

func (s *draftStoreService) UpdateDraft(ctx context.Context, draft models.EncryptedDraft) (models.EncryptedDraft, error) {
	if err := validateEncryptedDraft(draft); err != nil {
		return models.EncryptedDraft{}, err
	}
	return s.drafts.UpdateDraft(ctx, draft)
}

func (s *draftStoreService) DeleteDraft(ctx context.Context, userID int64, draftID string) error {
	if draftID == "" {
		return ErrInvalidDataProvided
	}
	return s.drafts.DeleteDraft(ctx, userID, draftID)
}

func validateEncryptedDraft(draft models.EncryptedDraft) error {
	if draft.ID == "" || draft.UserID == 0 {
		return ErrInvalidDataProvided
	}
	if draft.EncryptedContent == "" || draft.EncryptedMetadata == "" {
		return ErrInvalidDataProvided
	}

	// Both IVs must be well-formed 12-byte nonces, and they must differ:
	// a shared IV across the two ciphertexts would mean GCM nonce reuse
	// under one key.
	for _, iv := range []string{draft.ContentIV, draft.MetadataIV} {
		raw, err := crypto.FromBase64(iv)
		if err != nil || len(raw) != crypto.IVSize {
			return ErrInvalidDataProvided
		}
	}
	if draft.ContentIV == draft.MetadataIV {
		return ErrInvalidDataProvided
	}

	if _, err := crypto.FromBase64(draft.EncryptedContent); err != nil {
		return ErrInvalidDataProvided
	}
	if _, err := crypto.FromBase64(draft.EncryptedMetadata); err != nil {
		return ErrInvalidDataProvided
	}

	return nil
}
