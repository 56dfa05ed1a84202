package store

import (
	"context"

	"github.com/theunsaid/draft-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts and their immutable encryption salts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	FindSaltByUserID(ctx context.Context, userID int64) (models.SaltRecord, error)
}

// DraftRepository persists encrypted drafts as opaque base64 blobs.
type DraftRepository interface {
	CreateDraft(ctx context.Context, draft models.EncryptedDraft) (models.EncryptedDraft, error)
	ListDrafts(ctx context.Context, userID int64) ([]models.EncryptedDraft, error)
	GetDraft(ctx context.Context, userID int64, draftID string) (models.EncryptedDraft, error)
	UpdateDraft(ctx context.Context, draft models.EncryptedDraft) (models.EncryptedDraft, error)
	DeleteDraft(ctx context.Context, userID int64, draftID string) error
}

// DraftCache is the client-side offline cache. Implementations hold only
// ciphertext: never keys, never plaintext.
type DraftCache interface {
	UpsertDrafts(ctx context.Context, drafts []models.EncryptedDraft) error
	CachedDrafts(ctx context.Context, userID int64) ([]models.EncryptedDraft, error)
	RemoveDraft(ctx context.Context, userID int64, draftID string) error
	Purge(ctx context.Context) error
	Close() error
}
