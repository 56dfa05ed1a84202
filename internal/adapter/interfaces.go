package adapter

import (
	"context"

	"github.com/theunsaid/draft-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter is the client's view of the storage server. Everything it
// carries is already encrypted or public (salts, verifiers, tokens); no
// method of this interface ever sees a key or plaintext.
type ServerAdapter interface {
	// Register creates an account from login, base64 auth verifier, and
	// base64 salt, and stores the returned bearer token for later calls.
	Register(ctx context.Context, user models.User) (models.Token, error)

	// Login authenticates with login + auth verifier and stores the
	// returned bearer token.
	Login(ctx context.Context, user models.User) (models.Token, error)

	// FetchSaltByLogin returns the salt for a login before
	// authentication, so the client can derive the key and the verifier.
	FetchSaltByLogin(ctx context.Context, login string) (models.SaltRecord, error)

	// FetchSalt returns the authenticated user's salt record.
	FetchSalt(ctx context.Context) (models.SaltRecord, error)

	UploadDraft(ctx context.Context, draft models.EncryptedDraft) (models.EncryptedDraft, error)
	ListDrafts(ctx context.Context) ([]models.EncryptedDraft, error)
	GetDraft(ctx context.Context, draftID string) (models.EncryptedDraft, error)
	UpdateDraft(ctx context.Context, draft models.EncryptedDraft) (models.EncryptedDraft, error)
	DeleteDraft(ctx context.Context, draftID string) error

	// SetToken replaces the bearer token used on authenticated requests.
	// SetToken("") drops it, which happens on logout.
	SetToken(token string)
	Token() string
}
