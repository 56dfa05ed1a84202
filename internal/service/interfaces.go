package service

import (
	"context"
	"time"

	"github.com/theunsaid/draft-keeper/models"
)

// AuthService is the server-side account service. It compares opaque auth
// verifiers and issues bearer tokens; it never sees passwords or keys.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	SaltForLogin(ctx context.Context, login string) (models.SaltRecord, error)
	SaltForUser(ctx context.Context, userID int64) (models.SaltRecord, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// DraftStoreService is the server-side draft service: validation plus
// persistence of opaque encrypted blobs.
type DraftStoreService interface {
	SaveDraft(ctx context.Context, draft models.EncryptedDraft) (models.EncryptedDraft, error)
	ListDrafts(ctx context.Context, userID int64) ([]models.EncryptedDraft, error)
	GetDraft(ctx context.Context, userID int64, draftID string) (models.EncryptedDraft, error)
	UpdateDraft(ctx context.Context, draft models.EncryptedDraft) (models.EncryptedDraft, error)
	DeleteDraft(ctx context.Context, userID int64, draftID string) error
}

// SessionService is the client-side orchestration of key derivation and
// the key store: the glue between login/logout events and the crypto core.
type SessionService interface {
	// SignUp generates the account salt, derives the key, registers on
	// the server, and only then publishes the key to the key store.
	// All-or-nothing: no step failure may leave a partial key behind.
	SignUp(ctx context.Context, login, password string) error

	// LogIn fetches the account salt, derives the key, authenticates,
	// and publishes the key to the key store. Same atomicity rule.
	LogIn(ctx context.Context, login, password string) error

	// Reauthenticate re-derives the key from a freshly entered password
	// and the salt already held for this session. Used to recover from
	// ErrReauthRequired without a full logout.
	Reauthenticate(ctx context.Context, password string) error

	// LogOut clears the key store first, then drops the bearer token and
	// purges the local ciphertext cache.
	LogOut(ctx context.Context) error

	UserID() int64
	Unlocked() bool
}

// DraftService is the client-side draft orchestration: encrypt before
// upload, decrypt after download, never let plaintext touch storage.
type DraftService interface {
	CreateDraft(ctx context.Context, draft models.Draft) (models.Draft, error)
	ListDrafts(ctx context.Context) ([]models.Draft, error)
	GetDraft(ctx context.Context, draftID string) (models.Draft, error)
	UpdateDraft(ctx context.Context, draft models.Draft) (models.Draft, error)
	DeleteDraft(ctx context.Context, draftID string) error

	// RefreshCache pulls the server's ciphertext into the local cache.
	RefreshCache(ctx context.Context) error

	// CachedDrafts decrypts whatever the offline cache holds, for use
	// when the server is unreachable.
	CachedDrafts(ctx context.Context) ([]models.Draft, error)
}

// CacheRefreshJob periodically pulls the server's ciphertext into the
// local cache while a session is active.
type CacheRefreshJob interface {
	// Start launches the periodic refresh. A second Start replaces the
	// previous run.
	Start(ctx context.Context, interval time.Duration)

	// Stop halts the refresh and waits for the background goroutine to
	// exit. Safe to call when not running.
	Stop()
}
