package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/theunsaid/draft-keeper/internal/config"
	"github.com/theunsaid/draft-keeper/internal/logger"
	"github.com/theunsaid/draft-keeper/internal/store"
	"github.com/theunsaid/draft-keeper/internal/utils"
	"github.com/theunsaid/draft-keeper/models"
)

// authService implements [AuthService] on top of the user repository. The
// only credential it ever stores or compares is the client-computed auth
// verifier, an opaque hash that cannot be turned back into the
// encryption key.
type authService struct {
	users  store.UserRepository
	cfg    config.App
	logger *logger.Logger
}

func NewAuthService(users store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	logger.Debug().Msg("creating auth service")
	return &authService{users: users, cfg: cfg, logger: logger}
}

// RegisterUser validates and persists a new account. The encryption salt
// arrives from the client, is stored verbatim, and never changes again.
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	if user.Login == "" || user.AuthVerifier == "" || user.EncryptionSalt == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	created, err := a.users.CreateUser(ctx, user)
	if err != nil {
		return models.User{}, err
	}

	return created, nil
}

// Login verifies the presented auth verifier against the stored one in
// constant time.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	if user.Login == "" || user.AuthVerifier == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	found, err := a.users.FindUserByLogin(ctx, user.Login)
	if err != nil {
		return models.User{}, err
	}

	if subtle.ConstantTimeCompare([]byte(found.AuthVerifier), []byte(user.AuthVerifier)) != 1 {
		return models.User{}, ErrWrongPassword
	}

	return found, nil
}

// SaltForLogin returns the salt record for a login before authentication.
// The salt is public by design; exposing it does not weaken the scheme,
// and the client cannot derive its verifier without it.
func (a *authService) SaltForLogin(ctx context.Context, login string) (models.SaltRecord, error) {
	if login == "" {
		return models.SaltRecord{}, ErrInvalidDataProvided
	}

	user, err := a.users.FindUserByLogin(ctx, login)
	if err != nil {
		return models.SaltRecord{}, err
	}

	return models.SaltRecord{UserID: user.UserID, Salt: user.EncryptionSalt, CreatedAt: user.CreatedAt}, nil
}

// SaltForUser returns the authenticated user's salt record.
func (a *authService) SaltForUser(ctx context.Context, userID int64) (models.SaltRecord, error) {
	return a.users.FindSaltByUserID(ctx, userID)
}

// CreateToken issues a signed bearer token for the user.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.cfg.TokenIssuer, user.UserID, a.cfg.TokenDuration, a.cfg.TokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("create token: %w", err)
	}
	return token, nil
}

// ParseToken validates tokenString and returns the parsed token with the
// user ID populated. Expired tokens map to [ErrTokenIsExpired].
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.cfg.TokenSignKey, a.cfg.TokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		return models.Token{}, err
	}

	return token, nil
}
