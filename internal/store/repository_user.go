package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/theunsaid/draft-keeper/internal/logger"
	"github.com/theunsaid/draft-keeper/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation and lookup against the "users" table, which
// also carries the per-user encryption salt (stored as plaintext base64:
// the salt diversifies key derivation, it protects nothing by itself).
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new account with its immutable salt and auth
// verifier, returning the row with server-assigned fields populated.
//
// Error handling:
//   - unique_violation (23505) → [ErrLoginAlreadyExists]
//   - any other driver error → wrapped "unexpected DB error"
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Login, user.AuthVerifier, user.EncryptionSalt)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrLoginAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	if err := row.Scan(&user.UserID, &user.Login, &user.AuthVerifier, &user.EncryptionSalt, &user.CreatedAt); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error scanning created user")
		return models.User{}, err
	}

	return user, nil
}

// FindUserByLogin retrieves the account whose login matches.
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, findUserByLogin, login)
	if err := row.Scan(&user.UserID, &user.Login, &user.AuthVerifier, &user.EncryptionSalt, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByLogin").Msg("error scanning user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// FindSaltByUserID returns the salt record of an authenticated user.
func (r *userRepository) FindSaltByUserID(ctx context.Context, userID int64) (models.SaltRecord, error) {
	log := logger.FromContext(ctx)

	var rec models.SaltRecord
	row := r.db.QueryRowContext(ctx, findSaltByUserID, userID)
	if err := row.Scan(&rec.UserID, &rec.Salt, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SaltRecord{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindSaltByUserID").Msg("error scanning salt record")
		return models.SaltRecord{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return rec, nil
}
