package store

import (
	"context"

	"github.com/theunsaid/draft-keeper/internal/config"
	"github.com/theunsaid/draft-keeper/internal/logger"
	"github.com/theunsaid/draft-keeper/migrations"
)

// Storages groups the server's repositories behind one constructor.
type Storages struct {
	UserRepository  UserRepository
	DraftRepository DraftRepository

	db *DB
}

func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = migrations.Migrate(db.DB); err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository:  NewUserRepository(db, log),
		DraftRepository: NewDraftRepository(db, log),
		db:              db,
	}, nil
}

func (s *Storages) Close() error {
	return s.db.Close()
}
