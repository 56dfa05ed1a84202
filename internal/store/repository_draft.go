package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/theunsaid/draft-keeper/internal/logger"
	"github.com/theunsaid/draft-keeper/models"
)

// draftRepository stores encrypted drafts. Every payload column is opaque
// base64 produced by the client; the server can order, filter, and delete
// rows but can never read them.
type draftRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewDraftRepository(db *DB, logger *logger.Logger) DraftRepository {
	logger.Debug().Msg("creating draft repository")
	return &draftRepository{
		db:     db,
		logger: logger,
	}
}

func (r *draftRepository) CreateDraft(ctx context.Context, draft models.EncryptedDraft) (models.EncryptedDraft, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createDraft,
		draft.ID, draft.UserID,
		draft.EncryptedContent, draft.EncryptedMetadata,
		draft.ContentIV, draft.MetadataIV,
	)
	if err := scanDraft(row, &draft); err != nil {
		log.Err(err).Str("func", "*draftRepository.CreateDraft").Msg("error inserting draft")
		return models.EncryptedDraft{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return draft, nil
}

func (r *draftRepository) ListDrafts(ctx context.Context, userID int64) ([]models.EncryptedDraft, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listDrafts, userID)
	if err != nil {
		log.Err(err).Str("func", "*draftRepository.ListDrafts").Msg("error querying drafts")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	drafts := make([]models.EncryptedDraft, 0)
	for rows.Next() {
		var d models.EncryptedDraft
		if err = scanDraft(rows, &d); err != nil {
			log.Err(err).Str("func", "*draftRepository.ListDrafts").Msg("error scanning draft row")
			return nil, err
		}
		drafts = append(drafts, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return drafts, nil
}

func (r *draftRepository) GetDraft(ctx context.Context, userID int64, draftID string) (models.EncryptedDraft, error) {
	log := logger.FromContext(ctx)

	var d models.EncryptedDraft
	row := r.db.QueryRowContext(ctx, getDraft, draftID, userID)
	if err := scanDraft(row, &d); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EncryptedDraft{}, ErrDraftNotFound
		}
		log.Err(err).Str("func", "*draftRepository.GetDraft").Msg("error scanning draft")
		return models.EncryptedDraft{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return d, nil
}

func (r *draftRepository) UpdateDraft(ctx context.Context, draft models.EncryptedDraft) (models.EncryptedDraft, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, updateDraft,
		draft.ID, draft.UserID,
		draft.EncryptedContent, draft.EncryptedMetadata,
		draft.ContentIV, draft.MetadataIV,
	)
	if err := scanDraft(row, &draft); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EncryptedDraft{}, ErrDraftNotFound
		}
		log.Err(err).Str("func", "*draftRepository.UpdateDraft").Msg("error updating draft")
		return models.EncryptedDraft{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return draft, nil
}

func (r *draftRepository) DeleteDraft(ctx context.Context, userID int64, draftID string) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, softDeleteDraft, draftID, userID)
	if err != nil {
		log.Err(err).Str("func", "*draftRepository.DeleteDraft").Msg("error deleting draft")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrDraftNotFound
	}

	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDraft(row rowScanner, d *models.EncryptedDraft) error {
	return row.Scan(
		&d.ID, &d.UserID,
		&d.EncryptedContent, &d.EncryptedMetadata,
		&d.ContentIV, &d.MetadataIV,
		&d.CreatedAt, &d.UpdatedAt,
	)
}
