package store

import (
	"context"
	"fmt"

	"github.com/theunsaid/draft-keeper/internal/logger"
	"github.com/theunsaid/draft-keeper/models"
)

const (
	upsertCachedDraft = `INSERT INTO cached_drafts (
			id, user_id, encrypted_content, encrypted_metadata, content_iv, metadata_iv, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			encrypted_content = excluded.encrypted_content,
			encrypted_metadata = excluded.encrypted_metadata,
			content_iv = excluded.content_iv,
			metadata_iv = excluded.metadata_iv,
			updated_at = excluded.updated_at;`

	listCachedDrafts = `SELECT id, user_id, encrypted_content, encrypted_metadata, content_iv, metadata_iv, created_at, updated_at
		FROM cached_drafts
		WHERE user_id = ?
		ORDER BY updated_at DESC;`

	removeCachedDraft = `DELETE FROM cached_drafts WHERE id = ? AND user_id = ?;`

	purgeCachedDrafts = `DELETE FROM cached_drafts;`
)

// draftCache is the SQLite-backed offline cache of encrypted drafts. It
// mirrors whatever ciphertext the server returned last; decryption always
// happens elsewhere, with the in-memory session key.
type draftCache struct {
	logger *logger.Logger
	db     *DB
}

func NewDraftCache(db *DB, logger *logger.Logger) DraftCache {
	logger.Debug().Msg("creating draft cache")
	return &draftCache{
		db:     db,
		logger: logger,
	}
}

func (c *draftCache) UpsertDrafts(ctx context.Context, drafts []models.EncryptedDraft) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache tx: %w", err)
	}
	defer tx.Rollback()

	for _, d := range drafts {
		_, err = tx.ExecContext(ctx, upsertCachedDraft,
			d.ID, d.UserID,
			d.EncryptedContent, d.EncryptedMetadata,
			d.ContentIV, d.MetadataIV,
			d.CreatedAt, d.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert cached draft %s: %w", d.ID, err)
		}
	}

	return tx.Commit()
}

func (c *draftCache) CachedDrafts(ctx context.Context, userID int64) ([]models.EncryptedDraft, error) {
	rows, err := c.db.QueryContext(ctx, listCachedDrafts, userID)
	if err != nil {
		return nil, fmt.Errorf("list cached drafts: %w", err)
	}
	defer rows.Close()

	drafts := make([]models.EncryptedDraft, 0)
	for rows.Next() {
		var d models.EncryptedDraft
		if err = scanDraft(rows, &d); err != nil {
			return nil, fmt.Errorf("scan cached draft: %w", err)
		}
		drafts = append(drafts, d)
	}

	return drafts, rows.Err()
}

func (c *draftCache) RemoveDraft(ctx context.Context, userID int64, draftID string) error {
	if _, err := c.db.ExecContext(ctx, removeCachedDraft, draftID, userID); err != nil {
		return fmt.Errorf("remove cached draft: %w", err)
	}
	return nil
}

// Purge wipes the cache entirely. Called on logout so no ciphertext of the
// previous session lingers on disk for the next user of the machine.
func (c *draftCache) Purge(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, purgeCachedDrafts); err != nil {
		return fmt.Errorf("purge draft cache: %w", err)
	}
	return nil
}

func (c *draftCache) Close() error {
	return c.db.Close()
}
