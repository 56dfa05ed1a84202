package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/theunsaid/draft-keeper/internal/config"
	"github.com/theunsaid/draft-keeper/internal/logger"
)

// cacheSchema holds encrypted drafts only. There is deliberately no table
// for keys, salts, or plaintext: the cache must stay as safe to steal as
// the server database.
const cacheSchema = `CREATE TABLE IF NOT EXISTS cached_drafts (
	id                 TEXT PRIMARY KEY,
	user_id            INTEGER NOT NULL,
	encrypted_content  TEXT NOT NULL,
	encrypted_metadata TEXT NOT NULL,
	content_iv         TEXT NOT NULL,
	metadata_iv        TEXT NOT NULL,
	created_at         TIMESTAMP NOT NULL,
	updated_at         TIMESTAMP NOT NULL
);`

func NewConnectSQLite(ctx context.Context, cfg config.Client, log *logger.Logger) (*DB, error) {
	if cfg.LocalDBPath != ":memory:" {
		if err := createLocalDBFileIfNotExists(cfg.LocalDBPath); err != nil {
			log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
			return nil, fmt.Errorf("create database file: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", cfg.LocalDBPath)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error opening database")
		return nil, fmt.Errorf("open local cache: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}

	if _, err = conn.ExecContext(ctx, cacheSchema); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating cache schema")
		return nil, fmt.Errorf("create cache schema: %w", err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("local cache ready")

	return &DB{DB: conn, logger: log}, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}
