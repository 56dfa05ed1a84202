package store

const (
	createUser = `INSERT INTO users (login, auth_verifier, encryption_salt)
    VALUES ($1, $2, $3)
    RETURNING user_id, login, auth_verifier, encryption_salt, created_at;`

	findUserByLogin = `SELECT user_id, login, auth_verifier, encryption_salt, created_at
    FROM users
    WHERE login = $1;`

	findSaltByUserID = `SELECT user_id, encryption_salt, created_at
    FROM users
    WHERE user_id = $1;`

	createDraft = `INSERT INTO drafts (
			id,
			user_id,
			encrypted_content,
			encrypted_metadata,
			content_iv,
			metadata_iv
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, encrypted_content, encrypted_metadata, content_iv, metadata_iv, created_at, updated_at;`

	listDrafts = `SELECT id, user_id, encrypted_content, encrypted_metadata, content_iv, metadata_iv, created_at, updated_at
		FROM drafts
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY updated_at DESC;`

	getDraft = `SELECT id, user_id, encrypted_content, encrypted_metadata, content_iv, metadata_iv, created_at, updated_at
		FROM drafts
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL;`

	updateDraft = `UPDATE drafts
		SET encrypted_content = $3,
			encrypted_metadata = $4,
			content_iv = $5,
			metadata_iv = $6,
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
		RETURNING id, user_id, encrypted_content, encrypted_metadata, content_iv, metadata_iv, created_at, updated_at;`

	softDeleteDraft = `UPDATE drafts
		SET deleted_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL;`
)
