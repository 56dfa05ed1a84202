package models

import "time"

// Draft is the plaintext form of a journal draft. It exists only in client
// memory: before upload the content and metadata are encrypted separately,
// and the plaintext is reconstructed only after a successful decrypt.
type Draft struct {
	// ID is a client-generated UUID identifying the draft across devices.
	ID string

	// Content is arbitrary UTF-8 text, including the empty string.
	Content string

	// Metadata is the serialized DraftMetadata JSON. Kept as a string so
	// the encryption layer treats it exactly like content.
	Metadata string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DraftMetadata is the per-draft descriptive payload encrypted alongside
// the content: it is just as sensitive as the content itself (recipient
// names reveal who the user writes to).
type DraftMetadata struct {
	Title     string `json:"title,omitempty"`
	Recipient string `json:"recipient,omitempty"`
	Intent    string `json:"intent,omitempty"`
}

// EncryptedDraft is the wire and storage form of a draft. Every field the
// server sees is opaque base64; content and metadata are produced by two
// independent encrypt calls and therefore carry two independent IVs;
// sharing one IV across two ciphertexts under the same GCM key would leak.
type EncryptedDraft struct {
	ID                string     `json:"id"`
	UserID            int64      `json:"-"`
	EncryptedContent  string     `json:"encrypted_content"`
	EncryptedMetadata string     `json:"encrypted_metadata"`
	ContentIV         string     `json:"content_iv"`
	MetadataIV        string     `json:"metadata_iv"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty"`
}

// SaltRecord is the server-side per-user salt row. The salt is plaintext
// base64 by design: it only diversifies key derivation, it hides nothing.
type SaltRecord struct {
	UserID    int64     `json:"user_id"`
	Salt      string    `json:"salt"`
	CreatedAt time.Time `json:"created_at"`
}
