package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/theunsaid/draft-keeper/internal/logger"
	"github.com/theunsaid/draft-keeper/models"
)

func newTestDraftRepo(t *testing.T) (*draftRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &draftRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func draftColumns() []string {
	return []string{
		"id", "user_id",
		"encrypted_content", "encrypted_metadata",
		"content_iv", "metadata_iv",
		"created_at", "updated_at",
	}
}

func sampleDraft() models.EncryptedDraft {
	return models.EncryptedDraft{
		ID:                "b2f5c1de-6a1f-4e27-9f51-0a3d8c7e41bb",
		UserID:            5,
		EncryptedContent:  "Y29udGVudA==",
		EncryptedMetadata: "bWV0YQ==",
		ContentIV:         "aXYxaXYxaXYxaXYx",
		MetadataIV:        "aXYyaXYyaXYyaXYy",
	}
}

func TestCreateDraft_Success(t *testing.T) {
	repo, mock, db := newTestDraftRepo(t)
	defer db.Close()

	ctx := context.Background()
	draft := sampleDraft()
	now := time.Now()

	rows := sqlmock.NewRows(draftColumns()).
		AddRow(draft.ID, draft.UserID,
			draft.EncryptedContent, draft.EncryptedMetadata,
			draft.ContentIV, draft.MetadataIV,
			now, now)

	mock.ExpectQuery("INSERT INTO drafts").
		WithArgs(draft.ID, draft.UserID,
			draft.EncryptedContent, draft.EncryptedMetadata,
			draft.ContentIV, draft.MetadataIV).
		WillReturnRows(rows)

	created, err := repo.CreateDraft(ctx, draft)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != draft.ID {
		t.Errorf("expected id %s, got %s", draft.ID, created.ID)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be populated from the returned row")
	}
}

func TestCreateDraft_DBError(t *testing.T) {
	repo, mock, db := newTestDraftRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO drafts").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateDraft(ctx, sampleDraft())
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestListDrafts_Success(t *testing.T) {
	repo, mock, db := newTestDraftRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.NewRows(draftColumns()).
		AddRow("d1", int64(5), "YQ==", "Yg==", "aXYxaXYxaXYxaXYx", "aXYyaXYyaXYyaXYy", now, now).
		AddRow("d2", int64(5), "Yw==", "ZA==", "aXYzaXYzaXYzaXYz", "aXY0aXY0aXY0aXY0", now, now)

	mock.ExpectQuery("SELECT (.+) FROM drafts").
		WithArgs(int64(5)).
		WillReturnRows(rows)

	drafts, err := repo.ListDrafts(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}
	if drafts[0].ID != "d1" || drafts[1].ID != "d2" {
		t.Errorf("unexpected drafts returned: %+v", drafts)
	}
}

func TestListDrafts_Empty(t *testing.T) {
	repo, mock, db := newTestDraftRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM drafts").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(draftColumns()))

	drafts, err := repo.ListDrafts(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if drafts == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(drafts) != 0 {
		t.Errorf("expected no drafts, got %d", len(drafts))
	}
}

func TestGetDraft_Success(t *testing.T) {
	repo, mock, db := newTestDraftRepo(t)
	defer db.Close()

	ctx := context.Background()
	draft := sampleDraft()
	now := time.Now()

	rows := sqlmock.NewRows(draftColumns()).
		AddRow(draft.ID, draft.UserID,
			draft.EncryptedContent, draft.EncryptedMetadata,
			draft.ContentIV, draft.MetadataIV,
			now, now)

	mock.ExpectQuery("SELECT (.+) FROM drafts").
		WithArgs(draft.ID, draft.UserID).
		WillReturnRows(rows)

	got, err := repo.GetDraft(ctx, draft.UserID, draft.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.EncryptedContent != draft.EncryptedContent {
		t.Errorf("expected content %s, got %s", draft.EncryptedContent, got.EncryptedContent)
	}
}

func TestGetDraft_NotFound(t *testing.T) {
	repo, mock, db := newTestDraftRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM drafts").
		WithArgs("missing", int64(5)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetDraft(ctx, 5, "missing")
	if !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound, got %v", err)
	}
}

func TestUpdateDraft_Success(t *testing.T) {
	repo, mock, db := newTestDraftRepo(t)
	defer db.Close()

	ctx := context.Background()
	draft := sampleDraft()
	now := time.Now()

	rows := sqlmock.NewRows(draftColumns()).
		AddRow(draft.ID, draft.UserID,
			draft.EncryptedContent, draft.EncryptedMetadata,
			draft.ContentIV, draft.MetadataIV,
			now, now)

	mock.ExpectQuery("UPDATE drafts").
		WithArgs(draft.ID, draft.UserID,
			draft.EncryptedContent, draft.EncryptedMetadata,
			draft.ContentIV, draft.MetadataIV).
		WillReturnRows(rows)

	updated, err := repo.UpdateDraft(ctx, draft)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID != draft.ID {
		t.Errorf("expected id %s, got %s", draft.ID, updated.ID)
	}
}

func TestUpdateDraft_NotFound(t *testing.T) {
	repo, mock, db := newTestDraftRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("UPDATE drafts").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateDraft(ctx, sampleDraft())
	if !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound, got %v", err)
	}
}

func TestDeleteDraft_Success(t *testing.T) {
	repo, mock, db := newTestDraftRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE drafts").
		WithArgs("d1", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteDraft(ctx, 5, "d1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteDraft_NotFound(t *testing.T) {
	repo, mock, db := newTestDraftRepo(t)
	defer db.Close()

	ctx := context.Background()

	// soft delete touches no rows when the draft is absent or already gone
	mock.ExpectExec("UPDATE drafts").
		WithArgs("missing", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteDraft(ctx, 5, "missing")
	if !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound, got %v", err)
	}
}
