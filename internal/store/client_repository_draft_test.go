package store

import (
	"context"
	"testing"
	"time"

	"github.com/theunsaid/draft-keeper/internal/config"
	"github.com/theunsaid/draft-keeper/internal/logger"
	"github.com/theunsaid/draft-keeper/models"
)

// newTestDraftCache opens an in-memory SQLite cache with the real schema.
func newTestDraftCache(t *testing.T) DraftCache {
	t.Helper()

	db, err := NewConnectSQLite(context.Background(), config.Client{LocalDBPath: ":memory:"}, logger.Nop())
	if err != nil {
		t.Fatalf("failed to open in-memory cache: %v", err)
	}

	cache := NewDraftCache(db, logger.Nop())
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func cachedDraft(id string, userID int64, updatedAt time.Time) models.EncryptedDraft {
	return models.EncryptedDraft{
		ID:                id,
		UserID:            userID,
		EncryptedContent:  "Y29udGVudA==",
		EncryptedMetadata: "bWV0YQ==",
		ContentIV:         "aXYxaXYxaXYxaXYx",
		MetadataIV:        "aXYyaXYyaXYyaXYy",
		CreatedAt:         updatedAt,
		UpdatedAt:         updatedAt,
	}
}

func TestDraftCache_UpsertAndList(t *testing.T) {
	cache := newTestDraftCache(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	err := cache.UpsertDrafts(ctx, []models.EncryptedDraft{
		cachedDraft("d1", 5, now.Add(-time.Hour)),
		cachedDraft("d2", 5, now),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	drafts, err := cache.CachedDrafts(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("expected 2 cached drafts, got %d", len(drafts))
	}
	// newest first
	if drafts[0].ID != "d2" || drafts[1].ID != "d1" {
		t.Errorf("expected order [d2 d1], got [%s %s]", drafts[0].ID, drafts[1].ID)
	}
}

func TestDraftCache_UpsertReplacesExisting(t *testing.T) {
	cache := newTestDraftCache(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	first := cachedDraft("d1", 5, now)
	if err := cache.UpsertDrafts(ctx, []models.EncryptedDraft{first}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := first
	second.EncryptedContent = "bmV3IGNvbnRlbnQ="
	second.ContentIV = "aXYzaXYzaXYzaXYz"
	second.UpdatedAt = now.Add(time.Minute)
	if err := cache.UpsertDrafts(ctx, []models.EncryptedDraft{second}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	drafts, err := cache.CachedDrafts(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("expected 1 cached draft after upsert, got %d", len(drafts))
	}
	if drafts[0].EncryptedContent != second.EncryptedContent {
		t.Errorf("expected replaced content, got %s", drafts[0].EncryptedContent)
	}
	if drafts[0].ContentIV != second.ContentIV {
		t.Errorf("expected replaced IV, got %s", drafts[0].ContentIV)
	}
}

func TestDraftCache_ListIsScopedToUser(t *testing.T) {
	cache := newTestDraftCache(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	err := cache.UpsertDrafts(ctx, []models.EncryptedDraft{
		cachedDraft("d1", 5, now),
		cachedDraft("d2", 6, now),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	drafts, err := cache.CachedDrafts(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drafts) != 1 || drafts[0].ID != "d1" {
		t.Errorf("expected only user 5 drafts, got %+v", drafts)
	}
}

func TestDraftCache_RemoveDraft(t *testing.T) {
	cache := newTestDraftCache(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	if err := cache.UpsertDrafts(ctx, []models.EncryptedDraft{cachedDraft("d1", 5, now)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := cache.RemoveDraft(ctx, 5, "d1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	drafts, err := cache.CachedDrafts(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drafts) != 0 {
		t.Errorf("expected empty cache after remove, got %d drafts", len(drafts))
	}

	// removing an absent draft is not an error
	if err = cache.RemoveDraft(ctx, 5, "never-existed"); err != nil {
		t.Errorf("unexpected error removing absent draft: %v", err)
	}
}

func TestDraftCache_PurgeWipesEverything(t *testing.T) {
	cache := newTestDraftCache(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	err := cache.UpsertDrafts(ctx, []models.EncryptedDraft{
		cachedDraft("d1", 5, now),
		cachedDraft("d2", 6, now),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err = cache.Purge(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, userID := range []int64{5, 6} {
		drafts, err := cache.CachedDrafts(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(drafts) != 0 {
			t.Errorf("expected no drafts for user %d after purge, got %d", userID, len(drafts))
		}
	}
}

func TestDraftCache_UpsertEmptySlice(t *testing.T) {
	cache := newTestDraftCache(t)

	if err := cache.UpsertDrafts(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
