// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Unsaid Authors

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theunsaid/draft-keeper/internal/logger"
	"github.com/theunsaid/draft-keeper/models"
)

// newTestAdapter builds an httpServerAdapter pointed at a test server.
func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()

	a, err := NewHTTPServerAdapter(HTTPClientConfig{BaseURL: serverURL}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

const stubJWT = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJzdWIiOiI0MiJ9.signature"

// ── Register / Login ─────────────────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	user := models.User{Login: "alice", AuthVerifier: "dmVyaWZpZXI=", EncryptionSalt: "c2FsdA=="}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/register", r.URL.Path)

		var got models.User
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, user.Login, got.Login)
		assert.Equal(t, user.AuthVerifier, got.AuthVerifier)
		assert.Equal(t, user.EncryptionSalt, got.EncryptionSalt)

		w.Header().Set("Authorization", "Bearer "+stubJWT)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	token, err := a.Register(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, stubJWT, token.SignedString)
	// the adapter remembers the token for subsequent authed calls
	assert.Equal(t, stubJWT, a.Token())
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("login already exists"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.User{Login: "alice"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoginExists)
	assert.Empty(t, a.Token())
}

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		w.Header().Set("Authorization", "Bearer "+stubJWT)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	token, err := a.Login(context.Background(), models.User{Login: "alice", AuthVerifier: "dg=="})

	require.NoError(t, err)
	assert.Equal(t, stubJWT, token.SignedString)
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("invalid credentials"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.User{Login: "alice", AuthVerifier: "d3Jvbmc="})

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogin_MissingAuthorizationHeader(t *testing.T) {
	// 200 without a token header is a broken server answer
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.User{Login: "alice", AuthVerifier: "dg=="})

	assert.Error(t, err)
}

// ── Salt lookups ─────────────────────────────────────────────────────────────

func TestFetchSaltByLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/salt", r.URL.Path)
		assert.Equal(t, "alice", r.URL.Query().Get("login"))
		// no Authorization header is required for this endpoint
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user_id":3,"salt":"c2FsdA=="}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	rec, err := a.FetchSaltByLogin(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, int64(3), rec.UserID)
	assert.Equal(t, "c2FsdA==", rec.Salt)
}

func TestFetchSaltByLogin_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.FetchSaltByLogin(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchSalt_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/vault/salt", r.URL.Path)
		assert.Equal(t, "Bearer "+stubJWT, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user_id":42,"salt":"c2FsdA=="}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(stubJWT)

	rec, err := a.FetchSalt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), rec.UserID)
}

// ── Draft CRUD ───────────────────────────────────────────────────────────────

func TestUploadDraft(t *testing.T) {
	draft := models.EncryptedDraft{
		ID:                "d1",
		EncryptedContent:  "Y29udGVudA==",
		EncryptedMetadata: "bWV0YQ==",
		ContentIV:         "aXYxaXYxaXYxaXYx",
		MetadataIV:        "aXYyaXYyaXYyaXYy",
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/drafts/", r.URL.Path)
		assert.Equal(t, "Bearer "+stubJWT, r.Header.Get("Authorization"))

		var got models.EncryptedDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, draft.EncryptedContent, got.EncryptedContent)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(got)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(stubJWT)

	saved, err := a.UploadDraft(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, saved.ID)
}

func TestListDrafts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/drafts/", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"d1"},{"id":"d2"}]`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(stubJWT)

	drafts, err := a.ListDrafts(context.Background())
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "d1", drafts[0].ID)
}

func TestGetDraft_EscapesID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/drafts/a%2Fb", r.URL.EscapedPath())

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"a/b"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(stubJWT)

	draft, err := a.GetDraft(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "a/b", draft.ID)
}

func TestUpdateDraft_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(stubJWT)

	_, err := a.UpdateDraft(context.Background(), models.EncryptedDraft{ID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteDraft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/drafts/d1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(stubJWT)

	require.NoError(t, a.DeleteDraft(context.Background(), "d1"))
}

// ── Error mapping and config ─────────────────────────────────────────────────

func TestMapHTTPError_ServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(stubJWT)

	_, err := a.ListDrafts(context.Background())
	assert.ErrorIs(t, err, ErrServerFailure)
}

func TestMapHTTPError_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(stubJWT)

	_, err := a.UploadDraft(context.Background(), models.EncryptedDraft{})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "scheme added", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "https kept", raw: "https://keeper.example.com", want: "https://keeper.example.com"},
		{name: "trailing slash stripped", raw: "http://localhost:8080/", want: "http://localhost:8080"},
		{name: "empty", raw: "", wantErr: true},
		{name: "spaces only", raw: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPServerAdapter_EmptyAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(HTTPClientConfig{}, logger.Nop())
	assert.Error(t, err)
}
