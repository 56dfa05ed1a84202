// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Unsaid Authors

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/theunsaid/draft-keeper/internal/adapter"
	"github.com/theunsaid/draft-keeper/internal/crypto"
	"github.com/theunsaid/draft-keeper/internal/keystore"
	"github.com/theunsaid/draft-keeper/internal/logger"
	"github.com/theunsaid/draft-keeper/internal/mock"
	"github.com/theunsaid/draft-keeper/internal/utils"
	"github.com/theunsaid/draft-keeper/models"
)

func newTestSessionSvc(t *testing.T, ctrl *gomock.Controller) (SessionService, *keystore.Store, *mock.MockServerAdapter, *mock.MockDraftCache) {
	t.Helper()
	keys := keystore.New()
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockCache := mock.NewMockDraftCache(ctrl)
	svc := NewClientSessionService(keys, mockAdapter, mockCache, logger.Nop())
	return svc, keys, mockAdapter, mockCache
}

func signedTestToken(t *testing.T, userID int64) models.Token {
	t.Helper()
	token, err := utils.GenerateJWTToken("test-issuer", userID, time.Hour, "test-sign-key")
	require.NoError(t, err)
	return token
}

// ── SignUp ───────────────────────────────────────────────────────────────────

func TestClientSessionService_SignUp_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, keys, mockAdapter, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Register(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.Token, error) {
			assert.Equal(t, "writer", u.Login)

			// the server receives base64 salt and verifier, never the password
			salt, err := crypto.FromBase64(u.EncryptionSalt)
			require.NoError(t, err)
			assert.Len(t, salt, crypto.SaltSize)

			verifier, err := crypto.FromBase64(u.AuthVerifier)
			require.NoError(t, err)
			assert.Len(t, verifier, 32)
			assert.NotContains(t, u.AuthVerifier, "correct horse")

			return signedTestToken(t, 42), nil
		},
	)

	err := svc.SignUp(ctx, "writer", "correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, keys.Has(), "key must be published after a successful sign-up")
	assert.True(t, svc.Unlocked())
	assert.Equal(t, int64(42), svc.UserID())
}

func TestClientSessionService_SignUp_ServerError_LeavesStoreEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, keys, mockAdapter, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Register(ctx, gomock.Any()).Return(models.Token{}, adapter.ErrLoginExists)

	err := svc.SignUp(ctx, "writer", "correct horse battery staple")
	require.ErrorIs(t, err, ErrRegisterOnServer)

	assert.False(t, keys.Has(), "a failed sign-up must not leave a key behind")
	assert.Zero(t, svc.UserID())
}

func TestClientSessionService_SignUp_EmptyPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, keys, _, _ := newTestSessionSvc(t, ctrl)

	err := svc.SignUp(context.Background(), "writer", "")
	require.ErrorIs(t, err, crypto.ErrKeyDerivation)
	assert.False(t, keys.Has())
}

// ── LogIn ────────────────────────────────────────────────────────────────────

func TestClientSessionService_LogIn_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, keys, mockAdapter, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	salt, err := crypto.GenerateSalt()
	require.NoError(t, err)
	expectedKey, err := crypto.DeriveKey("correct horse battery staple", salt)
	require.NoError(t, err)
	expectedVerifier := crypto.ToBase64(crypto.AuthVerifier(expectedKey, "draft-keeper/auth/v1"))

	gomock.InOrder(
		mockAdapter.EXPECT().FetchSaltByLogin(ctx, "writer").Return(models.SaltRecord{Salt: crypto.ToBase64(salt)}, nil),
		mockAdapter.EXPECT().Login(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.Token, error) {
				assert.Equal(t, expectedVerifier, u.AuthVerifier)
				return signedTestToken(t, 7), nil
			},
		),
	)

	err = svc.LogIn(ctx, "writer", "correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, keys.Has())
	assert.True(t, expectedKey.Equal(keys.Key()), "the published key must match the deterministic derivation")
	assert.Equal(t, salt, keys.Salt())
	assert.Equal(t, int64(7), svc.UserID())
}

func TestClientSessionService_LogIn_WrongVerifier_LeavesStoreEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, keys, mockAdapter, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	salt, err := crypto.GenerateSalt()
	require.NoError(t, err)

	gomock.InOrder(
		mockAdapter.EXPECT().FetchSaltByLogin(ctx, "writer").Return(models.SaltRecord{Salt: crypto.ToBase64(salt)}, nil),
		mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(models.Token{}, adapter.ErrUnauthorized),
	)

	err = svc.LogIn(ctx, "writer", "wrong password")
	require.ErrorIs(t, err, ErrLoginOnServer)

	assert.False(t, keys.Has(), "a rejected login must not leave a key behind")
}

func TestClientSessionService_LogIn_UnknownLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, keys, mockAdapter, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().FetchSaltByLogin(ctx, "ghost").Return(models.SaltRecord{}, adapter.ErrNotFound)

	err := svc.LogIn(ctx, "ghost", "correct horse battery staple")
	require.ErrorIs(t, err, ErrLoginOnServer)
	assert.False(t, keys.Has())
}

// ── Reauthenticate ───────────────────────────────────────────────────────────

func TestClientSessionService_Reauthenticate_FromSessionSalt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, keys, mockAdapter, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	salt, err := crypto.GenerateSalt()
	require.NoError(t, err)

	gomock.InOrder(
		mockAdapter.EXPECT().FetchSaltByLogin(ctx, "writer").Return(models.SaltRecord{Salt: crypto.ToBase64(salt)}, nil),
		mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(signedTestToken(t, 7), nil),
	)
	require.NoError(t, svc.LogIn(ctx, "writer", "correct horse battery staple"))
	original := keys.Key()

	// no adapter calls expected: the salt is already in memory
	err = svc.Reauthenticate(ctx, "correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, original.Equal(keys.Key()), "re-deriving with the right password must reproduce the key")
}

func TestClientSessionService_Reauthenticate_FetchesSaltWhenMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, keys, mockAdapter, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	salt, err := crypto.GenerateSalt()
	require.NoError(t, err)

	mockAdapter.EXPECT().FetchSalt(ctx).Return(models.SaltRecord{Salt: crypto.ToBase64(salt)}, nil)

	err = svc.Reauthenticate(ctx, "correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, keys.Has())
	assert.Equal(t, salt, keys.Salt())
}

// ── LogOut ───────────────────────────────────────────────────────────────────

func TestClientSessionService_LogOut_ClearsEverything(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, keys, mockAdapter, mockCache := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	salt, err := crypto.GenerateSalt()
	require.NoError(t, err)

	gomock.InOrder(
		mockAdapter.EXPECT().FetchSaltByLogin(ctx, "writer").Return(models.SaltRecord{Salt: crypto.ToBase64(salt)}, nil),
		mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(signedTestToken(t, 7), nil),
	)
	require.NoError(t, svc.LogIn(ctx, "writer", "correct horse battery staple"))

	gomock.InOrder(
		mockAdapter.EXPECT().SetToken(""),
		mockCache.EXPECT().Purge(ctx).Return(nil),
	)

	require.NoError(t, svc.LogOut(ctx))

	assert.False(t, keys.Has(), "logout must clear the key store")
	assert.Nil(t, keys.Salt())
	assert.Zero(t, svc.UserID())
	assert.False(t, svc.Unlocked())
}

func TestClientSessionService_LogOut_CachePurgeError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, keys, mockAdapter, mockCache := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	purgeErr := errors.New("disk gone")
	mockAdapter.EXPECT().SetToken("")
	mockCache.EXPECT().Purge(ctx).Return(purgeErr)

	err := svc.LogOut(ctx)
	require.ErrorIs(t, err, purgeErr)

	// the key is gone regardless of the cache failure
	assert.False(t, keys.Has())
}
