package service

import (
	"github.com/theunsaid/draft-keeper/internal/adapter"
	"github.com/theunsaid/draft-keeper/internal/keystore"
	"github.com/theunsaid/draft-keeper/internal/logger"
	"github.com/theunsaid/draft-keeper/internal/store"
)

// ClientServices groups the client-side services around one shared key
// store. The key store instance is owned here and injected everywhere,
// there is exactly one slot for key material in the whole process.
type ClientServices struct {
	Keys            *keystore.Store
	SessionService  SessionService
	DraftService    DraftService
	CacheRefreshJob CacheRefreshJob
}

func NewClientServices(serverAdapter adapter.ServerAdapter, cache store.DraftCache, logger *logger.Logger) *ClientServices {
	keys := keystore.New()
	drafts := NewClientDraftService(keys, serverAdapter, cache, logger)

	return &ClientServices{
		Keys:            keys,
		SessionService:  NewClientSessionService(keys, serverAdapter, cache, logger),
		DraftService:    drafts,
		CacheRefreshJob: NewCacheRefreshJob(drafts),
	}
}
