package service

import (
	"github.com/theunsaid/draft-keeper/internal/config"
	"github.com/theunsaid/draft-keeper/internal/logger"
	"github.com/theunsaid/draft-keeper/internal/store"
)

// Services groups the server-side services.
type Services struct {
	AuthService       AuthService
	DraftStoreService DraftStoreService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:       NewAuthService(storages.UserRepository, cfg.App, logger),
		DraftStoreService: NewDraftStoreService(storages.DraftRepository, logger),
	}
}
