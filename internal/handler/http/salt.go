package http

import (
	"errors"
	"net/http"

	"github.com/theunsaid/draft-keeper/internal/logger"
	"github.com/theunsaid/draft-keeper/internal/service"
	"github.com/theunsaid/draft-keeper/internal/store"
	"github.com/theunsaid/draft-keeper/internal/utils"
)

// accountSalt serves the per-account encryption salt for a login that is
// not yet authenticated. The client needs the salt before it can derive
// the key, and it needs the key before it can compute the auth verifier,
// so this endpoint is deliberately public. The salt is not a secret; it
// only diversifies key derivation.
func (h *Handler) accountSalt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	login := r.URL.Query().Get("login")
	if login == "" {
		log.Error().Msg("missing `login` query parameter")
		http.Error(w, "missing `login` query parameter", http.StatusBadRequest)
		return
	}

	salt, err := h.services.AuthService.SaltForLogin(ctx, login)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoUserWasFound):
			log.Err(err).Msg("no user was found")
			http.Error(w, "no user was found", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during salt lookup")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, salt, http.StatusOK)
}

// vaultSalt serves the authenticated user's own salt, e.g. when a new
// device holds a valid token but has not derived the key yet.
func (h *Handler) vaultSalt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	salt, err := h.services.AuthService.SaltForUser(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoUserWasFound):
			log.Err(err).Msg("no user was found")
			http.Error(w, "no user was found", http.StatusNotFound)
			return
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during salt lookup")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, salt, http.StatusOK)
}
