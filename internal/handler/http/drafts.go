package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/theunsaid/draft-keeper/internal/logger"
	"github.com/theunsaid/draft-keeper/internal/service"
	"github.com/theunsaid/draft-keeper/internal/store"
	"github.com/theunsaid/draft-keeper/internal/utils"
	"github.com/theunsaid/draft-keeper/models"
)

// Draft handlers persist and return opaque ciphertext. The server never
// validates more than the shape of the payload; it has no key to do more.

func (h *Handler) createDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var draft models.EncryptedDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	draft.UserID = userID

	saved, err := h.services.DraftStoreService.SaveDraft(ctx, draft)
	if err != nil {
		h.writeDraftError(w, r, err, "error saving draft")
		return
	}

	utils.WriteJSON(w, saved, http.StatusCreated)
}

func (h *Handler) listDrafts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	drafts, err := h.services.DraftStoreService.ListDrafts(ctx, userID)
	if err != nil {
		h.writeDraftError(w, r, err, "error listing drafts")
		return
	}

	utils.WriteJSON(w, drafts, http.StatusOK)
}

func (h *Handler) getDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	draft, err := h.services.DraftStoreService.GetDraft(ctx, userID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDraftError(w, r, err, "error getting draft")
		return
	}

	utils.WriteJSON(w, draft, http.StatusOK)
}

func (h *Handler) updateDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var draft models.EncryptedDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	draft.UserID = userID

	// the path is authoritative for the draft identity
	draft.ID = chi.URLParam(r, "id")

	updated, err := h.services.DraftStoreService.UpdateDraft(ctx, draft)
	if err != nil {
		h.writeDraftError(w, r, err, "error updating draft")
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.DraftStoreService.DeleteDraft(ctx, userID, chi.URLParam(r, "id")); err != nil {
		h.writeDraftError(w, r, err, "error deleting draft")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeDraftError maps service errors from the draft store to HTTP status
// codes, logging each one with the request-scoped logger.
func (h *Handler) writeDraftError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromRequest(r)

	switch {
	case errors.Is(err, service.ErrInvalidDataProvided):
		log.Err(err).Msg("invalid data provided")
		http.Error(w, "invalid data provided", http.StatusBadRequest)
	case errors.Is(err, store.ErrDraftNotFound):
		log.Err(err).Msg("draft not found")
		http.Error(w, "draft not found", http.StatusNotFound)
	default:
		log.Err(err).Msg(msg)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
