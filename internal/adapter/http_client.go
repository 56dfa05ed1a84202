package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/theunsaid/draft-keeper/internal/logger"
	"github.com/theunsaid/draft-keeper/internal/utils"
	"github.com/theunsaid/draft-keeper/models"
)

type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpServerAdapter struct {
	client *resty.Client
	logger *logger.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. The base URL is normalised (scheme added when missing,
// trailing slash stripped) and validated before use.
func NewHTTPServerAdapter(cfg HTTPClientConfig, log *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout)

	return &httpServerAdapter{client: cli, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+h.Token())
}

// Register implements [ServerAdapter]. POSTs login, verifier, and salt to
// /api/auth/register; on success the bearer token from the Authorization
// response header is stored for subsequent calls.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/register")
	if err != nil {
		return models.Token{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	return h.takeToken(resp)
}

// Login implements [ServerAdapter].
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/login")
	if err != nil {
		return models.Token{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	return h.takeToken(resp)
}

// FetchSaltByLogin implements [ServerAdapter]. Unauthenticated by design:
// the salt must be available before login, and it is not a secret.
func (h *httpServerAdapter) FetchSaltByLogin(ctx context.Context, login string) (models.SaltRecord, error) {
	var rec models.SaltRecord
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("login", login).
		SetResult(&rec).
		Get("/api/auth/salt")
	if err != nil {
		return models.SaltRecord{}, fmt.Errorf("fetch salt request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SaltRecord{}, err
	}

	return rec, nil
}

// FetchSalt implements [ServerAdapter].
func (h *httpServerAdapter) FetchSalt(ctx context.Context) (models.SaltRecord, error) {
	var rec models.SaltRecord
	resp, err := h.authedRequest(ctx).
		SetResult(&rec).
		Get("/api/vault/salt")
	if err != nil {
		return models.SaltRecord{}, fmt.Errorf("fetch salt request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SaltRecord{}, err
	}

	return rec, nil
}

// UploadDraft implements [ServerAdapter].
func (h *httpServerAdapter) UploadDraft(ctx context.Context, draft models.EncryptedDraft) (models.EncryptedDraft, error) {
	var saved models.EncryptedDraft
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(draft).
		SetResult(&saved).
		Post("/api/drafts/")
	if err != nil {
		return models.EncryptedDraft{}, fmt.Errorf("upload draft request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.EncryptedDraft{}, err
	}

	return saved, nil
}

// ListDrafts implements [ServerAdapter].
func (h *httpServerAdapter) ListDrafts(ctx context.Context) ([]models.EncryptedDraft, error) {
	var drafts []models.EncryptedDraft
	resp, err := h.authedRequest(ctx).
		SetResult(&drafts).
		Get("/api/drafts/")
	if err != nil {
		return nil, fmt.Errorf("list drafts request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return drafts, nil
}

// GetDraft implements [ServerAdapter].
func (h *httpServerAdapter) GetDraft(ctx context.Context, draftID string) (models.EncryptedDraft, error) {
	var draft models.EncryptedDraft
	resp, err := h.authedRequest(ctx).
		SetResult(&draft).
		Get("/api/drafts/" + url.PathEscape(draftID))
	if err != nil {
		return models.EncryptedDraft{}, fmt.Errorf("get draft request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.EncryptedDraft{}, err
	}

	return draft, nil
}

// UpdateDraft implements [ServerAdapter].
func (h *httpServerAdapter) UpdateDraft(ctx context.Context, draft models.EncryptedDraft) (models.EncryptedDraft, error) {
	var saved models.EncryptedDraft
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(draft).
		SetResult(&saved).
		Put("/api/drafts/" + url.PathEscape(draft.ID))
	if err != nil {
		return models.EncryptedDraft{}, fmt.Errorf("update draft request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.EncryptedDraft{}, err
	}

	return saved, nil
}

// DeleteDraft implements [ServerAdapter].
func (h *httpServerAdapter) DeleteDraft(ctx context.Context, draftID string) error {
	resp, err := h.authedRequest(ctx).
		Delete("/api/drafts/" + url.PathEscape(draftID))
	if err != nil {
		return fmt.Errorf("delete draft request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) takeToken(resp *resty.Response) (models.Token, error) {
	tokenString, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("parse bearer token: %w", err)
	}

	h.SetToken(tokenString)
	return models.Token{SignedString: tokenString}, nil
}

func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrLoginExists
	case http.StatusBadRequest:
		return ErrInvalidRequest
	default:
		return fmt.Errorf("%w: status %d", ErrServerFailure, resp.StatusCode())
	}
}
