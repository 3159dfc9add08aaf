// Package web adapts the flow engine to net/http. The redirect and the
// callback arrive on different requests, so each login creates its own
// engine and parks it in a pending map keyed by the CSRF state until the
// provider calls back.
package web

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/oauthkit/oauthkit/internal/analytics"
	"github.com/oauthkit/oauthkit/internal/config"
	"github.com/oauthkit/oauthkit/internal/logger"
	"github.com/oauthkit/oauthkit/internal/oauth/flow"
	"github.com/oauthkit/oauthkit/internal/oauth/models"
	"github.com/oauthkit/oauthkit/internal/oauth/provider"
	"github.com/oauthkit/oauthkit/internal/requester"
	"github.com/oauthkit/oauthkit/internal/storage"
	"github.com/oauthkit/oauthkit/internal/utils"
	"go.uber.org/zap"
)

// OnSuccess is invoked after a callback exchange succeeds, with the
// stored user id (the identity subject when available) and the tokens.
type OnSuccess func(userID string, tokens *models.TokenSet)

// Handler serves the login/callback pair for one provider.
type Handler struct {
	cfg     config.OAuthConfig
	desc    provider.Descriptor
	doer    requester.Doer
	store   storage.TokenStore
	tracker *analytics.Tracker
	success OnSuccess

	mu      sync.Mutex
	pending map[string]*flow.Client
}

// NewHandler builds a web adapter. store, tracker and onSuccess are all
// optional.
func NewHandler(cfg config.OAuthConfig, doer requester.Doer, store storage.TokenStore, tracker *analytics.Tracker, onSuccess OnSuccess) (*Handler, error) {
	desc, err := provider.Resolve(cfg.Provider)
	if err != nil {
		return nil, err
	}
	if cfg.Provider == provider.NameMicrosoft && cfg.Tenant != "" {
		desc = provider.Microsoft(cfg.Tenant)
	}
	return &Handler{
		cfg:     cfg,
		desc:    desc,
		doer:    doer,
		store:   store,
		tracker: tracker,
		success: onSuccess,
		pending: make(map[string]*flow.Client),
	}, nil
}

// RegisterRoutes mounts the handler on a mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/auth/login", h.HandleLogin)
	mux.HandleFunc("/auth/callback", h.HandleCallback)
}

// HandleLogin starts a new flow and redirects the browser to the
// provider's authorization endpoint.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	client, err := flow.NewClient(flow.Config{
		Provider:     h.desc,
		ClientID:     h.cfg.ClientID,
		ClientSecret: h.cfg.ClientSecret,
		RedirectURI:  h.cfg.RedirectURI,
		Scopes:       h.cfg.Scopes,
		UsePKCE:      h.cfg.UsePKCE,
	}, h.doer)
	if err != nil {
		logger.Error("failed to build flow engine", zap.Error(err))
		utils.WriteError(w, "server_error", err.Error(), http.StatusInternalServerError)
		return
	}

	authURL, err := client.AuthorizationURL(flow.AuthOptions{})
	if err != nil {
		utils.WriteError(w, "server_error", err.Error(), http.StatusInternalServerError)
		return
	}

	state, _ := client.FlowState()
	h.mu.Lock()
	h.pending[state] = client
	h.mu.Unlock()

	h.track(analytics.EventAuthorization, "", true, "", 0)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// HandleCallback receives the provider redirect, matches it to the
// pending flow by state, and completes the code exchange.
func (h *Handler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	if errCode := query.Get("error"); errCode != "" {
		h.track(analytics.EventExchange, "", false, errCode, 0)
		utils.WriteError(w, errCode, query.Get("error_description"), http.StatusBadRequest)
		return
	}

	code := query.Get("code")
	state := query.Get("state")
	if code == "" {
		utils.WriteError(w, "invalid_request", "Code is required", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	client, ok := h.pending[state]
	delete(h.pending, state)
	h.mu.Unlock()
	if !ok {
		h.track(analytics.EventExchange, "", false, "unknown state", 0)
		utils.WriteError(w, "invalid_state", "No pending flow matches this state", http.StatusBadRequest)
		return
	}

	start := time.Now()
	tokens, err := client.ExchangeCode(r.Context(), code, state)
	elapsed := time.Since(start)
	if err != nil {
		logger.Error("code exchange failed", zap.Error(err))
		h.track(analytics.EventExchange, "", false, err.Error(), elapsed)
		status := http.StatusBadGateway
		if errors.Is(err, flow.ErrInvalidState) {
			status = http.StatusBadRequest
		}
		utils.WriteError(w, "exchange_failed", err.Error(), status)
		return
	}

	userID := h.resolveUserID(r, client, tokens)
	h.track(analytics.EventExchange, userID, true, "", elapsed)

	if h.store != nil {
		if err := h.store.Save(userID, tokens); err != nil {
			logger.Error("failed to persist tokens", zap.Error(err), zap.String("user_id", userID))
		}
	}
	if h.success != nil {
		h.success(userID, tokens)
	}

	utils.WriteJSON(w, map[string]interface{}{
		"provider": h.desc.Name,
		"user_id":  userID,
		"tokens":   tokens,
	})
}

// resolveUserID asks the identity endpoint for a stable subject and
// falls back to the state value when the provider has none.
func (h *Handler) resolveUserID(r *http.Request, client *flow.Client, tokens *models.TokenSet) string {
	if h.desc.SupportsUserInfo() {
		info, err := client.UserInfo(r.Context(), tokens.AccessToken)
		if err == nil && info.ID != "" {
			return info.ID
		}
		if err != nil {
			logger.Warn("identity lookup failed", zap.Error(err))
		}
	}
	return "anonymous-" + flow.GenerateState()[:8]
}

func (h *Handler) track(eventType analytics.EventType, userID string, success bool, errMsg string, duration time.Duration) {
	if h.tracker == nil {
		return
	}
	if err := h.tracker.TrackEvent(analytics.Event{
		Type:     eventType,
		Provider: h.desc.Name,
		UserID:   userID,
		Success:  success,
		Error:    errMsg,
		Duration: duration,
	}); err != nil {
		logger.Warn("failed to track event", zap.Error(err))
	}
}

// PendingCount reports how many flows await their callback.
func (h *Handler) PendingCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pending)
}
