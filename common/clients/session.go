package clients

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/memorias-app/memorias/common/cache"
	"github.com/memorias-app/memorias/common/config"
	"github.com/memorias-app/memorias/common/models"
)

// ErrNoSession is returned when the provider rejects the presented token
var ErrNoSession = errors.New("no valid session")

// SessionProvider validates bearer tokens against the hosted auth service
type SessionProvider interface {
	Current(ctx context.Context, token string) (models.Session, error)
}

// SessionClient implements SessionProvider against the hosted auth provider's
// user endpoint. Validated sessions are cached for a short TTL keyed by a
// token digest, so the provider is not hit on every request.
type SessionClient struct {
	cfg    config.AuthConfig
	http   *HTTPClient
	cache  cache.Cache
	logger Logger
}

// providerUser mirrors the provider's user payload
type providerUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// NewSessionClient creates a session provider client
func NewSessionClient(cfg config.AuthConfig, httpClient *HTTPClient, sessionCache cache.Cache, logger Logger) *SessionClient {
	return &SessionClient{
		cfg:    cfg,
		http:   httpClient,
		cache:  sessionCache,
		logger: logger,
	}
}

// Current resolves the session for a bearer token. Returns ErrNoSession when
// the token is empty, expired, or rejected by the provider.
func (c *SessionClient) Current(ctx context.Context, token string) (models.Session, error) {
	if token == "" {
		return models.Session{}, ErrNoSession
	}

	cacheKey := sessionCacheKey(token)
	if data, found, _ := c.cache.Get(ctx, cacheKey); found {
		var session models.Session
		if err := json.Unmarshal(data, &session); err == nil {
			return session, nil
		}
	}

	userURL := fmt.Sprintf("%s/auth/v1/user", c.cfg.ProviderURL)
	headers := map[string]string{
		"Authorization": "Bearer " + token,
		"apikey":        c.cfg.APIKey,
	}

	resp, err := c.http.DoRequest(ctx, http.MethodGet, userURL, nil, headers)
	if err != nil {
		return models.Session{}, fmt.Errorf("session lookup: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusUnauthorized, http.StatusForbidden:
		return models.Session{}, ErrNoSession
	default:
		return models.Session{}, fmt.Errorf("session lookup: unexpected status %d", resp.StatusCode)
	}

	var user providerUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return models.Session{}, fmt.Errorf("session lookup: decode user: %w", err)
	}
	if user.ID == "" {
		return models.Session{}, ErrNoSession
	}

	session := models.Session{UserID: user.ID, Email: user.Email}

	if data, err := json.Marshal(session); err == nil {
		if err := c.cache.Set(ctx, cacheKey, data, c.cfg.SessionTTL); err != nil {
			c.logger.Warn("session cache write failed", "error", err)
		}
	}

	return session, nil
}

// sessionCacheKey derives a cache key from the token without storing the
// token itself
func sessionCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "session:" + hex.EncodeToString(sum[:])
}
