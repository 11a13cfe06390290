// Package api implements the three BikeTrax service surfaces the client
// depends on: identity (session acquisition), the Traccar-style device API,
// and the admin API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/vlebourl/custom-biketrax/pkg/logger"
	"github.com/vlebourl/custom-biketrax/pkg/models"
)

const credentialsMargin = 5 * time.Minute

// IdentityAPI authenticates against the identity service.
type IdentityAPI struct {
	endpoint   string
	username   string
	password   string
	httpClient HTTPClient
	log        logger.Logger
}

// NewIdentityAPI constructs the identity surface for one account.
func NewIdentityAPI(endpoint, username, password string, httpClient HTTPClient, log logger.Logger) *IdentityAPI {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &IdentityAPI{
		endpoint:   endpoint,
		username:   username,
		password:   password,
		httpClient: httpClient,
		log:        log.WithComponent("identity"),
	}
}

// Authenticate exchanges the account credentials for token material. Invalid
// credentials surface as ErrAuth; the caller must not retry those.
func (a *IdentityAPI) Authenticate(ctx context.Context) (*models.Credentials, error) {
	body, err := json.Marshal(map[string]string{
		"email":    a.username,
		"password": a.password,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/login", a.endpoint), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, transportError("authenticate", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("authenticate", resp.StatusCode)
	}

	var creds models.Credentials
	if err := json.NewDecoder(resp.Body).Decode(&creds); err != nil {
		return nil, &models.DecodeError{Record: "credentials", Reason: err.Error()}
	}

	creds.IssuedAt = time.Now()

	a.log.Debug().Int("expires_in", creds.ExpiresIn).Msg("Authenticated")

	return &creds, nil
}

// CachedCredentials wraps an authenticator and caches the access token until
// it nears expiry.
type CachedCredentials struct {
	authenticator interface {
		Authenticate(ctx context.Context) (*models.Credentials, error)
	}
	mu    sync.RWMutex
	creds *models.Credentials
}

// NewCachedCredentials creates a caching credentials provider around the
// identity surface.
func NewCachedCredentials(identity *IdentityAPI) *CachedCredentials {
	return &CachedCredentials{authenticator: identity}
}

// AccessToken returns a cached token if still valid, otherwise authenticates.
func (c *CachedCredentials) AccessToken(ctx context.Context) (string, error) {
	c.mu.RLock()
	if c.creds != nil && !c.creds.Expired(time.Now(), credentialsMargin) {
		token := c.creds.AccessToken
		c.mu.RUnlock()

		return token, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check in case another goroutine already refreshed.
	if c.creds != nil && !c.creds.Expired(time.Now(), credentialsMargin) {
		return c.creds.AccessToken, nil
	}

	creds, err := c.authenticator.Authenticate(ctx)
	if err != nil {
		return "", err
	}

	c.creds = creds

	return creds.AccessToken, nil
}

// Invalidate clears the cached token so the next call re-authenticates.
func (c *CachedCredentials) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.creds = nil
}
