package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlebourl/custom-biketrax/pkg/logger"
	"github.com/vlebourl/custom-biketrax/pkg/models"
)

func TestIdentityAuthenticate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "rider@example.com", body["email"])
		require.Equal(t, "hunter2", body["password"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "token-1",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	defer server.Close()

	identity := NewIdentityAPI(server.URL, "rider@example.com", "hunter2", nil, logger.NewTestLogger())

	creds, err := identity.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1", creds.AccessToken)
	assert.Equal(t, 3600, creds.ExpiresIn)
	assert.WithinDuration(t, time.Now(), creds.IssuedAt, time.Minute)
}

func TestIdentityAuthenticateInvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	identity := NewIdentityAPI(server.URL, "rider@example.com", "wrong", nil, logger.NewTestLogger())

	_, err := identity.Authenticate(context.Background())
	require.ErrorIs(t, err, ErrAuth)
}

func TestIdentityAuthenticateTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	server.Close() // connection refused

	identity := NewIdentityAPI(server.URL, "rider@example.com", "hunter2", nil, logger.NewTestLogger())

	_, err := identity.Authenticate(context.Background())
	require.ErrorIs(t, err, ErrTransport)
}

func TestCachedCredentialsReusesToken(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "token-1",
			"expires_in":   3600,
		})
	}))
	defer server.Close()

	identity := NewIdentityAPI(server.URL, "rider@example.com", "hunter2", nil, logger.NewTestLogger())
	cached := NewCachedCredentials(identity)

	for i := 0; i < 3; i++ {
		token, err := cached.AccessToken(context.Background())
		require.NoError(t, err)
		require.Equal(t, "token-1", token)
	}

	assert.Equal(t, int32(1), calls.Load())

	cached.Invalidate()

	_, err := cached.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCachedCredentialsPropagatesAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	identity := NewIdentityAPI(server.URL, "rider@example.com", "wrong", nil, logger.NewTestLogger())
	cached := NewCachedCredentials(identity)

	_, err := cached.AccessToken(context.Background())
	require.ErrorIs(t, err, ErrAuth)
}

func TestAuthenticateMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	identity := NewIdentityAPI(server.URL, "rider@example.com", "hunter2", nil, logger.NewTestLogger())

	_, err := identity.Authenticate(context.Background())

	var decodeErr *models.DecodeError
	require.ErrorAs(t, err, &decodeErr)
}
