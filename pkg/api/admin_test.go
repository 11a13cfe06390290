package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlebourl/custom-biketrax/pkg/logger"
)

func newAdminAPI(t *testing.T, handler http.HandlerFunc) *AdminAPI {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewAdminAPI(server.URL, staticCredentials("token-1"), nil, logger.NewTestLogger())
}

func TestGetSubscription(t *testing.T) {
	admin := newAdminAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/subscriptions/860-1", r.URL.Path)
		require.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		fmt.Fprint(w, `{
			"id": 17, "uniqueId": "860-1", "category": "trial",
			"trialDuration": 30, "trialEnd": "2023-06-01T00:00:00Z",
			"createdAt": "2023-03-01T09:00:00Z", "updatedAt": "2023-04-01T09:00:00Z"
		}`)
	})

	sub, err := admin.GetSubscription(context.Background(), "860-1")
	require.NoError(t, err)
	assert.Equal(t, "trial", sub.Category)
	assert.Equal(t, 30, sub.TrialDuration)
}

func TestGetSubscriptionUnknownDevice(t *testing.T) {
	admin := newAdminAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := admin.GetSubscription(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestArmDisarm(t *testing.T) {
	var paths []string

	admin := newAdminAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		paths = append(paths, r.URL.Path)
	})

	require.NoError(t, admin.Arm(context.Background(), "860-1"))
	require.NoError(t, admin.Disarm(context.Background(), "860-1"))

	assert.Equal(t, []string{"/devices/860-1/arm", "/devices/860-1/disarm"}, paths)
}
