package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/vlebourl/custom-biketrax/pkg/logger"
	"github.com/vlebourl/custom-biketrax/pkg/models"
)

// AdminAPI is the admin surface: guard commands and subscription lookup. It
// addresses devices by unique id, unlike the device API.
type AdminAPI struct {
	endpoint    string
	credentials CredentialsProvider
	httpClient  HTTPClient
	log         logger.Logger
}

// NewAdminAPI constructs the admin surface.
func NewAdminAPI(endpoint string, credentials CredentialsProvider, httpClient HTTPClient, log logger.Logger) *AdminAPI {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &AdminAPI{
		endpoint:    endpoint,
		credentials: credentials,
		httpClient:  httpClient,
		log:         log.WithComponent("admin-api"),
	}
}

func (a *AdminAPI) do(ctx context.Context, op, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, a.endpoint+path, http.NoBody)
	if err != nil {
		return nil, err
	}

	token, err := a.credentials.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, transportError(op, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		resp.Body.Close()
		return nil, statusError(op, resp.StatusCode)
	}

	return resp, nil
}

// GetSubscription fetches the billing state of a device by its unique id.
func (a *AdminAPI) GetSubscription(ctx context.Context, uniqueID string) (*models.Subscription, error) {
	resp, err := a.do(ctx, "get subscription", http.MethodGet, "/subscriptions/"+uniqueID)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError("get subscription", err)
	}

	return models.UnmarshalSubscription(data)
}

// Arm enables the guard on a device.
func (a *AdminAPI) Arm(ctx context.Context, uniqueID string) error {
	return a.command(ctx, "arm", uniqueID)
}

// Disarm disables the guard on a device.
func (a *AdminAPI) Disarm(ctx context.Context, uniqueID string) error {
	return a.command(ctx, "disarm", uniqueID)
}

func (a *AdminAPI) command(ctx context.Context, command, uniqueID string) error {
	path := fmt.Sprintf("/devices/%s/%s", uniqueID, command)

	resp, err := a.do(ctx, command, http.MethodPost, path)
	if err != nil {
		return err
	}

	resp.Body.Close()

	a.log.Debug().Str("unique_id", uniqueID).Str("command", command).Msg("Guard command sent")

	return nil
}
