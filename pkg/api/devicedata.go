package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vlebourl/custom-biketrax/pkg/logger"
	"github.com/vlebourl/custom-biketrax/pkg/models"
)

// tripLookback bounds the trip report query; the device API only serves the
// latest completed trips within a window.
const tripLookback = 30 * 24 * time.Hour

// DeviceAPI is the Traccar-style device-data surface: device CRUD, positions,
// trip reports and the live socket.
type DeviceAPI struct {
	endpoint    string
	credentials CredentialsProvider
	httpClient  HTTPClient
	log         logger.Logger
}

// NewDeviceAPI constructs the device-data surface.
func NewDeviceAPI(endpoint string, credentials CredentialsProvider, httpClient HTTPClient, log logger.Logger) *DeviceAPI {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &DeviceAPI{
		endpoint:    endpoint,
		credentials: credentials,
		httpClient:  httpClient,
		log:         log.WithComponent("device-api"),
	}
}

func (d *DeviceAPI) do(ctx context.Context, op, method, path string, query url.Values, body []byte) (*http.Response, error) {
	u := d.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}

	token, err := d.credentials.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, transportError(op, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		resp.Body.Close()
		return nil, statusError(op, resp.StatusCode)
	}

	return resp, nil
}

// decodeList reads a JSON array of objects without losing number typing.
func decodeList(r io.Reader, record string) ([]map[string]interface{}, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var list []map[string]interface{}
	if err := dec.Decode(&list); err != nil {
		return nil, &models.DecodeError{Record: record, Reason: err.Error()}
	}

	return list, nil
}

// ListDevices fetches every device registered to the account.
func (d *DeviceAPI) ListDevices(ctx context.Context) ([]*models.Device, error) {
	resp, err := d.do(ctx, "list devices", http.MethodGet, "/devices", nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	rawList, err := decodeList(resp.Body, "device list")
	if err != nil {
		return nil, err
	}

	devices := make([]*models.Device, 0, len(rawList))

	for _, raw := range rawList {
		device, err := models.DecodeDevice(raw)
		if err != nil {
			return nil, err
		}

		devices = append(devices, device)
	}

	d.log.Debug().Int("count", len(devices)).Msg("Fetched device list")

	return devices, nil
}

// GetPosition fetches one position of a device by its position id.
func (d *DeviceAPI) GetPosition(ctx context.Context, deviceID, positionID int) (*models.Position, error) {
	query := url.Values{
		"deviceId": {fmt.Sprint(deviceID)},
		"id":       {fmt.Sprint(positionID)},
	}

	resp, err := d.do(ctx, "get position", http.MethodGet, "/positions", query, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	rawList, err := decodeList(resp.Body, "position list")
	if err != nil {
		return nil, err
	}

	if len(rawList) == 0 {
		return nil, fmt.Errorf("%w: position %d of device %d", ErrNotFound, positionID, deviceID)
	}

	return models.DecodePosition(rawList[0])
}

// GetTrip fetches the most recently completed trip of a device. A device with
// no trips in the report window yields (nil, nil).
func (d *DeviceAPI) GetTrip(ctx context.Context, deviceID int) (*models.Trip, error) {
	now := time.Now().UTC()
	query := url.Values{
		"deviceId": {fmt.Sprint(deviceID)},
		"from":     {now.Add(-tripLookback).Format(time.RFC3339)},
		"to":       {now.Format(time.RFC3339)},
	}

	resp, err := d.do(ctx, "get trip", http.MethodGet, "/reports/trips", query, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	rawList, err := decodeList(resp.Body, "trip report")
	if err != nil {
		return nil, err
	}

	var latest *models.Trip

	for _, raw := range rawList {
		trip, err := models.DecodeTrip(raw)
		if err != nil {
			return nil, err
		}

		if latest == nil || trip.EndTime.After(latest.EndTime) {
			latest = trip
		}
	}

	return latest, nil
}

// PutDevice writes a device record and returns the server's authoritative
// representation.
func (d *DeviceAPI) PutDevice(ctx context.Context, deviceID int, device *models.Device) (*models.Device, error) {
	body, err := json.Marshal(device.Encode())
	if err != nil {
		return nil, err
	}

	resp, err := d.do(ctx, "put device", http.MethodPut, fmt.Sprintf("/devices/%d", deviceID), nil, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError("put device", err)
	}

	return models.UnmarshalDevice(data)
}

// session establishes a device API session for the socket handshake. The
// session cookie, not the bearer token, authenticates the websocket.
func (d *DeviceAPI) session(ctx context.Context) (*models.Session, []*http.Cookie, error) {
	resp, err := d.do(ctx, "open session", http.MethodGet, "/session", nil, nil)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, transportError("open session", err)
	}

	session, err := models.UnmarshalSession(data)
	if err != nil {
		return nil, nil, err
	}

	return session, resp.Cookies(), nil
}
