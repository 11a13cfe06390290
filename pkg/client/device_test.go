package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vlebourl/custom-biketrax/pkg/api"
	"github.com/vlebourl/custom-biketrax/pkg/models"
)

func TestDeviceAccessors(t *testing.T) {
	account, _, _ := newTestAccount(t)

	model := "BikeTrax GPS"
	stolen := false

	device := makeDevice(1, "AAA", 10)
	device.Model = &model
	device.Attributes.Guarded = true
	device.Attributes.AutoGuard = true
	device.Attributes.Stolen = &stolen

	account.cache.setDevice(device)
	account.cache.setPosition(makePosition(10, 1))
	account.cache.setTrip(makeTrip(1))
	account.cache.setSubscription(makeSubscription(100, "AAA"))

	view := account.Device(1)

	name, ok := view.Name()
	require.True(t, ok)
	assert.Equal(t, "bike-AAA", name)

	uniqueID, ok := view.UniqueID()
	require.True(t, ok)
	assert.Equal(t, "AAA", uniqueID)

	gotModel, ok := view.Model()
	require.True(t, ok)
	assert.Equal(t, model, gotModel)

	status, ok := view.Status()
	require.True(t, ok)
	assert.Equal(t, "online", status)

	guarded, ok := view.IsGuarded()
	require.True(t, ok)
	assert.True(t, guarded)

	autoGuarded, ok := view.IsAutoGuarded()
	require.True(t, ok)
	assert.True(t, autoGuarded)

	gotStolen, ok := view.IsStolen()
	require.True(t, ok)
	assert.False(t, gotStolen)

	alarm, ok := view.IsAlarmTriggered()
	require.True(t, ok)
	assert.False(t, alarm)

	tracking, ok := view.IsTrackingEnabled()
	require.True(t, ok)
	assert.True(t, tracking)

	lat, ok := view.Latitude()
	require.True(t, ok)
	assert.InDelta(t, 48.137, lat, 1e-9)

	lon, ok := view.Longitude()
	require.True(t, ok)
	assert.InDelta(t, 11.575, lon, 1e-9)

	battery, ok := view.BatteryLevel()
	require.True(t, ok)
	assert.Equal(t, 87, battery)

	distance, ok := view.TotalDistance()
	require.True(t, ok)
	assert.InDelta(t, 1234.5, distance, 1e-9)

	until, ok := view.SubscriptionUntil()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), until)

	trip := view.Trip()
	require.NotNil(t, trip)
	assert.Equal(t, 1, trip.DeviceID)
}

func TestDeviceAccessorsWithoutRecords(t *testing.T) {
	account, _, _ := newTestAccount(t)

	view := account.Device(42)

	_, ok := view.Name()
	assert.False(t, ok)

	_, ok = view.Latitude()
	assert.False(t, ok)

	_, ok = view.SubscriptionUntil()
	assert.False(t, ok)

	assert.Nil(t, view.Trip())

	// A cached device with no position still answers device questions.
	account.cache.setDevice(makeDevice(42, "ZZZ", 0))

	_, ok = view.Name()
	assert.True(t, ok)

	_, ok = view.BatteryLevel()
	assert.False(t, ok)

	// Stolen was never reported, so it stays unknown.
	_, ok = view.IsStolen()
	assert.False(t, ok)
}

func TestSetGuardedArmsAndDisarms(t *testing.T) {
	account, _, admin := newTestAccount(t)
	ctx := context.Background()

	account.cache.setDevice(makeDevice(1, "AAA", 0))
	view := account.Device(1)

	admin.EXPECT().Arm(ctx, "AAA").Return(nil)
	require.NoError(t, view.SetGuarded(ctx, true))

	guarded, ok := view.IsGuarded()
	require.True(t, ok)
	assert.True(t, guarded)

	// The backend acknowledges the disarm but keeps reporting guarded=true,
	// and the cache mirrors the backend.
	admin.EXPECT().Disarm(ctx, "AAA").Return(nil)
	require.NoError(t, view.SetGuarded(ctx, false))

	guarded, ok = view.IsGuarded()
	require.True(t, ok)
	assert.True(t, guarded)
}

func TestSetGuardedFailureLeavesCacheUntouched(t *testing.T) {
	account, _, admin := newTestAccount(t)
	ctx := context.Background()

	account.cache.setDevice(makeDevice(1, "AAA", 0))
	view := account.Device(1)

	admin.EXPECT().Arm(ctx, "AAA").Return(api.ErrTransport)

	err := view.SetGuarded(ctx, true)
	require.ErrorIs(t, err, api.ErrTransport)

	guarded, ok := view.IsGuarded()
	require.True(t, ok)
	assert.False(t, guarded)
}

func TestSetStolenRoundTripsThroughBackend(t *testing.T) {
	account, devices, _ := newTestAccount(t)
	ctx := context.Background()

	account.cache.setDevice(makeDevice(1, "AAA", 0))
	view := account.Device(1)

	devices.EXPECT().PutDevice(ctx, 1, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int, device *models.Device) (*models.Device, error) {
			require.NotNil(t, device.Attributes.Stolen)
			assert.True(t, *device.Attributes.Stolen)
			return device, nil
		})

	require.NoError(t, view.SetStolen(ctx, true))

	stolen, ok := view.IsStolen()
	require.True(t, ok)
	assert.True(t, stolen)
}

func TestSetStolenFailureLeavesCacheUntouched(t *testing.T) {
	account, devices, _ := newTestAccount(t)
	ctx := context.Background()

	account.cache.setDevice(makeDevice(1, "AAA", 0))
	view := account.Device(1)

	devices.EXPECT().PutDevice(ctx, 1, gomock.Any()).Return(nil, api.ErrTransport)

	err := view.SetStolen(ctx, true)
	require.ErrorIs(t, err, api.ErrTransport)

	_, ok := view.IsStolen()
	assert.False(t, ok, "failed write must not leak into the cache")
}

func TestSetTrackingEnabled(t *testing.T) {
	account, devices, _ := newTestAccount(t)
	ctx := context.Background()

	account.cache.setDevice(makeDevice(1, "AAA", 0))
	view := account.Device(1)

	devices.EXPECT().PutDevice(ctx, 1, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int, device *models.Device) (*models.Device, error) {
			assert.True(t, device.Disabled)
			return device, nil
		})

	require.NoError(t, view.SetTrackingEnabled(ctx, false))

	tracking, ok := view.IsTrackingEnabled()
	require.True(t, ok)
	assert.False(t, tracking)
}

func TestMutationsOnUnknownDevice(t *testing.T) {
	account, _, _ := newTestAccount(t)
	ctx := context.Background()

	view := account.Device(99)

	require.ErrorIs(t, view.SetGuarded(ctx, true), api.ErrNotFound)
	require.ErrorIs(t, view.SetStolen(ctx, true), api.ErrNotFound)
	require.ErrorIs(t, view.SetTrackingEnabled(ctx, false), api.ErrNotFound)
}
