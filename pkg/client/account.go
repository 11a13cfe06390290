// Package client maintains a continuously refreshed in-memory view of the
// devices on a BikeTrax account, combining periodic pull refresh with a
// reconnecting push stream.
package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vlebourl/custom-biketrax/pkg/api"
	"github.com/vlebourl/custom-biketrax/pkg/logger"
	"github.com/vlebourl/custom-biketrax/pkg/models"
)

const (
	defaultIdentityEndpoint = "https://api.powunity.com/v1"
	defaultDeviceEndpoint   = "https://api.powunity.com/traccar/api"
	defaultAdminEndpoint    = "https://api.powunity.com/admin/api"
)

// Config assembles the full API stack for one account.
type Config struct {
	Username string
	Password string

	// Endpoint overrides, empty for production defaults.
	IdentityEndpoint string
	DeviceEndpoint   string
	AdminEndpoint    string

	HTTPClient api.HTTPClient
}

// Account owns the device cache and supervises both data sources feeding it:
// scheduler-driven pull refresh and the push stream.
type Account struct {
	devices DeviceService
	admin   AdminService
	clock   Clock
	log     logger.Logger

	cache *cache

	mu         sync.Mutex
	cancel     context.CancelFunc
	done       chan struct{}
	supervisor *supervisor
}

// New wires the identity, device and admin surfaces from config and returns
// an account around them.
func New(cfg Config, log logger.Logger) *Account {
	identityEndpoint := cfg.IdentityEndpoint
	if identityEndpoint == "" {
		identityEndpoint = defaultIdentityEndpoint
	}

	deviceEndpoint := cfg.DeviceEndpoint
	if deviceEndpoint == "" {
		deviceEndpoint = defaultDeviceEndpoint
	}

	adminEndpoint := cfg.AdminEndpoint
	if adminEndpoint == "" {
		adminEndpoint = defaultAdminEndpoint
	}

	identity := api.NewIdentityAPI(identityEndpoint, cfg.Username, cfg.Password, cfg.HTTPClient, log)
	credentials := api.NewCachedCredentials(identity)

	return NewAccount(
		api.NewDeviceAPI(deviceEndpoint, credentials, cfg.HTTPClient, log),
		api.NewAdminAPI(adminEndpoint, credentials, cfg.HTTPClient, log),
		nil,
		log,
	)
}

// NewAccount creates an account with explicit dependencies. A nil clock
// selects the wall clock.
func NewAccount(devices DeviceService, admin AdminService, clock Clock, log logger.Logger) *Account {
	if clock == nil {
		clock = realClock{}
	}

	return &Account{
		devices: devices,
		admin:   admin,
		clock:   clock,
		log:     log.WithComponent("account"),
		cache:   newCache(),
	}
}

// UpdateDevices fetches the device list and replaces the device mapping
// wholesale. The fetch is all-or-nothing: on error the cache is untouched.
// Devices that disappeared upstream are dropped together with their
// position, trip and subscription records.
func (a *Account) UpdateDevices(ctx context.Context) error {
	list, err := a.devices.ListDevices(ctx)
	if err != nil {
		return fmt.Errorf("update devices: %w", err)
	}

	next := make(map[int]*models.Device, len(list))
	for _, device := range list {
		next[device.ID] = device
	}

	removed := a.cache.replaceDevices(next)
	if len(removed) > 0 {
		a.log.Debug().Ints("removed", removed).Msg("Dropped devices no longer present upstream")
	}

	a.log.Debug().Int("count", len(next)).Msg("Device list replaced")

	return nil
}

// RefreshDevice sequentially fetches position, trip and subscription for one
// device and merges each into the cache. The three sub-fetches fail
// independently; partial progress is kept and every failure is reported.
func (a *Account) RefreshDevice(ctx context.Context, id int) error {
	device, ok := a.cache.device(id)
	if !ok {
		return fmt.Errorf("%w: device %d not in cache", api.ErrNotFound, id)
	}

	var errs []error

	// No position pointer means the device has not reported a fix yet.
	if device.PositionID != 0 {
		position, err := a.devices.GetPosition(ctx, id, device.PositionID)
		if err != nil {
			errs = append(errs, fmt.Errorf("position of device %d: %w", id, err))
		} else {
			a.cache.setPosition(position)
		}
	}

	trip, err := a.devices.GetTrip(ctx, id)
	if err != nil {
		errs = append(errs, fmt.Errorf("trip of device %d: %w", id, err))
	} else if trip != nil {
		a.cache.setTrip(trip)
	}

	subscription, err := a.admin.GetSubscription(ctx, device.UniqueID)
	if err != nil {
		errs = append(errs, fmt.Errorf("subscription of device %d: %w", id, err))
	} else {
		a.cache.setSubscription(subscription)
	}

	return errors.Join(errs...)
}

// Refresh runs one full pull cycle: device list first, then the per-device
// records. Intended to be driven by an external scheduler on a fixed
// interval; a failed cycle leaves previously cached data intact.
func (a *Account) Refresh(ctx context.Context) error {
	if err := a.UpdateDevices(ctx); err != nil {
		return err
	}

	var errs []error

	for _, id := range a.cache.deviceIDs() {
		if err := a.RefreshDevice(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Start launches the stream supervisor. Calling it while the stream is
// already running is a no-op. onUpdate fires once per stream record that
// changed cache state; it may be nil.
func (a *Account) Start(onUpdate func()) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancel != nil {
		return
	}

	a.log.Debug().Msg("Starting the stream supervisor")

	ctx, cancel := context.WithCancel(context.Background())
	s := newSupervisor(a.devices, a.cache, a.clock, onUpdate, a.log)
	done := make(chan struct{})

	a.cancel = cancel
	a.done = done
	a.supervisor = s

	go func() {
		defer close(done)
		s.run(ctx)
	}()
}

// Stop cancels the stream supervisor and waits for it to exit. Idempotent.
func (a *Account) Stop() {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done, a.supervisor = nil, nil, nil
	a.mu.Unlock()

	if cancel == nil {
		return
	}

	a.log.Debug().Msg("Stopping the stream supervisor")

	cancel()
	<-done
}

// StreamState reports the supervisor's lifecycle state.
func (a *Account) StreamState() StreamState {
	a.mu.Lock()
	s := a.supervisor
	a.mu.Unlock()

	if s == nil {
		return StreamStopped
	}

	return s.state()
}

// Device returns the view of one device id. The view is always usable for
// reads; mutating operations fail while the id is not in the cache.
func (a *Account) Device(id int) *Device {
	return &Device{account: a, id: id}
}

// DeviceByName returns the view of the cached device with the given name.
// The lowest id wins when names collide.
func (a *Account) DeviceByName(name string) (*Device, bool) {
	for _, id := range a.cache.deviceIDs() {
		if device, ok := a.cache.device(id); ok && device.Name == name {
			return &Device{account: a, id: id}, true
		}
	}

	return nil, false
}

// Devices returns views of every cached device, ordered by id.
func (a *Account) Devices() []*Device {
	ids := a.cache.deviceIDs()

	views := make([]*Device, 0, len(ids))
	for _, id := range ids {
		views = append(views, &Device{account: a, id: id})
	}

	return views
}
