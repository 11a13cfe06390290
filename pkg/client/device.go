package client

import (
	"context"
	"fmt"
	"time"

	"github.com/vlebourl/custom-biketrax/pkg/api"
	"github.com/vlebourl/custom-biketrax/pkg/models"
)

// Device is a stable read/write view onto one tracker in the account cache.
// Views stay valid across refreshes; accessors report ok=false while the
// backing record is absent.
type Device struct {
	account *Account
	id      int
}

// ID returns the device id the view is bound to.
func (d *Device) ID() int {
	return d.id
}

// UniqueID returns the tracker serial.
func (d *Device) UniqueID() (string, bool) {
	device, ok := d.account.cache.device(d.id)
	if !ok {
		return "", false
	}

	return device.UniqueID, true
}

// Name returns the user-assigned device name.
func (d *Device) Name() (string, bool) {
	device, ok := d.account.cache.device(d.id)
	if !ok {
		return "", false
	}

	return device.Name, true
}

// Model returns the hardware model, when the backend reports one.
func (d *Device) Model() (string, bool) {
	device, ok := d.account.cache.device(d.id)
	if !ok || device.Model == nil {
		return "", false
	}

	return *device.Model, true
}

// Status returns the backend connectivity status string.
func (d *Device) Status() (string, bool) {
	device, ok := d.account.cache.device(d.id)
	if !ok {
		return "", false
	}

	return device.Status, true
}

// LastUpdated returns the time the backend last heard from the tracker.
func (d *Device) LastUpdated() (time.Time, bool) {
	device, ok := d.account.cache.device(d.id)
	if !ok {
		return time.Time{}, false
	}

	return device.LastUpdate, true
}

// IsGuarded reports whether the alarm is armed.
func (d *Device) IsGuarded() (bool, bool) {
	device, ok := d.account.cache.device(d.id)
	if !ok {
		return false, false
	}

	return device.Attributes.Guarded, true
}

// IsAutoGuarded reports whether the tracker arms itself automatically.
func (d *Device) IsAutoGuarded() (bool, bool) {
	device, ok := d.account.cache.device(d.id)
	if !ok {
		return false, false
	}

	return device.Attributes.AutoGuard, true
}

// IsStolen reports the stolen flag. ok is false when the record is absent or
// the backend has never set the flag.
func (d *Device) IsStolen() (bool, bool) {
	device, ok := d.account.cache.device(d.id)
	if !ok || device.Attributes.Stolen == nil {
		return false, false
	}

	return *device.Attributes.Stolen, true
}

// IsAlarmTriggered reports whether the alarm is currently firing.
func (d *Device) IsAlarmTriggered() (bool, bool) {
	device, ok := d.account.cache.device(d.id)
	if !ok {
		return false, false
	}

	return device.Attributes.Alarm, true
}

// IsTrackingEnabled reports whether the tracker is enabled on the backend.
func (d *Device) IsTrackingEnabled() (bool, bool) {
	device, ok := d.account.cache.device(d.id)
	if !ok {
		return false, false
	}

	return !device.Disabled, true
}

// Latitude returns the latitude of the last fix.
func (d *Device) Latitude() (float64, bool) {
	position, ok := d.account.cache.position(d.id)
	if !ok {
		return 0, false
	}

	return position.Latitude, true
}

// Longitude returns the longitude of the last fix.
func (d *Device) Longitude() (float64, bool) {
	position, ok := d.account.cache.position(d.id)
	if !ok {
		return 0, false
	}

	return position.Longitude, true
}

// Altitude returns the altitude of the last fix in meters.
func (d *Device) Altitude() (float64, bool) {
	position, ok := d.account.cache.position(d.id)
	if !ok {
		return 0, false
	}

	return position.Altitude, true
}

// Speed returns the speed of the last fix in knots.
func (d *Device) Speed() (float64, bool) {
	position, ok := d.account.cache.position(d.id)
	if !ok {
		return 0, false
	}

	return position.Speed, true
}

// Course returns the heading of the last fix in degrees.
func (d *Device) Course() (float64, bool) {
	position, ok := d.account.cache.position(d.id)
	if !ok {
		return 0, false
	}

	return position.Course, true
}

// Accuracy returns the fix accuracy in meters.
func (d *Device) Accuracy() (float64, bool) {
	position, ok := d.account.cache.position(d.id)
	if !ok {
		return 0, false
	}

	return position.Accuracy, true
}

// BatteryLevel returns the battery charge percentage from the last fix.
func (d *Device) BatteryLevel() (int, bool) {
	position, ok := d.account.cache.position(d.id)
	if !ok {
		return 0, false
	}

	return position.Attributes.BatteryLevel, true
}

// TotalDistance returns the odometer reading in kilometers.
func (d *Device) TotalDistance() (float64, bool) {
	position, ok := d.account.cache.position(d.id)
	if !ok {
		return 0, false
	}

	return position.Attributes.TotalDistance / 1000, true
}

// FixTime returns the timestamp of the last fix.
func (d *Device) FixTime() (time.Time, bool) {
	position, ok := d.account.cache.position(d.id)
	if !ok {
		return time.Time{}, false
	}

	return position.FixTime, true
}

// SubscriptionUntil returns the end of the current subscription or trial.
func (d *Device) SubscriptionUntil() (time.Time, bool) {
	device, ok := d.account.cache.device(d.id)
	if !ok {
		return time.Time{}, false
	}

	subscription, ok := d.account.cache.subscription(device.UniqueID)
	if !ok {
		return time.Time{}, false
	}

	return subscription.TrialEnd, true
}

// Trip returns the most recent trip, or nil when none is cached.
func (d *Device) Trip() *models.Trip {
	trip, ok := d.account.cache.trip(d.id)
	if !ok {
		return nil
	}

	return trip
}

// SetGuarded arms or disarms the tracker. The backend acknowledges both
// commands without a body, and it reports guarded=true on the follow-up
// device record in either case, so the cached record mirrors that.
func (d *Device) SetGuarded(ctx context.Context, guarded bool) error {
	device, ok := d.account.cache.device(d.id)
	if !ok {
		return fmt.Errorf("%w: device %d not in cache", api.ErrNotFound, d.id)
	}

	var err error
	if guarded {
		err = d.account.admin.Arm(ctx, device.UniqueID)
	} else {
		err = d.account.admin.Disarm(ctx, device.UniqueID)
	}

	if err != nil {
		return fmt.Errorf("set guarded on device %d: %w", d.id, err)
	}

	updated := device.Clone()
	updated.Attributes.Guarded = true
	d.account.cache.setDevice(updated)

	return nil
}

// SetStolen updates the stolen flag on the backend. The cache picks up the
// record the backend returns; a failed write leaves the cache untouched.
func (d *Device) SetStolen(ctx context.Context, stolen bool) error {
	return d.put(ctx, "set stolen", func(device *models.Device) {
		device.Attributes.Stolen = &stolen
	})
}

// SetTrackingEnabled enables or disables the tracker on the backend.
func (d *Device) SetTrackingEnabled(ctx context.Context, enabled bool) error {
	return d.put(ctx, "set tracking", func(device *models.Device) {
		device.Disabled = !enabled
	})
}

func (d *Device) put(ctx context.Context, op string, mutate func(*models.Device)) error {
	device, ok := d.account.cache.device(d.id)
	if !ok {
		return fmt.Errorf("%w: device %d not in cache", api.ErrNotFound, d.id)
	}

	updated := device.Clone()
	mutate(updated)

	stored, err := d.account.devices.PutDevice(ctx, d.id, updated)
	if err != nil {
		return fmt.Errorf("%s on device %d: %w", op, d.id, err)
	}

	d.account.cache.setDevice(stored)

	return nil
}
