package client

//go:generate mockgen -destination=mock_client.go -package=client github.com/vlebourl/custom-biketrax/pkg/client DeviceService,AdminService

import (
	"context"
	"time"

	"github.com/vlebourl/custom-biketrax/pkg/api"
	"github.com/vlebourl/custom-biketrax/pkg/models"
)

// DeviceService is the device-data surface the account depends on.
type DeviceService interface {
	ListDevices(ctx context.Context) ([]*models.Device, error)
	GetPosition(ctx context.Context, deviceID, positionID int) (*models.Position, error)
	GetTrip(ctx context.Context, deviceID int) (*models.Trip, error)
	PutDevice(ctx context.Context, deviceID int, device *models.Device) (*models.Device, error)
	OpenStream(ctx context.Context) (api.Stream, error)
}

// AdminService is the admin surface the account depends on.
type AdminService interface {
	GetSubscription(ctx context.Context, uniqueID string) (*models.Subscription, error)
	Arm(ctx context.Context, uniqueID string) error
	Disarm(ctx context.Context, uniqueID string) error
}

// Clock abstracts time so the reconnect backoff is testable.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
