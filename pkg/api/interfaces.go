package api

import (
	"context"
	"net/http"

	"github.com/vlebourl/custom-biketrax/pkg/models"
)

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// CredentialsProvider defines the interface for obtaining access tokens.
type CredentialsProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// UpdateKind discriminates the record variants a stream can deliver.
type UpdateKind int

const (
	UpdateDevice UpdateKind = iota + 1
	UpdatePosition
	UpdateTrip
)

func (k UpdateKind) String() string {
	switch k {
	case UpdateDevice:
		return "device"
	case UpdatePosition:
		return "position"
	case UpdateTrip:
		return "trip"
	default:
		return "unknown"
	}
}

// Update is one decoded stream record. Exactly one of the payload fields is
// set, matching Kind.
type Update struct {
	Kind     UpdateKind
	Device   *models.Device
	Position *models.Position
	Trip     *models.Trip
}

// Stream is a live connection delivering incremental updates.
//
// Next returns io.EOF when the server closes the connection cleanly, a
// *models.DecodeError when an individual record is malformed (the stream stays
// usable), and an ErrTransport-wrapped error on connection failure.
type Stream interface {
	Next(ctx context.Context) (Update, error)
	Close() error
}
