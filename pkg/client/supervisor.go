package client

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/vlebourl/custom-biketrax/pkg/api"
	"github.com/vlebourl/custom-biketrax/pkg/logger"
	"github.com/vlebourl/custom-biketrax/pkg/models"
)

// StreamState is the lifecycle state of the stream supervisor.
type StreamState int32

const (
	StreamStopped StreamState = iota
	StreamStarting
	StreamConnected
	StreamReconnecting
)

func (s StreamState) String() string {
	switch s {
	case StreamStopped:
		return "stopped"
	case StreamStarting:
		return "starting"
	case StreamConnected:
		return "connected"
	case StreamReconnecting:
		return "reconnecting"
	default:
		return "unknown"
	}
}

// maxBackoffStep caps the quadratic backoff at 64 units.
const maxBackoffStep = 8

// backoffDelay returns min(errorCount, 8)^2 backoff units.
func backoffDelay(errorCount int, unit time.Duration) time.Duration {
	n := errorCount
	if n > maxBackoffStep {
		n = maxBackoffStep
	}

	return time.Duration(n*n) * unit
}

// supervisor drives the persistent stream connection: connect, merge inbound
// records into the cache, and reconnect forever until cancelled.
type supervisor struct {
	devices  DeviceService
	cache    *cache
	clock    Clock
	onUpdate func()
	log      logger.Logger

	backoffUnit time.Duration
	lifecycle   atomic.Int32
}

func newSupervisor(devices DeviceService, cache *cache, clock Clock, onUpdate func(), log logger.Logger) *supervisor {
	return &supervisor{
		devices:     devices,
		cache:       cache,
		clock:       clock,
		onUpdate:    onUpdate,
		log:         log.WithComponent("stream"),
		backoffUnit: time.Second,
	}
}

func (s *supervisor) state() StreamState {
	return StreamState(s.lifecycle.Load())
}

func (s *supervisor) setState(state StreamState) {
	s.lifecycle.Store(int32(state))
}

// run is the reconnect loop. It returns only when ctx is cancelled; the
// error counter resets after a connection delivers at least one message, and
// a graceful server close reconnects immediately with the counter cleared.
func (s *supervisor) run(ctx context.Context) {
	defer s.setState(StreamStopped)

	s.setState(StreamStarting)

	errorCount := 0

	for {
		if ctx.Err() != nil {
			return
		}

		s.log.Debug().Msg("Connecting to stream")

		stream, err := s.devices.OpenStream(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}

			errorCount++
			s.log.Error().Err(err).Int("error_count", errorCount).Msg("Stream connection failed")

			s.setState(StreamReconnecting)

			if !s.wait(ctx, backoffDelay(errorCount, s.backoffUnit)) {
				return
			}

			continue
		}

		s.setState(StreamConnected)

		graceful, received := s.consume(ctx, stream)

		if received {
			errorCount = 0
		}

		if ctx.Err() != nil {
			return
		}

		s.setState(StreamReconnecting)

		if graceful {
			s.log.Debug().Msg("Stream terminated gracefully, reconnecting")

			errorCount = 0

			continue
		}

		errorCount++

		if !s.wait(ctx, backoffDelay(errorCount, s.backoffUnit)) {
			return
		}
	}
}

// consume reads the stream until it ends. Reports whether the stream closed
// gracefully and whether at least one message arrived.
func (s *supervisor) consume(ctx context.Context, stream api.Stream) (graceful, received bool) {
	// Unblock the pending read when the supervisor is stopped.
	unblock := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			stream.Close()
		case <-unblock:
		}
	}()

	defer close(unblock)
	defer stream.Close()

	for {
		update, err := stream.Next(ctx)
		if err != nil {
			var decodeErr *models.DecodeError

			switch {
			case errors.As(err, &decodeErr):
				// A malformed record proves the connection is alive;
				// skip it and keep reading.
				received = true

				s.log.Warn().Err(decodeErr).Msg("Skipping malformed stream record")

				continue
			case errors.Is(err, io.EOF):
				return true, received
			default:
				if ctx.Err() == nil {
					s.log.Error().Err(err).Msg("Stream read failed")
				}

				return false, received
			}
		}

		received = true

		if s.apply(update) && s.onUpdate != nil {
			s.onUpdate()
		}
	}
}

// apply merges one update into the cache, replacing the keyed entry
// wholesale. Unknown kinds are ignored.
func (s *supervisor) apply(update api.Update) bool {
	switch update.Kind {
	case api.UpdateDevice:
		s.cache.setDevice(update.Device)
	case api.UpdatePosition:
		s.cache.setPosition(update.Position)
	case api.UpdateTrip:
		s.cache.setTrip(update.Trip)
	default:
		s.log.Warn().Str("kind", update.Kind.String()).Msg("Ignoring unknown stream record kind")
		return false
	}

	s.log.Debug().Str("kind", update.Kind.String()).Msg("Merged stream record")

	return true
}

// wait blocks for the backoff delay. Returns false when cancelled first.
func (s *supervisor) wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	s.log.Debug().Dur("delay", d).Msg("Backing off before reconnect")

	select {
	case <-ctx.Done():
		return false
	case <-s.clock.After(d):
		return true
	}
}
