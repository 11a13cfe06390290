package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vlebourl/custom-biketrax/pkg/logger"
	"github.com/vlebourl/custom-biketrax/pkg/models"
)

// OpenStream establishes a session and dials the live socket. The returned
// stream delivers device, position and trip updates as they arrive.
func (d *DeviceAPI) OpenStream(ctx context.Context) (Stream, error) {
	_, cookies, err := d.session(ctx)
	if err != nil {
		return nil, err
	}

	socketURL, err := socketURL(d.endpoint)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	for _, cookie := range cookies {
		header.Add("Cookie", cookie.String())
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, socketURL, header)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
			return nil, statusError("open stream", resp.StatusCode)
		}

		return nil, transportError("open stream", err)
	}

	d.log.Debug().Str("url", socketURL).Msg("Socket connected")

	return &wsStream{conn: conn, log: d.log}, nil
}

func socketURL(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	u.Path += "/socket"

	return u.String(), nil
}

// pending is one queued outcome of an envelope: either a decoded update or a
// per-record decode failure the caller may skip.
type pending struct {
	update Update
	err    error
}

type wsStream struct {
	conn  *websocket.Conn
	log   logger.Logger
	queue []pending

	closeOnce sync.Once
	closeErr  error
}

// Next returns the next decoded update. Socket envelopes batch several
// records; they are handed out one at a time, in arrival order.
func (s *wsStream) Next(ctx context.Context) (Update, error) {
	for {
		if len(s.queue) > 0 {
			head := s.queue[0]
			s.queue = s.queue[1:]

			return head.update, head.err
		}

		if err := ctx.Err(); err != nil {
			return Update{}, err
		}

		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return Update{}, io.EOF
			}

			return Update{}, transportError("read stream", err)
		}

		s.queue = decodeEnvelope(data)
	}
}

// Close is safe to call from multiple goroutines; the supervisor closes the
// stream from its cancellation watcher while the consume loop unwinds.
func (s *wsStream) Close() error {
	s.closeOnce.Do(func() {
		// Best effort close handshake; the server closing first is fine too.
		// WriteControl, unlike WriteMessage, permits concurrent callers.
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))

		s.closeErr = s.conn.Close()
	})

	return s.closeErr
}

// decodeEnvelope splits one socket message into per-record outcomes. A record
// that fails to decode yields an error entry without discarding its siblings.
func decodeEnvelope(data []byte) []pending {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var envelope map[string]interface{}
	if err := dec.Decode(&envelope); err != nil {
		return []pending{{err: &models.DecodeError{Record: "stream envelope", Reason: err.Error()}}}
	}

	var out []pending

	for _, raw := range envelopeList(envelope, "devices") {
		device, err := models.DecodeDevice(raw)
		if err != nil {
			out = append(out, pending{err: err})
			continue
		}

		out = append(out, pending{update: Update{Kind: UpdateDevice, Device: device}})
	}

	for _, raw := range envelopeList(envelope, "positions") {
		position, err := models.DecodePosition(raw)
		if err != nil {
			out = append(out, pending{err: err})
			continue
		}

		out = append(out, pending{update: Update{Kind: UpdatePosition, Position: position}})
	}

	for _, raw := range envelopeList(envelope, "trips") {
		trip, err := models.DecodeTrip(raw)
		if err != nil {
			out = append(out, pending{err: err})
			continue
		}

		out = append(out, pending{update: Update{Kind: UpdateTrip, Trip: trip}})
	}

	return out
}

func envelopeList(envelope map[string]interface{}, key string) []map[string]interface{} {
	list, ok := envelope[key].([]interface{})
	if !ok {
		return nil
	}

	out := make([]map[string]interface{}, 0, len(list))

	for _, item := range list {
		if m, ok := item.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}

	return out
}
