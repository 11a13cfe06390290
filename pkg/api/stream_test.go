package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlebourl/custom-biketrax/pkg/models"
)

const sessionJSON = `{
	"id": 31, "name": "rider", "email": "rider@example.com",
	"token": "session-token", "administrator": false, "readonly": false,
	"deviceReadonly": false, "disabled": false, "deviceLimit": 5,
	"userLimit": 0, "limitCommands": false, "latitude": 52.0,
	"longitude": 4.9, "zoom": 12, "twelveHourFormat": false,
	"attributes": {
		"appEnvironment": "production", "appPackage": "biketrax",
		"appVersion": "3.1.0", "fcmTokens": [], "locale": "en",
		"sendAnalytics": false
	}
}`

// streamHandler wires /session and /socket the way the device API does: the
// session response sets the cookie the socket handshake requires.
func streamHandler(t *testing.T, serve func(*websocket.Conn)) http.HandlerFunc {
	t.Helper()

	upgrader := websocket.Upgrader{}

	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/session":
			http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "abc123"})
			fmt.Fprint(w, sessionJSON)
		case "/socket":
			cookie, err := r.Cookie("JSESSIONID")
			require.NoError(t, err)
			require.Equal(t, "abc123", cookie.Value)

			conn, err := upgrader.Upgrade(w, r, nil)
			require.NoError(t, err)
			defer conn.Close()

			serve(conn)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}
}

func TestOpenStreamDeliversUpdatesInOrder(t *testing.T) {
	envelope := fmt.Sprintf(`{"devices": [%s], "positions": [%s]}`,
		deviceJSON(1, "860-1", "Commuter"), positionJSON(99, 1))

	api, _ := newDeviceAPI(t, streamHandler(t, func(conn *websocket.Conn) {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(envelope)))
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}))

	stream, err := api.OpenStream(context.Background())
	require.NoError(t, err)
	defer stream.Close()

	ctx := context.Background()

	first, err := stream.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, UpdateDevice, first.Kind)
	assert.Equal(t, "Commuter", first.Device.Name)

	second, err := stream.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, UpdatePosition, second.Kind)
	assert.Equal(t, 1, second.Position.DeviceID)

	_, err = stream.Next(ctx)
	require.ErrorIs(t, err, io.EOF)
}

func TestStreamSkipsMalformedRecord(t *testing.T) {
	envelope := fmt.Sprintf(`{"positions": [{"id": true}, %s]}`, positionJSON(99, 1))

	api, _ := newDeviceAPI(t, streamHandler(t, func(conn *websocket.Conn) {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(envelope)))
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}))

	stream, err := api.OpenStream(context.Background())
	require.NoError(t, err)
	defer stream.Close()

	ctx := context.Background()

	_, err = stream.Next(ctx)

	var decodeErr *models.DecodeError
	require.ErrorAs(t, err, &decodeErr)

	// The bad record does not take its siblings down.
	update, err := stream.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, UpdatePosition, update.Kind)
}

func TestStreamCloseConcurrent(t *testing.T) {
	api, _ := newDeviceAPI(t, streamHandler(t, func(conn *websocket.Conn) {
		// Hold the connection open until the client tears it down.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))

	// The supervisor's stop path closes the stream from its cancellation
	// watcher while the consume loop's deferred close runs; both callers
	// must be able to overlap without tripping the connection's single
	// writer rule.
	for i := 0; i < 50; i++ {
		stream, err := api.OpenStream(context.Background())
		require.NoError(t, err)

		var wg sync.WaitGroup

		for j := 0; j < 2; j++ {
			wg.Add(1)

			go func() {
				defer wg.Done()
				stream.Close()
			}()
		}

		wg.Wait()
	}
}

func TestStreamCloseIdempotent(t *testing.T) {
	api, _ := newDeviceAPI(t, streamHandler(t, func(conn *websocket.Conn) {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))

	stream, err := api.OpenStream(context.Background())
	require.NoError(t, err)

	first := stream.Close()
	assert.Equal(t, first, stream.Close())
}

func TestOpenStreamSessionAuthFailure(t *testing.T) {
	api, _ := newDeviceAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := api.OpenStream(context.Background())
	require.ErrorIs(t, err, ErrAuth)
}

func TestDecodeEnvelopeGarbage(t *testing.T) {
	out := decodeEnvelope([]byte("not json"))
	require.Len(t, out, 1)

	var decodeErr *models.DecodeError
	require.ErrorAs(t, out[0].err, &decodeErr)
}

func TestSocketURL(t *testing.T) {
	tests := []struct {
		endpoint string
		want     string
	}{
		{endpoint: "https://api.example.com/traccar/api", want: "wss://api.example.com/traccar/api/socket"},
		{endpoint: "http://127.0.0.1:8082/api", want: "ws://127.0.0.1:8082/api/socket"},
	}

	for _, tt := range tests {
		got, err := socketURL(tt.endpoint)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
