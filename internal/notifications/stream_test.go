package notifications

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aura/marketplace/marketplace-backend/internal/eventing"
)

func newTestServer(t *testing.T) (*Stream, *eventing.Bus, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bus := eventing.NewBus()
	stream := NewStream(zap.NewNop())
	stream.Attach(bus)

	router := gin.New()
	router.GET("/events/stream", stream.Handle)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return stream, bus, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, stream *Stream, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for stream.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d connected clients, have %d", want, stream.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStreamBroadcastsEventsToClient(t *testing.T) {
	stream, bus, srv := newTestServer(t)
	conn := dial(t, srv)
	waitForClients(t, stream, 1)

	bus.Emit(eventing.Event{
		Kind:    eventing.EventLotRegistered,
		Payload: map[string]string{"lotId": "lot-1"},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var received eventing.Event
	require.NoError(t, conn.ReadJSON(&received))
	assert.Equal(t, eventing.EventLotRegistered, received.Kind)
	assert.Equal(t, "lot-1", received.Payload["lotId"])
}

func TestStreamDeregistersClosedClients(t *testing.T) {
	stream, bus, srv := newTestServer(t)
	conn := dial(t, srv)
	waitForClients(t, stream, 1)

	require.NoError(t, conn.Close())
	// A write to the closed connection drops it from the registry.
	bus.Emit(eventing.Event{
		Kind:    eventing.EventLotVerified,
		Payload: map[string]string{"lotId": "lot-1"},
	})
	waitForClients(t, stream, 0)
}

func TestStreamCountsMultipleClients(t *testing.T) {
	stream, _, srv := newTestServer(t)
	dial(t, srv)
	dial(t, srv)
	waitForClients(t, stream, 2)
}
