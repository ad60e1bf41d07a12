package ws

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/impact-sim-service/internal/impact"
	"github.com/couchcryptid/impact-sim-service/internal/simulation"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) (*Hub, prometheus.Gauge, string) {
	t.Helper()
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: "feed_subscribers"})
	hub := NewHub(gauge, slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		_ = hub.Close()
		srv.Close()
	})
	return hub, gauge, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHub_PublishReachesSubscribers(t *testing.T) {
	hub, gauge, url := newTestHub(t)
	a := dial(t, url)
	b := dial(t, url)

	require.Eventually(t, func() bool { return hub.Count() == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.InDelta(t, 2.0, testutil.ToFloat64(gauge), 0)

	run := simulation.Run{
		ID: "sim-42",
		Result: impact.Calculate(impact.Parameters{
			Diameter: 100, Density: 3000, Velocity: 20, Angle: 45, Latitude: 40.7128, Longitude: -74.006,
		}),
	}
	require.NoError(t, hub.Publish(context.Background(), run))

	for _, conn := range []*websocket.Conn{a, b} {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, "simulation", msg.Type)
		assert.Equal(t, "sim-42", msg.Data.ID)
		assert.Contains(t, msg.Data.Result.Input.LocationName, "New York")
	}
}

func TestHub_DisconnectUnregisters(t *testing.T) {
	hub, gauge, url := newTestHub(t)
	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.InDelta(t, 0.0, testutil.ToFloat64(gauge), 0)
}

func TestHub_CloseDisconnectsAndRejects(t *testing.T) {
	hub, _, url := newTestHub(t)
	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Close())
	assert.Equal(t, 0, hub.Count())

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)

	assert.ErrorIs(t, hub.Publish(context.Background(), simulation.Run{}), ErrClosed)

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()
}
