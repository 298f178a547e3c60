package hub

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triangulator/internal/service"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	h := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	t.Cleanup(cancel)
	return h, cancel
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 10*time.Millisecond)
}

// readUntil scans SSE lines until one has the given prefix
func readUntil(t *testing.T, sc *bufio.Scanner, prefix string) string {
	t.Helper()
	for sc.Scan() {
		if strings.HasPrefix(sc.Text(), prefix) {
			return sc.Text()
		}
	}
	t.Fatalf("stream ended before %q: %v", prefix, sc.Err())
	return ""
}

func TestStreamDeliversBroadcast(t *testing.T) {
	h, _ := startHub(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	sc := bufio.NewScanner(resp.Body)
	readUntil(t, sc, ": connected")
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	h.Broadcast(service.Event{Type: service.EventPointSetCreated, Payload: map[string]string{"pointset_id": "a"}})

	assert.Equal(t, "event: pointset_created", readUntil(t, sc, "event:"))
	data := readUntil(t, sc, "data:")
	assert.Contains(t, data, `"type":"pointset_created"`)
	assert.Contains(t, data, `"pointset_id":"a"`)
}

func TestClientRemovedOnDisconnect(t *testing.T) {
	h, _ := startHub(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	waitFor(t, func() bool { return h.ClientCount() == 1 })
	cancel()
	resp.Body.Close()
	waitFor(t, func() bool { return h.ClientCount() == 0 })
}

func TestForwardRelaysBusEvents(t *testing.T) {
	h, _ := startHub(t)
	bus := service.NewEventBus()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Forward(ctx, bus)

	srv := httptest.NewServer(h)
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	sc := bufio.NewScanner(resp.Body)
	readUntil(t, sc, ": connected")
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	// Forward subscribes asynchronously; publish until one arrives
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			bus.Publish(service.Event{Type: service.EventPointSetsReloaded})
			select {
			case <-done:
				return
			case <-ticker.C:
			}
		}
	}()
	defer close(done)

	assert.Equal(t, "event: pointsets_reloaded", readUntil(t, sc, "event:"))
}

func TestStoppedHubRejectsClients(t *testing.T) {
	h, cancel := startHub(t)
	cancel()
	<-h.stopped

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestBroadcastDropsWhenFull(t *testing.T) {
	h := New(nil)
	for i := 0; i < cap(h.broadcast)+10; i++ {
		h.Broadcast(service.Event{Type: service.EventTriangulationCompleted})
	}
	assert.Len(t, h.broadcast, cap(h.broadcast))
}
