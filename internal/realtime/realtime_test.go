package realtime

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradecare/backend/internal/contracts"
	"github.com/wonny/tradecare/backend/pkg/logger"
)

type recordingSink struct {
	events []contracts.StatusEvent
}

func (r *recordingSink) Emit(e contracts.StatusEvent) {
	r.events = append(r.events, e)
}

func TestConsoleSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf)

	sink.Emit(contracts.StatusEvent{Stage: contracts.StageFetch, State: contracts.EventPassed, Message: "✓ Data fetched: 10 rows & 9 columns"})
	sink.Emit(contracts.StatusEvent{Stage: contracts.StageStructure, State: contracts.EventStarted, Message: "Validating data structure..."})

	assert.Equal(t, "✓ Data fetched: 10 rows & 9 columns\n\nValidating data structure...\n", buf.String())
}

func TestMultiSink(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	sink := MultiSink{a, nil, b}

	sink.Emit(contracts.StatusEvent{Message: "hello"})

	require.Len(t, a.events, 1)
	require.Len(t, b.events, 1)
	assert.Equal(t, "hello", b.events[0].Message)
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) contracts.StatusEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var e contracts.StatusEvent
	require.NoError(t, conn.ReadJSON(&e))
	return e
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub(logger.Nop())
	server := httptest.NewServer(hub)
	defer server.Close()
	defer hub.Close()

	// Emitted before the client connects, replayed on connect
	hub.Emit(contracts.StatusEvent{RunID: "r1", Stage: contracts.StageFetch, State: contracts.EventStarted, Message: "Fetching data from GitHub..."})

	conn := dial(t, server)
	defer conn.Close()

	e := readEvent(t, conn)
	assert.Equal(t, "Fetching data from GitHub...", e.Message)
	assert.Equal(t, "r1", e.RunID)

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Emit(contracts.StatusEvent{Stage: contracts.StageValidated, State: contracts.EventPassed, Message: "All validation checks passed!"})
	e = readEvent(t, conn)
	assert.Equal(t, contracts.StageValidated, e.Stage)
	assert.Equal(t, contracts.EventPassed, e.State)
}

func TestHub_Disconnect(t *testing.T) {
	hub := NewHub(logger.Nop())
	server := httptest.NewServer(hub)
	defer server.Close()

	conn := dial(t, server)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)

	hub.Close()
	hub.Emit(contracts.StatusEvent{Message: "after close"}) // no panic
}

func TestHub_ReplayIsBounded(t *testing.T) {
	hub := NewHub(logger.Nop())
	for i := 0; i < replaySize+50; i++ {
		hub.Emit(contracts.StatusEvent{Message: "line"})
	}
	assert.Len(t, hub.recent, replaySize)
}
