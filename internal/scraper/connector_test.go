package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pool-occupancy-backend/config"
)

// newUpstream starts a websocket server that hands each accepted connection
// to the given session function.
func newUpstream(t *testing.T, session func(conn *websocket.Conn)) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		session(conn)
	}))
	t.Cleanup(server.Close)
	return server
}

func testConnector(url string) *Connector {
	return NewConnector(&config.ScraperConfig{
		URL:            url,
		Command:        "all",
		HandshakeDelay: 10 * time.Millisecond,
		ReadTimeout:    300 * time.Millisecond,
	})
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestConnector_FetchSnapshot(t *testing.T) {
	server := newUpstream(t, func(conn *websocket.Conn) {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if string(msg) != "all" {
			return
		}
		payload := `[
			{"id":"SSD-4","capacity":500,"fill":125},
			{"id":"NOT-TRACKED","capacity":100,"fill":99},
			{"id":"SSD-5","capacity":0,"fill":30}
		]`
		conn.WriteMessage(websocket.TextMessage, []byte(payload))
	})

	records, err := testConnector(wsURL(server)).FetchSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "SSD-4", records[0].PoolID)
	assert.Equal(t, 25.0, records[0].OccupancyPercent)
	assert.Equal(t, 2, records[0].OccupancyLevel)

	// Unknown capacity is stored, just classified as level 0.
	assert.Equal(t, "SSD-5", records[1].PoolID)
	assert.Equal(t, 0, records[1].OccupancyLevel)

	assert.Equal(t, records[0].Timestamp, records[1].Timestamp, "one scrape shares one capture timestamp")
}

func TestConnector_Timeout(t *testing.T) {
	server := newUpstream(t, func(conn *websocket.Conn) {
		conn.ReadMessage()
		// Never reply; the client must give up on its own.
		conn.ReadMessage()
	})

	records, err := testConnector(wsURL(server)).FetchSnapshot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Empty(t, records)
}

func TestConnector_MalformedPayload(t *testing.T) {
	server := newUpstream(t, func(conn *websocket.Conn) {
		conn.ReadMessage()
		conn.WriteMessage(websocket.TextMessage, []byte(`{"unexpected":"shape"}`))
	})

	records, err := testConnector(wsURL(server)).FetchSnapshot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.Empty(t, records)
}

func TestConnector_UpgradeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Plain HTTP endpoint that refuses the protocol upgrade.
		http.Error(w, "no websocket here", http.StatusBadGateway)
	}))
	defer server.Close()

	records, err := testConnector(wsURL(server)).FetchSnapshot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpgrade)
	assert.Empty(t, records)
}

func TestConnector_ChannelClosedByUpstream(t *testing.T) {
	server := newUpstream(t, func(conn *websocket.Conn) {
		conn.ReadMessage()
		conn.Close()
	})

	records, err := testConnector(wsURL(server)).FetchSnapshot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrChannel)
	assert.Empty(t, records)
}
