package spectate

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(DefaultConfig(), log.New(io.Discard))
	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	if resp != nil {
		resp.Body.Close()
	}
	return conn
}

func waitForCount(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.Count() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Count() = %d, expected %d", hub.Count(), want)
}

func TestHubBroadcast(t *testing.T) {
	hub, srv := newTestHub(t)

	a := dial(t, srv)
	defer a.Close()
	b := dial(t, srv)
	defer b.Close()
	waitForCount(t, hub, 2)

	hub.Publish(map[string]any{"tick": 7, "phase": "Playing"})

	for _, conn := range []*websocket.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, payload, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("failed to read snapshot: %v", err)
		}

		var got struct {
			Tick  int    `json:"tick"`
			Phase string `json:"phase"`
		}
		if err := json.Unmarshal(payload, &got); err != nil {
			t.Fatalf("invalid JSON %q: %v", payload, err)
		}
		if got.Tick != 7 || got.Phase != "Playing" {
			t.Errorf("unexpected snapshot %+v", got)
		}
	}
}

func TestHubRemovesClosedSpectators(t *testing.T) {
	hub, srv := newTestHub(t)

	conn := dial(t, srv)
	waitForCount(t, hub, 1)

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	waitForCount(t, hub, 0)
}

func TestHubPublishWithoutSpectators(t *testing.T) {
	hub := NewHub(DefaultConfig(), log.New(io.Discard))
	hub.Publish(map[string]int{"tick": 1})

	if hub.Dropped() != 0 {
		t.Error("nothing to drop without spectators")
	}
}

func TestHubDropsFramesForSlowSpectators(t *testing.T) {
	hub := NewHub(Config{SendBuffer: 1}, log.New(io.Discard))
	c := &client{send: make(chan []byte, 1)}
	hub.add(c)

	hub.Publish(1)
	hub.Publish(2)
	hub.Publish(3)

	if got := hub.Dropped(); got != 2 {
		t.Errorf("Dropped() = %d, expected 2", got)
	}
	if got := string(<-c.send); got != "1" {
		t.Errorf("queued frame = %q, expected the first one", got)
	}
}

func TestHubHealth(t *testing.T) {
	_, srv := newTestHub(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health failed: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Status     string `json:"status"`
		Spectators int    `json:"spectators"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("invalid health body: %v", err)
	}
	if body.Status != "ok" || body.Spectators != 0 {
		t.Errorf("unexpected health %+v", body)
	}
}
