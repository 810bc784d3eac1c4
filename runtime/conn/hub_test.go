package conn

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHub_GreetingAndBroadcast(t *testing.T) {
	hub := NewHub(func() any { return map[string]int{"turn": 1} })
	defer hub.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer ws.Close()

	read := func() map[string]int {
		_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := ws.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var msg map[string]int
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return msg
	}

	if msg := read(); msg["turn"] != 1 {
		t.Fatalf("unexpected greeting %v", msg)
	}
	hub.Broadcast(map[string]int{"turn": 2})
	if msg := read(); msg["turn"] != 2 {
		t.Fatalf("unexpected broadcast %v", msg)
	}
	if hub.Count() != 1 {
		t.Fatalf("expected one client, got %d", hub.Count())
	}
}
