package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/allape/sysevents/capture"
	"github.com/allape/sysevents/capture/event"
	"github.com/allape/sysevents/config"
	"github.com/allape/sysevents/overlay"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type stubBackend struct {
	emit capture.Emit
}

func (s *stubBackend) Name() string           { return "stub" }
func (s *stubBackend) Bind(emit capture.Emit) { s.emit = emit }
func (s *stubBackend) Open() error            { return nil }
func (s *stubBackend) Close() error           { return nil }

func newTestServer(t *testing.T) (*httptest.Server, *capture.Coordinator, *stubBackend) {
	gin.SetMode(gin.TestMode)

	backend := &stubBackend{}
	c := capture.New(capture.Options{Backends: []capture.Backend{backend}})

	router := gin.New()
	SetupRoutes(router, c, overlay.New(nil), config.Default())

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		c.Stop()
	})

	return server, c, backend
}

func request(t *testing.T, method, url, body string) (int, map[string]any) {
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	var result map[string]any
	err = json.NewDecoder(res.Body).Decode(&result)
	if err != nil {
		t.Fatal(err)
	}
	return res.StatusCode, result
}

func TestStartStop(t *testing.T) {
	server, c, _ := newTestServer(t)

	code, body := request(t, http.MethodPost, server.URL+"/api/capture/start", "")
	if code != http.StatusOK || body["active"] != true {
		t.Fatalf("expected active after start, got %d %v", code, body)
	}
	if !c.Active() {
		t.Fatal("expected coordinator to be active")
	}

	code, body = request(t, http.MethodPost, server.URL+"/api/capture/stop", "")
	if code != http.StatusOK || body["active"] != false {
		t.Fatalf("expected inactive after stop, got %d %v", code, body)
	}
}

func TestPosition(t *testing.T) {
	server, c, backend := newTestServer(t)

	code, _ := request(t, http.MethodGet, server.URL+"/api/capture/position", "")
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 before any movement, got %d", code)
	}

	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	backend.emit(event.Sample{Kind: event.MouseMove, X: 12, Y: 34, Timestamp: 1})

	code, body := request(t, http.MethodGet, server.URL+"/api/capture/position", "")
	if code != http.StatusOK || body["x"] != float64(12) || body["y"] != float64(34) {
		t.Fatalf("expected 12,34, got %d %v", code, body)
	}
}

func TestTrace(t *testing.T) {
	server, c, _ := newTestServer(t)

	code, body := request(t, http.MethodPut, server.URL+"/api/capture/trace", `{"enabled":true}`)
	if code != http.StatusOK || body["enabled"] != true {
		t.Fatalf("expected tracing enabled, got %d %v", code, body)
	}
	if !c.Tracing() {
		t.Fatal("expected coordinator tracing")
	}

	code, _ = request(t, http.MethodPut, server.URL+"/api/capture/trace", `nope`)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a malformed body, got %d", code)
	}
}

func TestStatus(t *testing.T) {
	server, _, _ := newTestServer(t)

	code, body := request(t, http.MethodGet, server.URL+"/api/capture/status", "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	backends, ok := body["backends"].([]any)
	if !ok || len(backends) != 1 {
		t.Fatalf("expected one backend, got %v", body["backends"])
	}
}

func TestWebsocketStream(t *testing.T) {
	server, c, backend := newTestServer(t)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?kinds=click"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = conn.Close()
	}()

	deadline := time.Now().Add(2 * time.Second)
	for c.Subscribers(event.Click) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("websocket client never subscribed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	backend.emit(event.Sample{Kind: event.Click, X: 5, Y: 6, Scheme: event.SchemeIndex, ButtonCode: 2, Timestamp: 7})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}

	var envelope struct {
		Type string           `json:"type"`
		Data event.ClickEvent `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatal(err)
	}
	if envelope.Type != "click" || envelope.Data.Button != event.Right || envelope.Data.X != 5 {
		t.Fatalf("unexpected envelope %s", data)
	}

	_ = conn.Close()
	deadline = time.Now().Add(2 * time.Second)
	for c.Subscribers(event.Click) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("websocket client never unsubscribed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestParseKinds(t *testing.T) {
	kinds, err := parseKinds("")
	if err != nil || len(kinds) != len(event.Kinds()) {
		t.Fatalf("expected every kind, got %v %v", kinds, err)
	}

	kinds, err = parseKinds("click, KeyDown")
	if err != nil || len(kinds) != 2 || kinds[1] != event.KeyDown {
		t.Fatalf("unexpected kinds %v %v", kinds, err)
	}

	if _, err = parseKinds("wheel"); err == nil {
		t.Fatal("expected unknown kind error")
	}
}

func TestClientDropsWhenFull(t *testing.T) {
	client := &WebsocketEventClient{queue: make(chan event.Envelope, 2)}
	for i := 0; i < 5; i++ {
		_ = client.Handle(event.ScrollEvent{Timestamp: int64(i)})
	}
	if client.Dropped() != 3 {
		t.Fatalf("expected 3 dropped, got %d", client.Dropped())
	}
}
