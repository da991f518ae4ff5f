package main

import (
	"sync/atomic"
	"time"

	"github.com/allape/sysevents/capture"
	"github.com/allape/sysevents/capture/event"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// ClientQueueSize events buffered per websocket client before dropping
	ClientQueueSize = 256
	WriteTimeout    = 5 * time.Second
)

type WebsocketEventClient struct {
	Conn    *websocket.Conn
	queue   chan event.Envelope
	dropped atomic.Uint64
	tokens  []capture.Token
}

// Handle never blocks the dispatching backend, a slow client loses events instead
func (w *WebsocketEventClient) Handle(e event.Event) error {
	select {
	case w.queue <- event.Wrap(e):
	default:
		if w.dropped.Add(1)%100 == 1 {
			l.Warn().Println("websocket client too slow, dropped", w.dropped.Load(), "events")
		}
	}
	return nil
}

func (w *WebsocketEventClient) Dropped() uint64 {
	return w.dropped.Load()
}

// Serve blocks until the peer goes away
func (w *WebsocketEventClient) Serve(c *capture.Coordinator, kinds []event.Kind) error {
	for _, kind := range kinds {
		w.tokens = append(w.tokens, c.Subscribe(kind, w.Handle))
	}
	defer func() {
		for _, token := range w.tokens {
			c.Unsubscribe(token)
		}
		w.tokens = nil
	}()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			// incoming messages are ignored, reading keeps control frames flowing
			if _, _, err := w.Conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return nil
		case envelope := <-w.queue:
			data, err := json.Marshal(envelope)
			if err != nil {
				l.Error().Println("marshal event:", err)
				continue
			}
			_ = w.Conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
			err = w.Conn.WriteMessage(websocket.TextMessage, data)
			if err != nil {
				return err
			}
		}
	}
}

func (w *WebsocketEventClient) Close() error {
	return w.Conn.Close()
}

func NewWebsocketEventClient(conn *websocket.Conn) *WebsocketEventClient {
	return &WebsocketEventClient{
		Conn:  conn,
		queue: make(chan event.Envelope, ClientQueueSize),
	}
}
