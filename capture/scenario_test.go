package capture_test

import (
	"testing"

	"github.com/allape/sysevents/capture"
	"github.com/allape/sysevents/capture/event"
	"github.com/allape/sysevents/capture/helper"
)

type lineBackend struct {
	emit capture.Emit
}

func (b *lineBackend) Name() string           { return "lines" }
func (b *lineBackend) Bind(emit capture.Emit) { b.emit = emit }
func (b *lineBackend) Open() error            { return nil }
func (b *lineBackend) Close() error           { return nil }

// feed pushes raw helper output through the same framing and parsing the supervisor uses
func (b *lineBackend) feed(t *testing.T, chunks ...string) {
	buf := &helper.LineBuffer{}
	for _, chunk := range chunks {
		for _, line := range buf.Write([]byte(chunk)) {
			sample, err := helper.ParseLine(line)
			if err != nil {
				t.Fatal(err)
			}
			b.emit(sample)
		}
	}
}

func start(t *testing.T) (*capture.Coordinator, *lineBackend) {
	backend := &lineBackend{}
	c := capture.New(capture.Options{Backends: []capture.Backend{backend}})
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(c.Stop)
	return c, backend
}

func TestHelperRightClickScenario(t *testing.T) {
	c, backend := start(t)

	var clicks []event.ClickEvent
	c.Subscribe(event.Click, func(e event.Event) error {
		clicks = append(clicks, e.(event.ClickEvent))
		return nil
	})

	backend.feed(t, `{"type":"click","button":"ri`, `ght","x":10,"y":20,"timestamp":1000}`+"\r\n")

	if len(clicks) != 1 {
		t.Fatalf("expected 1 click, got %d", len(clicks))
	}
	got := clicks[0]
	if got.Button != 2 || got.X != 10 || got.Y != 20 || got.Timestamp != 1000 {
		t.Fatalf("unexpected click %+v", got)
	}
}

func TestScrollVelocityScenario(t *testing.T) {
	c, backend := start(t)

	var scrolls []event.ScrollEvent
	c.Subscribe(event.Scroll, func(e event.Event) error {
		scrolls = append(scrolls, e.(event.ScrollEvent))
		return nil
	})

	backend.feed(t,
		`{"type":"scroll","direction":"up","delta":120,"x":0,"y":0,"timestamp":1000}`+"\n",
		`{"type":"scroll","direction":"up","delta":120,"x":0,"y":0,"timestamp":1500}`+"\n",
	)

	if len(scrolls) != 2 {
		t.Fatalf("expected 2 scrolls, got %d", len(scrolls))
	}
	if scrolls[1].Velocity != 240 {
		t.Fatalf("expected velocity 240, got %f", scrolls[1].Velocity)
	}
	if scrolls[1].Direction != event.Up || scrolls[1].Delta != 120 || scrolls[1].DeltaY != 120 {
		t.Fatalf("unexpected scroll %+v", scrolls[1])
	}
}
