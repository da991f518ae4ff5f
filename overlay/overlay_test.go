package overlay

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/allape/sysevents/capture/event"
)

func TestTrailIsBounded(t *testing.T) {
	o := New(&Options{Width: 64, Height: 32, Trail: 4})

	for i := 0; i < 10; i++ {
		err := o.Handle(event.MouseMoveEvent{X: i, Y: i, Timestamp: int64(i + 1)})
		if err != nil {
			t.Fatal(err)
		}
	}

	if len(o.points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(o.points))
	}
	if o.points[0].X != 6 {
		t.Fatalf("expected oldest point x=6, got %d", o.points[0].X)
	}
}

func TestCounters(t *testing.T) {
	o := New(nil)

	_ = o.Handle(event.ClickEvent{X: 1, Y: 1, Button: event.Right, Timestamp: 1})
	_ = o.Handle(event.ScrollEvent{Direction: event.Down, Delta: -120, DeltaY: -120, Timestamp: 2})
	_ = o.Handle(event.KeyEvent{Key: "A", Code: "KEY_A", Down: true, Timestamp: 3})
	_ = o.Handle(event.KeyEvent{Key: "A", Code: "KEY_A", Down: false, Timestamp: 4})

	if len(o.clicks) != 1 || o.scrolls != 1 || o.keys != 1 || o.lastKey != "A" {
		t.Fatalf("unexpected counters: clicks %d scrolls %d keys %d last %q", len(o.clicks), o.scrolls, o.keys, o.lastKey)
	}

	o.Reset()
	if len(o.clicks) != 0 || o.scrolls != 0 || o.keys != 0 {
		t.Fatal("expected counters to be reset")
	}
}

func TestWritePNG(t *testing.T) {
	o := New(&Options{Width: 120, Height: 80})

	screen := event.Bounds{Width: 1920, Height: 1080}
	_ = o.Handle(event.MouseMoveEvent{X: 100, Y: 100, Screen: screen, Timestamp: 1})
	_ = o.Handle(event.MouseMoveEvent{X: 1800, Y: 900, Screen: screen, Timestamp: 2})
	_ = o.Handle(event.ClickEvent{X: 1800, Y: 900, Button: event.Left, Timestamp: 3})

	buf := &bytes.Buffer{}
	err := o.WritePNG(buf)
	if err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	size := img.Bounds().Size()
	if size.X != 120 || size.Y != 80 {
		t.Fatalf("expected 120x80, got %v", size)
	}
}

func TestRenderWithoutScreen(t *testing.T) {
	o := New(&Options{Width: 50, Height: 50})
	_ = o.Handle(event.ClickEvent{X: 500, Y: 500, Timestamp: 1})

	if _, err := o.Render(); err != nil {
		t.Fatal(err)
	}
}
