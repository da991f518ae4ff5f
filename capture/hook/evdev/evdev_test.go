package evdev

import (
	"image"
	"testing"

	"github.com/allape/sysevents/capture/event"
	"github.com/allape/sysevents/capture/evdev"
)

type fixedLocator image.Point

func (f fixedLocator) Position() (image.Point, error) {
	return image.Point(f), nil
}

func TestHandle(t *testing.T) {
	var got []event.Sample
	s := New("", fixedLocator{X: 40, Y: 50})
	s.emit = func(sample event.Sample) { got = append(got, sample) }

	s.handle(evdev.InputEvent{Sec: 2, Type: evdev.EvKey, Code: evdev.BtnMiddle, Value: evdev.KeyPressed})
	s.handle(evdev.InputEvent{Sec: 2, Type: evdev.EvKey, Code: evdev.BtnMiddle, Value: evdev.KeyReleased})
	s.handle(evdev.InputEvent{Sec: 2, Type: evdev.EvKey, Code: 30, Value: evdev.KeyPressed})
	s.handle(evdev.InputEvent{Sec: 3, Type: evdev.EvRel, Code: evdev.RelWheel, Value: 1})
	s.handle(evdev.InputEvent{Sec: 3, Type: evdev.EvSyn})
	s.handle(evdev.InputEvent{Sec: 4, Type: evdev.EvSyn})

	if len(got) != 2 {
		t.Fatalf("expected 2 samples, got %d: %+v", len(got), got)
	}

	click := got[0]
	if click.Kind != event.Click || click.X != 40 || click.Y != 50 || click.Timestamp != 2000 {
		t.Fatalf("unexpected click %+v", click)
	}
	if event.CanonicalButton(click.Scheme, click.ButtonCode, "") != event.Middle {
		t.Fatalf("expected middle button, got %+v", click)
	}

	scroll := got[1]
	if scroll.Kind != event.Scroll || scroll.DeltaY != 1 || scroll.DeltaX != 0 {
		t.Fatalf("unexpected scroll %+v", scroll)
	}
}
