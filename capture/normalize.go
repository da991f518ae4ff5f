package capture

import (
	"math"
	"time"

	"github.com/allape/sysevents/capture/event"
)

const UnknownKey = "Unknown"

type normalizer struct {
	clock func() time.Time

	lastScrollAt int64
	scrolled     bool
}

func (n *normalizer) stamp(ts int64) int64 {
	if ts > 0 {
		return ts
	}
	return n.clock().UnixMilli()
}

// velocity in delta units per second, measured against the previous scroll of any source
func (n *normalizer) velocity(delta int, ts int64) float64 {
	v := 0.0
	if n.scrolled {
		dt := ts - n.lastScrollAt
		if dt > 0 {
			v = math.Abs(float64(delta)) / (float64(dt) / 1000)
		}
	}
	n.lastScrollAt = ts
	n.scrolled = true
	return v
}

// measure sets the scroll velocity, it runs after dedup so suppressed duplicates do not count
func (n *normalizer) measure(e event.Event) event.Event {
	se, ok := e.(event.ScrollEvent)
	if !ok {
		return e
	}
	se.Velocity = n.velocity(se.DeltaY, se.Timestamp)
	return se
}

func (n *normalizer) normalize(s event.Sample) (event.Event, bool) {
	ts := n.stamp(s.Timestamp)

	switch s.Kind {
	case event.MouseMove:
		return event.MouseMoveEvent{
			X:         s.X,
			Y:         s.Y,
			Timestamp: ts,
			Screen:    s.Screen,
		}, true
	case event.Click:
		return event.ClickEvent{
			X:         s.X,
			Y:         s.Y,
			Button:    event.CanonicalButton(s.Scheme, s.ButtonCode, s.ButtonName),
			Timestamp: ts,
		}, true
	case event.Scroll:
		return event.ScrollEvent{
			X:         s.X,
			Y:         s.Y,
			Direction: event.DirectionOf(s.DeltaY, s.Direction),
			Delta:     s.DeltaY,
			DeltaY:    s.DeltaY,
			DeltaX:    s.DeltaX,
			Timestamp: ts,
		}, true
	case event.KeyDown, event.KeyUp:
		key := s.KeyName
		if key == "" {
			key = UnknownKey
		}
		code := s.KeyCode
		if code == "" {
			code = key
		}
		return event.KeyEvent{
			Key:       key,
			Code:      code,
			Timestamp: ts,
			Down:      s.Kind == event.KeyDown,
		}, true
	}

	return nil, false
}

func newNormalizer(clock func() time.Time) *normalizer {
	if clock == nil {
		clock = time.Now
	}
	return &normalizer{clock: clock}
}
