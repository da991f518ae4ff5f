package capture

import (
	"fmt"
	"time"

	"github.com/allape/sysevents/capture/event"
)

const dedupHistory = 16

type seen struct {
	key    string
	source string
	at     int64
}

// deduper suppresses a click or scroll already reported by another source within window.
type deduper struct {
	window int64
	recent []seen
}

func dedupKey(e event.Event) string {
	switch v := e.(type) {
	case event.ClickEvent:
		return fmt.Sprintf("click:%d:%d:%d", v.X, v.Y, v.Button)
	case event.ScrollEvent:
		return fmt.Sprintf("scroll:%d:%d:%s", v.X, v.Y, v.Direction)
	}
	return ""
}

func (d *deduper) duplicate(source string, e event.Event) bool {
	if d.window <= 0 {
		return false
	}

	key := dedupKey(e)
	if key == "" {
		return false
	}

	at := e.Time()
	for _, s := range d.recent {
		if s.key != key || s.source == source {
			continue
		}
		dt := at - s.at
		if dt < 0 {
			dt = -dt
		}
		if dt <= d.window {
			return true
		}
	}

	d.recent = append(d.recent, seen{key: key, source: source, at: at})
	if len(d.recent) > dedupHistory {
		d.recent = d.recent[len(d.recent)-dedupHistory:]
	}
	return false
}

func newDeduper(window time.Duration) *deduper {
	return &deduper{window: window.Milliseconds()}
}
