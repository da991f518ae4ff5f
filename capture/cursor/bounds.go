package cursor

import (
	"sync"
	"time"

	"github.com/allape/sysevents/capture/event"
	"github.com/kbinani/screenshot"
)

// PrimaryBounds empty bounds when no display is active
func PrimaryBounds() (b event.Bounds) {
	defer func() {
		if r := recover(); r != nil {
			l.Verbose().Println("display bounds:", r)
			b = event.Bounds{}
		}
	}()

	if screenshot.NumActiveDisplays() <= 0 {
		return event.Bounds{}
	}

	r := screenshot.GetDisplayBounds(0)
	return event.Bounds{
		X:      r.Min.X,
		Y:      r.Min.Y,
		Width:  r.Dx(),
		Height: r.Dy(),
	}
}

// BoundsCache re-queries the display geometry at most once per ttl.
type BoundsCache struct {
	locker    sync.Locker
	query     func() event.Bounds
	ttl       time.Duration
	value     event.Bounds
	fetchedAt time.Time
}

func (c *BoundsCache) Get() event.Bounds {
	c.locker.Lock()
	defer c.locker.Unlock()

	if c.fetchedAt.IsZero() || time.Since(c.fetchedAt) >= c.ttl {
		c.value = c.query()
		c.fetchedAt = time.Now()
	}
	return c.value
}

func NewBoundsCache(query func() event.Bounds, ttl time.Duration) *BoundsCache {
	return &BoundsCache{
		locker: &sync.Mutex{},
		query:  query,
		ttl:    ttl,
	}
}
