package cursor

import (
	"image"
	"sync"
	"time"

	"github.com/allape/gogger"
	"github.com/allape/sysevents/capture"
	"github.com/allape/sysevents/capture/event"
)

var l = gogger.New("capture.cursor")

const (
	Name            = "poller"
	DefaultInterval = 16 * time.Millisecond
)

// Driver queries the OS cursor position.
// Position may connect lazily, Close releases whatever Position acquired.
type Driver interface {
	Open() error
	Close() error
	Position() (image.Point, error)
}

type Poller struct {
	capture.Backend

	driver   Driver
	interval time.Duration
	bounds   func() event.Bounds

	emit capture.Emit

	locker sync.Locker
	stop   chan struct{}

	lastLocker sync.Locker
	last       image.Point
	hasLast    bool
}

func (p *Poller) Name() string {
	return Name
}

func (p *Poller) Bind(emit capture.Emit) {
	p.emit = emit
}

func (p *Poller) Open() error {
	p.locker.Lock()
	defer p.locker.Unlock()

	if p.stop != nil {
		return nil
	}

	err := p.driver.Open()
	if err != nil {
		return err
	}

	p.stop = make(chan struct{})
	go p.loop(p.stop)

	return nil
}

func (p *Poller) Close() error {
	p.locker.Lock()
	defer p.locker.Unlock()

	if p.stop == nil {
		return nil
	}

	close(p.stop)
	p.stop = nil

	return p.driver.Close()
}

// Position live query, used as the coordinator locator
func (p *Poller) Position() (image.Point, error) {
	return p.driver.Position()
}

func (p *Poller) loop(stop chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-stop:
			return
		default:
		}

		pt, err := p.driver.Position()
		if err != nil {
			failures++
			if failures == 1 || failures%100 == 0 {
				l.Warn().Printf("query cursor position (%d failures): %v", failures, err)
			}
		} else {
			failures = 0
			if p.changed(pt) {
				select {
				case <-stop:
					return
				default:
				}
				if p.emit != nil {
					p.emit(event.Sample{
						Kind:   event.MouseMove,
						Source: Name,
						X:      pt.X,
						Y:      pt.Y,
						Screen: p.bounds(),
					})
				}
			}
		}

		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

func (p *Poller) changed(pt image.Point) bool {
	p.lastLocker.Lock()
	defer p.lastLocker.Unlock()

	if p.hasLast && p.last == pt {
		return false
	}
	p.last = pt
	p.hasLast = true
	return true
}

type Options struct {
	Interval time.Duration
	// Bounds of the display reported with each movement, defaults to the cached primary display
	Bounds func() event.Bounds
}

func NewPoller(driver Driver, options *Options) *Poller {
	if options == nil {
		options = &Options{}
	}
	if options.Interval <= 0 {
		options.Interval = DefaultInterval
	}
	if options.Bounds == nil {
		options.Bounds = NewBoundsCache(PrimaryBounds, 5*time.Second).Get
	}

	return &Poller{
		driver:     driver,
		interval:   options.Interval,
		bounds:     options.Bounds,
		locker:     &sync.Mutex{},
		lastLocker: &sync.Mutex{},
	}
}
