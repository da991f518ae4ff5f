package capture

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/allape/gogger"
	"github.com/allape/sysevents/capture/event"
	"github.com/allape/sysevents/logger"
)

var l = gogger.New("capture")

type Options struct {
	Backends []Backend
	// Locator answers LastKnownPosition before the first polled position
	Locator Locator
	Trace   bool
	// DedupWindow 0 disables cross-source click and scroll dedup
	DedupWindow time.Duration
	Clock       func() time.Time
}

type BackendStatus struct {
	Name        string `json:"name"`
	Open        bool   `json:"open"`
	Unavailable bool   `json:"unavailable"`
	Error       string `json:"error,omitempty"`
}

type slot struct {
	backend     Backend
	open        bool
	unavailable bool
	reported    bool
	err         error
}

type Coordinator struct {
	locker sync.Locker
	active atomic.Bool
	bound  bool
	slots  []*slot

	emitLocker sync.Locker
	normalizer *normalizer
	deduper    *deduper

	positionLocker sync.Locker
	position       event.Position
	hasPosition    bool
	locator        Locator

	registry *registry
	tracer   *logger.Tracer
}

func (c *Coordinator) Start() error {
	c.locker.Lock()
	defer c.locker.Unlock()

	if c.active.Load() {
		l.Info().Println("capture already active")
		return nil
	}

	if !c.bound {
		for _, s := range c.slots {
			s.backend.Bind(c.sink(s.backend.Name()))
		}
		c.bound = true
	}

	c.active.Store(true)

	var errs []error
	opened := 0
	for _, s := range c.slots {
		err := s.backend.Open()
		s.err = err
		if err == nil {
			s.open = true
			s.unavailable = false
			opened++
			l.Info().Println(s.backend.Name(), "started")
			continue
		}

		errs = append(errs, fmt.Errorf("%s: %w", s.backend.Name(), err))
		if errors.Is(err, ErrUnavailable) {
			s.unavailable = true
			if !s.reported {
				s.reported = true
				l.Warn().Println(s.backend.Name(), "unavailable on this host, continuing without it:", err)
			}
		} else {
			l.Error().Println("start", s.backend.Name(), err)
		}
	}

	if opened == 0 {
		c.active.Store(false)
		if len(errs) == 0 {
			return ErrNoBackends
		}
		return fmt.Errorf("%w: %w", ErrNoBackends, errors.Join(errs...))
	}

	l.Info().Printf("capture started with %d/%d backends", opened, len(c.slots))

	return nil
}

func (c *Coordinator) Stop() {
	c.locker.Lock()
	defer c.locker.Unlock()

	if !c.active.Swap(false) {
		return
	}

	for _, s := range c.slots {
		if !s.open {
			continue
		}
		s.open = false
		err := s.backend.Close()
		if err != nil {
			l.Error().Println("stop", s.backend.Name(), err)
		}
	}

	l.Info().Println("capture stopped")
}

func (c *Coordinator) Active() bool {
	return c.active.Load()
}

func (c *Coordinator) Subscribe(kind event.Kind, handler Handler) Token {
	return c.registry.add(kind, handler)
}

func (c *Coordinator) Unsubscribe(token Token) bool {
	return c.registry.remove(token)
}

func (c *Coordinator) Subscribers(kind event.Kind) int {
	return c.registry.count(kind)
}

func (c *Coordinator) SetTracing(enabled bool) {
	c.tracer.SetEnabled(enabled)
}

func (c *Coordinator) Tracing() bool {
	return c.tracer.Enabled()
}

// LastKnownPosition falls back to a live query until the first movement has been seen
func (c *Coordinator) LastKnownPosition() (event.Position, bool) {
	c.positionLocker.Lock()
	pos, ok := c.position, c.hasPosition
	c.positionLocker.Unlock()

	if ok || c.locator == nil {
		return pos, ok
	}

	pt, err := c.locator.Position()
	if err != nil {
		l.Verbose().Println("live cursor query:", err)
		return event.Position{}, false
	}
	return event.Position{X: pt.X, Y: pt.Y}, true
}

func (c *Coordinator) Status() []BackendStatus {
	c.locker.Lock()
	defer c.locker.Unlock()

	statuses := make([]BackendStatus, 0, len(c.slots))
	for _, s := range c.slots {
		status := BackendStatus{
			Name:        s.backend.Name(),
			Open:        s.open,
			Unavailable: s.unavailable,
		}
		if live, ok := s.backend.(Liveness); ok && s.open {
			status.Open = live.Alive()
		}
		if s.err != nil {
			status.Error = s.err.Error()
		}
		statuses = append(statuses, status)
	}
	return statuses
}

func (c *Coordinator) sink(name string) Emit {
	return func(sample event.Sample) {
		if sample.Source == "" {
			sample.Source = name
		}
		c.ingest(sample)
	}
}

func (c *Coordinator) ingest(sample event.Sample) {
	if !c.active.Load() {
		return
	}

	c.emitLocker.Lock()
	defer c.emitLocker.Unlock()

	if !c.active.Load() {
		return
	}

	e, ok := c.normalizer.normalize(sample)
	if !ok {
		l.Warn().Println("unknown sample kind from", sample.Source, sample.Kind)
		return
	}

	if c.deduper.duplicate(sample.Source, e) {
		l.Verbose().Println("duplicate", e.Kind().String(), "from", sample.Source)
		return
	}
	e = c.normalizer.measure(e)

	if move, ok := e.(event.MouseMoveEvent); ok {
		c.positionLocker.Lock()
		c.position = event.Position{X: move.X, Y: move.Y}
		c.hasPosition = true
		c.positionLocker.Unlock()
	}

	c.tracer.Trace(e.Kind().String(), e)
	c.registry.dispatch(e)
}

// New never fails, a coordinator without backends reports ErrNoBackends from Start
func New(options Options) *Coordinator {
	c := &Coordinator{
		locker:         &sync.Mutex{},
		emitLocker:     &sync.Mutex{},
		positionLocker: &sync.Mutex{},
		normalizer:     newNormalizer(options.Clock),
		deduper:        newDeduper(options.DedupWindow),
		locator:        options.Locator,
		registry:       newRegistry(),
		tracer:         logger.NewTracer("capture.trace", options.Trace),
	}

	for _, b := range options.Backends {
		if b == nil {
			continue
		}
		c.slots = append(c.slots, &slot{backend: b})
	}

	return c
}
