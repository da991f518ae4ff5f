package capture

import (
	"errors"
	"image"

	"github.com/allape/sysevents/capture/event"
)

var (
	// ErrUnavailable backend cannot run on this host, wrap it to report a capability limitation
	ErrUnavailable = errors.New("capability unavailable")
	ErrNoBackends  = errors.New("no capture backend could be started")
)

// Emit delivers a raw sample to the coordinator, it is safe to call from any goroutine.
type Emit func(sample event.Sample)

// Backend
// Bind is called exactly once before the first Open.
// Open may be called again after Close.
// Close must not wait for goroutines that may be blocked inside Emit.
type Backend interface {
	Name() string
	Bind(emit Emit)
	Open() error
	Close() error
}

// Locator answers a live cursor position query.
type Locator interface {
	Position() (image.Point, error)
}

// Liveness is implemented by backends that can lose their source while open.
type Liveness interface {
	Alive() bool
}
