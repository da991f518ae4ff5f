package hook

import (
	"sync"

	"github.com/allape/gogger"
	"github.com/allape/sysevents/capture"
	"github.com/allape/sysevents/capture/event"
)

var l = gogger.New("capture.hook")

const (
	Name = "hook"
	// WheelDelta native units per wheel notch
	WheelDelta = 120
)

// Source is a platform mouse hook.
// Scroll samples carry DeltaY and DeltaX in wheel notches, clicks carry their native button scheme.
type Source interface {
	Install(emit func(sample event.Sample)) error
	Uninstall() error
}

type Backend struct {
	capture.Backend

	source Source
	emit   capture.Emit

	locker    sync.Locker
	installed bool
}

func (b *Backend) Name() string {
	return Name
}

func (b *Backend) Bind(emit capture.Emit) {
	b.emit = emit
}

func (b *Backend) Open() error {
	b.locker.Lock()
	defer b.locker.Unlock()

	if b.installed {
		l.Verbose().Println("hook already installed")
		return nil
	}

	err := b.source.Install(b.forward)
	if err != nil {
		return err
	}
	b.installed = true

	return nil
}

func (b *Backend) Close() error {
	b.locker.Lock()
	defer b.locker.Unlock()

	if !b.installed {
		return nil
	}
	b.installed = false

	return b.source.Uninstall()
}

func (b *Backend) forward(sample event.Sample) {
	if b.emit == nil {
		return
	}

	sample.Source = Name

	switch sample.Kind {
	case event.Click, event.Scroll:
	default:
		l.Verbose().Println("ignored", sample.Kind.String(), "sample")
		return
	}

	if sample.Kind == event.Scroll {
		sample.DeltaY *= WheelDelta
		sample.DeltaX *= WheelDelta
	}

	b.emit(sample)
}

func New(source Source) *Backend {
	return &Backend{
		source: source,
		locker: &sync.Mutex{},
	}
}
