package keyboard

import (
	"errors"
	"strings"
	"sync"

	"github.com/allape/gogger"
	"github.com/allape/sysevents/capture"
	"github.com/allape/sysevents/capture/event"
)

var l = gogger.New("capture.keyboard")

const Name = "keyboard"

type Transition struct {
	Down bool
	Name string
	Code string
	// Timestamp unix milliseconds, 0 for arrival time
	Timestamp int64
}

// Listener is whatever a Starter hands back, torn down through
// Killer, Stopper or ListenerRemover, whichever it implements first.
type Listener any

type Killer interface {
	Kill() error
}

type Stopper interface {
	Stop() error
}

type ListenerRemover interface {
	RemoveAllListeners()
}

type Starter interface {
	Start(handle func(t Transition)) (Listener, error)
}

var (
	mouseButtonNames = []string{"LEFT MOUSE", "RIGHT MOUSE", "MIDDLE MOUSE", "MOUSE BUTTON", "BUTTON"}
	mouseButtonCodes = []string{"BUTTON_LEFT", "BUTTON_RIGHT", "BUTTON_MIDDLE", "MOUSE", "BTN_"}
)

// IsMouseButton global keyboard hooks report mouse buttons as keys too
func IsMouseButton(name, code string) bool {
	name = strings.ToUpper(name)
	code = strings.ToUpper(code)

	for _, n := range mouseButtonNames {
		if strings.Contains(name, n) {
			return true
		}
	}
	for _, c := range mouseButtonCodes {
		if strings.Contains(code, c) {
			return true
		}
	}
	return strings.Contains(name, "MOUSE") || strings.Contains(code, "MOUSE")
}

type Backend struct {
	capture.Backend

	starter Starter
	emit    capture.Emit

	locker      sync.Locker
	listener    Listener
	unavailable error
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

	if b.listener != nil {
		return nil
	}
	if b.unavailable != nil {
		return b.unavailable
	}

	listener, err := b.starter.Start(b.handle)
	if err != nil {
		if errors.Is(err, capture.ErrUnavailable) {
			b.unavailable = err
		}
		return err
	}
	if listener == nil {
		listener = struct{}{}
	}
	b.listener = listener

	return nil
}

func (b *Backend) Close() error {
	b.locker.Lock()
	defer b.locker.Unlock()

	if b.listener == nil {
		return nil
	}
	listener := b.listener
	b.listener = nil

	teardown(listener)

	return nil
}

// teardown never fails, problems are logged
func teardown(listener Listener) {
	defer func() {
		if r := recover(); r != nil {
			l.Warn().Println("keyboard listener teardown panicked:", r)
		}
	}()

	var err error
	switch v := listener.(type) {
	case Killer:
		err = v.Kill()
	case Stopper:
		err = v.Stop()
	case ListenerRemover:
		v.RemoveAllListeners()
	default:
		l.Verbose().Printf("listener %T has no teardown", listener)
	}

	if err != nil {
		l.Warn().Println("keyboard listener teardown:", err)
	}
}

func (b *Backend) handle(t Transition) {
	if IsMouseButton(t.Name, t.Code) {
		l.Verbose().Println("dropped mouse button reported as key:", t.Name, t.Code)
		return
	}
	if b.emit == nil {
		return
	}

	kind := event.KeyUp
	if t.Down {
		kind = event.KeyDown
	}

	b.emit(event.Sample{
		Kind:      kind,
		Source:    Name,
		Timestamp: t.Timestamp,
		KeyName:   t.Name,
		KeyCode:   t.Code,
	})
}

func New(starter Starter) *Backend {
	return &Backend{
		starter: starter,
		locker:  &sync.Mutex{},
	}
}
