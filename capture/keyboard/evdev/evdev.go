package evdev

import (
	"github.com/allape/sysevents/capture/evdev"
	"github.com/allape/sysevents/capture/keyboard"
)

type Starter struct {
	keyboard.Starter

	Dir string
	// Repeat reports auto-repeat as additional key downs
	Repeat bool
}

type listener struct {
	reader *evdev.Reader
}

func (l *listener) Stop() error {
	return l.reader.Close()
}

func (s *Starter) Start(handle func(t keyboard.Transition)) (keyboard.Listener, error) {
	reader := evdev.NewReader(s.Dir, evdev.Keyboard, func(e evdev.InputEvent) {
		t, ok := s.transition(e)
		if ok {
			handle(t)
		}
	})

	err := reader.Start()
	if err != nil {
		return nil, err
	}

	return &listener{reader: reader}, nil
}

func (s *Starter) transition(e evdev.InputEvent) (keyboard.Transition, bool) {
	if e.Type != evdev.EvKey {
		return keyboard.Transition{}, false
	}

	var down bool
	switch e.Value {
	case evdev.KeyPressed:
		down = true
	case evdev.KeyReleased:
		down = false
	case evdev.KeyRepeated:
		if !s.Repeat {
			return keyboard.Transition{}, false
		}
		down = true
	default:
		return keyboard.Transition{}, false
	}

	name, code := evdev.KeyName(e.Code)
	return keyboard.Transition{
		Down:      down,
		Name:      name,
		Code:      code,
		Timestamp: e.Millis(),
	}, true
}

func New(dir string, repeat bool) *Starter {
	return &Starter{Dir: dir, Repeat: repeat}
}
