package evdev

import (
	"image"
	"sync"

	"github.com/allape/gogger"
	"github.com/allape/sysevents/capture"
	"github.com/allape/sysevents/capture/event"
	"github.com/allape/sysevents/capture/evdev"
	"github.com/allape/sysevents/capture/hook"
)

var l = gogger.New("capture.hook.evdev")

// Source turns evdev mouse reports into click and scroll samples.
// Relative devices carry no absolute position, so coordinates come from Locator.
type Source struct {
	hook.Source

	Dir     string
	Locator capture.Locator

	locker sync.Locker
	reader *evdev.Reader
	emit   func(sample event.Sample)

	wheelY int
	wheelX int
}

func (s *Source) Install(emit func(sample event.Sample)) error {
	s.locker.Lock()
	defer s.locker.Unlock()

	if s.reader != nil {
		return nil
	}

	s.emit = emit
	reader := evdev.NewReader(s.Dir, evdev.Mouse, s.handle)
	err := reader.Start()
	if err != nil {
		return err
	}
	s.reader = reader

	return nil
}

func (s *Source) Uninstall() error {
	s.locker.Lock()
	defer s.locker.Unlock()

	if s.reader == nil {
		return nil
	}
	err := s.reader.Close()
	s.reader = nil
	return err
}

func (s *Source) position() image.Point {
	if s.Locator == nil {
		return image.Point{}
	}
	pt, err := s.Locator.Position()
	if err != nil {
		l.Verbose().Println("cursor position:", err)
		return image.Point{}
	}
	return pt
}

// handle runs on the reader goroutine only
func (s *Source) handle(e evdev.InputEvent) {
	switch e.Type {
	case evdev.EvKey:
		if e.Value != evdev.KeyPressed {
			return
		}
		switch e.Code {
		case evdev.BtnLeft, evdev.BtnRight, evdev.BtnMiddle:
		default:
			return
		}
		pt := s.position()
		s.emit(event.Sample{
			Kind:       event.Click,
			X:          pt.X,
			Y:          pt.Y,
			Timestamp:  e.Millis(),
			Scheme:     event.SchemeEvdev,
			ButtonCode: int(e.Code),
		})
	case evdev.EvRel:
		switch e.Code {
		case evdev.RelWheel:
			s.wheelY += int(e.Value)
		case evdev.RelHWheel:
			s.wheelX += int(e.Value)
		}
	case evdev.EvSyn:
		if s.wheelY == 0 && s.wheelX == 0 {
			return
		}
		pt := s.position()
		s.emit(event.Sample{
			Kind:      event.Scroll,
			X:         pt.X,
			Y:         pt.Y,
			Timestamp: e.Millis(),
			DeltaY:    s.wheelY,
			DeltaX:    s.wheelX,
		})
		s.wheelY, s.wheelX = 0, 0
	}
}

func New(dir string, locator capture.Locator) *Source {
	return &Source{
		Dir:     dir,
		Locator: locator,
		locker:  &sync.Mutex{},
	}
}
