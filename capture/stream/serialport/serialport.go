package serialport

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sync"
	"time"

	"github.com/allape/gogger"
	"github.com/allape/sysevents/capture"
	"github.com/allape/sysevents/capture/helper"
	"go.bug.st/serial"
)

var l = gogger.New("capture.stream.serialport")

const (
	Name              = "serial"
	DefaultBaud       = 115200
	DefaultRetryDelay = time.Second
)

// Source reads helper protocol lines from a serial device, e.g. a hardware mouse tap.
// A lost device is reopened every RetryDelay until Close.
type Source struct {
	capture.Backend

	emit capture.Emit

	locker sync.Locker
	active bool
	port   io.ReadCloser

	timer    *time.Timer
	timerSeq uint64

	// open defaults to openSerial
	open func() (io.ReadCloser, error)

	Device     string
	Baud       int
	RetryDelay time.Duration
}

func (s *Source) Name() string {
	return Name
}

func (s *Source) Bind(emit capture.Emit) {
	s.emit = emit
}

func (s *Source) openSerial() (io.ReadCloser, error) {
	port, err := serial.Open(s.Device, &serial.Mode{
		BaudRate: s.Baud,
	})
	if err != nil {
		var portErr *serial.PortError
		if errors.Is(err, fs.ErrNotExist) ||
			errors.As(err, &portErr) && (portErr.Code() == serial.PortNotFound || portErr.Code() == serial.PermissionDenied) {
			return nil, fmt.Errorf("%w: %s: %v", capture.ErrUnavailable, s.Device, err)
		}
		return nil, err
	}
	return port, nil
}

// connect must be called with the locker held
func (s *Source) connect() error {
	if s.port != nil {
		return nil
	}

	port, err := s.open()
	if err != nil {
		return err
	}
	s.port = port

	go s.run(port)

	return nil
}

func (s *Source) Open() error {
	s.locker.Lock()
	defer s.locker.Unlock()

	err := s.connect()
	if err != nil {
		return err
	}
	s.active = true

	return nil
}

func (s *Source) Close() error {
	s.locker.Lock()
	defer s.locker.Unlock()

	s.active = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if s.port == nil {
		return nil
	}

	err := s.port.Close()
	s.port = nil
	return err
}

func (s *Source) Alive() bool {
	s.locker.Lock()
	defer s.locker.Unlock()
	return s.port != nil
}

func (s *Source) run(port io.ReadCloser) {
	s.pump(port)
	s.lost(port)
}

// lost releases a port whose reader ended, unless Close already did
func (s *Source) lost(port io.ReadCloser) {
	s.locker.Lock()
	defer s.locker.Unlock()

	if s.port != port {
		return
	}
	_ = port.Close()
	s.port = nil

	if !s.active {
		return
	}
	l.Warn().Println(s.Device, "lost, reopening in", s.RetryDelay)
	s.scheduleReopen()
}

// scheduleReopen must be called with the locker held
func (s *Source) scheduleReopen() {
	if s.timer != nil {
		return
	}
	s.timerSeq++
	seq := s.timerSeq
	s.timer = time.AfterFunc(s.RetryDelay, func() {
		s.reopen(seq)
	})
}

func (s *Source) reopen(seq uint64) {
	s.locker.Lock()
	defer s.locker.Unlock()

	if s.timer == nil || s.timerSeq != seq {
		return
	}
	s.timer = nil

	if !s.active {
		return
	}

	err := s.connect()
	if err != nil {
		l.Verbose().Println("reopen", s.Device, err)
		s.scheduleReopen()
		return
	}
	l.Info().Println(s.Device, "reopened")
}

func (s *Source) pump(r io.Reader) {
	lines := &helper.LineBuffer{}
	buf := make([]byte, 1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			for _, line := range lines.Write(buf[:n]) {
				s.handleLine(line)
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				l.Verbose().Println("read error:", err)
			}
			return
		}
		if n == 0 {
			l.Warn().Println("EOF")
			return
		}
	}
}

func (s *Source) handleLine(line string) {
	sample, err := helper.ParseLine(line)
	if err != nil {
		l.Warn().Printf("malformed line %q: %v", line, err)
		return
	}
	if s.emit == nil {
		return
	}
	sample.Source = Name
	s.emit(sample)
}

func New(device string, baud int) *Source {
	if baud <= 0 {
		baud = DefaultBaud
	}
	s := &Source{
		locker:     &sync.Mutex{},
		Device:     device,
		Baud:       baud,
		RetryDelay: DefaultRetryDelay,
	}
	s.open = s.openSerial
	return s
}
