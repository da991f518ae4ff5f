package win32

import (
	"errors"
	"sync"

	"github.com/allape/sysevents/capture/keyboard"
)

var ErrAlreadyInstalled = errors.New("keyboard hook already installed in this process")

// Starter installs a WH_KEYBOARD_LL hook on a dedicated OS thread
type Starter struct {
	keyboard.Starter
}

// slot holds the one handler a low level hook callback can reach
type slot struct {
	locker sync.Mutex
	handle func(t keyboard.Transition)
}

func (s *slot) claim(handle func(t keyboard.Transition)) error {
	s.locker.Lock()
	defer s.locker.Unlock()

	if s.handle != nil {
		return ErrAlreadyInstalled
	}
	s.handle = handle
	return nil
}

func (s *slot) release() {
	s.locker.Lock()
	s.handle = nil
	s.locker.Unlock()
}

func (s *slot) get() func(t keyboard.Transition) {
	s.locker.Lock()
	defer s.locker.Unlock()
	return s.handle
}

// stop frees the slot before asking the hook thread to quit, so a failed post cannot keep it claimed
func stop(s *slot, post func() error) error {
	s.release()
	return post()
}

func New() *Starter {
	return &Starter{}
}
