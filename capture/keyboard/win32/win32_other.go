//go:build !windows

package win32

import (
	"fmt"
	"runtime"

	"github.com/allape/sysevents/capture"
	"github.com/allape/sysevents/capture/keyboard"
)

func (s *Starter) Start(handle func(t keyboard.Transition)) (keyboard.Listener, error) {
	return nil, fmt.Errorf("%w: win32 keyboard hook on %s", capture.ErrUnavailable, runtime.GOOS)
}
