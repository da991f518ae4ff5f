//go:build !linux

package evdev

import (
	"fmt"
	"runtime"

	"github.com/allape/sysevents/capture"
)

func (r *Reader) Start() error {
	return fmt.Errorf("%w: evdev on %s", capture.ErrUnavailable, runtime.GOOS)
}
