//go:build !windows

package win32

import (
	"fmt"
	"image"
	"runtime"

	"github.com/allape/sysevents/capture"
)

func (d *Driver) Open() error {
	return fmt.Errorf("%w: win32 cursor on %s", capture.ErrUnavailable, runtime.GOOS)
}

func (d *Driver) Close() error {
	return nil
}

func (d *Driver) Position() (image.Point, error) {
	return image.Point{}, d.Open()
}
