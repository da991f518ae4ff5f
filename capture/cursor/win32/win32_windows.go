//go:build windows

package win32

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/allape/sysevents/capture"
	"golang.org/x/sys/windows"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	procGetCursorPos = user32.NewProc("GetCursorPos")
)

type point struct {
	X int32
	Y int32
}

func (d *Driver) Open() error {
	err := procGetCursorPos.Find()
	if err != nil {
		return fmt.Errorf("%w: GetCursorPos: %v", capture.ErrUnavailable, err)
	}
	return nil
}

func (d *Driver) Close() error {
	return nil
}

func (d *Driver) Position() (image.Point, error) {
	var pt point
	r, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if r == 0 {
		return image.Point{}, fmt.Errorf("GetCursorPos: %w", err)
	}
	return image.Pt(int(pt.X), int(pt.Y)), nil
}
