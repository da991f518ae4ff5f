package win32

import (
	"github.com/allape/sysevents/capture/cursor"
)

// Driver reads the cursor with user32 GetCursorPos, stateless
type Driver struct {
	cursor.Driver
}

func New() *Driver {
	return &Driver{}
}
