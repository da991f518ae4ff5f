//go:build windows

package win32

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"
	"unsafe"

	"github.com/allape/gogger"
	"github.com/allape/sysevents/capture"
	"github.com/allape/sysevents/capture/keyboard"
	"golang.org/x/sys/windows"
)

var l = gogger.New("capture.keyboard.win32")

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
	procGetKeyNameTextW     = user32.NewProc("GetKeyNameTextW")
)

const (
	whKeyboardLL = 13

	wmQuit       = 0x0012
	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105

	llkhfExtended = 0x01
)

type kbdllHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

var (
	callbackOnce sync.Once
	callback     uintptr

	active = &slot{}
)

func hookProc(nCode int, wParam uintptr, lParam uintptr) uintptr {
	if nCode >= 0 {
		if handle := active.get(); handle != nil {
			info := (*kbdllHookStruct)(unsafe.Pointer(lParam))
			switch wParam {
			case wmKeyDown, wmSysKeyDown:
				handle(transition(info, true))
			case wmKeyUp, wmSysKeyUp:
				handle(transition(info, false))
			}
		}
	}
	r, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return r
}

func transition(info *kbdllHookStruct, down bool) keyboard.Transition {
	return keyboard.Transition{
		Down:      down,
		Name:      keyName(info),
		Code:      fmt.Sprintf("VK_0x%02X", info.VkCode),
		Timestamp: time.Now().UnixMilli(),
	}
}

func keyName(info *kbdllHookStruct) string {
	lParam := uintptr(info.ScanCode) << 16
	if info.Flags&llkhfExtended != 0 {
		lParam |= 1 << 24
	}

	buf := make([]uint16, 64)
	n, _, _ := procGetKeyNameTextW.Call(lParam, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return strings.ToUpper(syscall.UTF16ToString(buf[:n]))
}

type listener struct {
	threadID uint32
	done     chan struct{}
}

func (h *listener) Kill() error {
	return stop(active, func() error {
		r, _, err := procPostThreadMessageW.Call(uintptr(h.threadID), wmQuit, 0, 0)
		if r == 0 {
			return fmt.Errorf("PostThreadMessageW: %w", err)
		}
		return nil
	})
}

func (s *Starter) Start(handle func(t keyboard.Transition)) (keyboard.Listener, error) {
	if err := procSetWindowsHookExW.Find(); err != nil {
		return nil, fmt.Errorf("%w: SetWindowsHookExW: %v", capture.ErrUnavailable, err)
	}

	if err := active.claim(handle); err != nil {
		return nil, err
	}

	callbackOnce.Do(func() {
		callback = windows.NewCallback(hookProc)
	})

	h := &listener{done: make(chan struct{})}
	ready := make(chan error, 1)

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(h.done)

		h.threadID = windows.GetCurrentThreadId()

		hook, _, err := procSetWindowsHookExW.Call(whKeyboardLL, callback, 0, 0)
		if hook == 0 {
			ready <- fmt.Errorf("%w: SetWindowsHookExW: %v", capture.ErrUnavailable, err)
			return
		}
		defer func() {
			_, _, _ = procUnhookWindowsHookEx.Call(hook)
			l.Verbose().Println("keyboard hook removed")
		}()

		ready <- nil

		var m msg
		for {
			r, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
			if int32(r) <= 0 {
				return
			}
		}
	}()

	if err := <-ready; err != nil {
		active.release()
		return nil, err
	}

	return h, nil
}
