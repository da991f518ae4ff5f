package evdev

import (
	"sync"
	"time"

	"github.com/allape/gogger"
)

var l = gogger.New("capture.evdev")

const (
	pollTimeout = 200 * time.Millisecond
	rescanDelay = 500 * time.Millisecond
	readBatch   = 64
)

// Reader streams input events from every device of Class found in Dir,
// devices plugged in later are picked up through fsnotify.
type Reader struct {
	Dir    string
	Class  Class
	Handle func(e InputEvent)

	locker sync.Locker
	stop   chan struct{}
}

func (r *Reader) Running() bool {
	r.locker.Lock()
	defer r.locker.Unlock()
	return r.stop != nil
}

// Close signals the read loop and returns, devices are released by the loop itself
func (r *Reader) Close() error {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.stop == nil {
		return nil
	}
	close(r.stop)
	r.stop = nil
	return nil
}

func NewReader(dir string, class Class, handle func(e InputEvent)) *Reader {
	if dir == "" {
		dir = DefaultDir
	}
	return &Reader{
		Dir:    dir,
		Class:  class,
		Handle: handle,
		locker: &sync.Mutex{},
	}
}
