//go:build linux

package evdev

import (
	"errors"
	"fmt"
	"time"

	"github.com/allape/sysevents/capture"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/sys/unix"
)

func (r *Reader) Start() error {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.stop != nil {
		return nil
	}

	paths, err := Scan(r.Dir, r.Class)
	if err != nil {
		return fmt.Errorf("%w: scan %s: %v", capture.ErrUnavailable, r.Dir, err)
	}

	devices := map[string]int{}
	var lastErr error
	for _, path := range paths {
		fd, err := openDevice(path)
		if err != nil {
			lastErr = err
			l.Warn().Println("open", path, err)
			continue
		}
		devices[path] = fd
	}

	if len(devices) == 0 {
		if lastErr == nil {
			lastErr = fmt.Errorf("no %s device in %s", r.Class, r.Dir)
		}
		return fmt.Errorf("%w: %v", capture.ErrUnavailable, lastErr)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		l.Warn().Println("device hotplug disabled:", err)
		watcher = nil
	} else if err = watcher.Add(r.Dir); err != nil {
		l.Warn().Println("device hotplug disabled:", err)
		_ = watcher.Close()
		watcher = nil
	}

	l.Info().Printf("reading %d %s device(s)", len(devices), r.Class)

	stop := make(chan struct{})
	r.stop = stop
	go r.loop(stop, devices, watcher)

	return nil
}

func openDevice(path string) (int, error) {
	return unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
}

func (r *Reader) loop(stop chan struct{}, devices map[string]int, watcher *fsnotify.Watcher) {
	defer func() {
		for path, fd := range devices {
			_ = unix.Close(fd)
			l.Verbose().Println("released", path)
		}
		if watcher != nil {
			_ = watcher.Close()
		}
	}()

	var watchEvents <-chan fsnotify.Event
	var watchErrors <-chan error
	if watcher != nil {
		watchEvents = watcher.Events
		watchErrors = watcher.Errors
	}

	var rescanAt time.Time
	buf := make([]byte, InputEventSize*readBatch)

	for {
		select {
		case <-stop:
			return
		case ev, ok := <-watchEvents:
			if !ok {
				watchEvents = nil
			} else if ev.Op&(fsnotify.Create|fsnotify.Remove) != 0 {
				rescanAt = time.Now().Add(rescanDelay)
			}
			continue
		case err, ok := <-watchErrors:
			if !ok {
				watchErrors = nil
			} else {
				l.Warn().Println("device watcher:", err)
			}
			continue
		default:
		}

		if !rescanAt.IsZero() && time.Now().After(rescanAt) {
			rescanAt = time.Time{}
			r.rescan(devices)
		}

		if len(devices) == 0 {
			select {
			case <-stop:
				return
			case <-time.After(pollTimeout):
			}
			continue
		}

		paths := make([]string, 0, len(devices))
		fds := make([]unix.PollFd, 0, len(devices))
		for path, fd := range devices {
			paths = append(paths, path)
			fds = append(fds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
		}

		n, err := unix.Poll(fds, int(pollTimeout.Milliseconds()))
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			l.Error().Println("poll:", err)
			time.Sleep(pollTimeout)
			continue
		}
		if n == 0 {
			continue
		}

		for i, pfd := range fds {
			if pfd.Revents == 0 {
				continue
			}

			if pfd.Revents&unix.POLLIN != 0 {
				r.drain(int(pfd.Fd), buf, stop)
			}

			if pfd.Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
				l.Info().Println("device gone:", paths[i])
				_ = unix.Close(int(pfd.Fd))
				delete(devices, paths[i])
			}
		}
	}
}

func (r *Reader) drain(fd int, buf []byte, stop chan struct{}) {
	for {
		n, err := unix.Read(fd, buf)
		if err != nil || n <= 0 {
			if err != nil && !errors.Is(err, unix.EAGAIN) {
				l.Verbose().Println("read:", err)
			}
			return
		}

		for _, e := range DecodeAll(buf[:n]) {
			select {
			case <-stop:
				return
			default:
			}
			if r.Handle != nil {
				r.Handle(e)
			}
		}

		if n < len(buf) {
			return
		}
	}
}

func (r *Reader) rescan(devices map[string]int) {
	paths, err := Scan(r.Dir, r.Class)
	if err != nil {
		l.Warn().Println("rescan:", err)
		return
	}

	for _, path := range paths {
		if _, ok := devices[path]; ok {
			continue
		}
		fd, err := openDevice(path)
		if err != nil {
			l.Warn().Println("open", path, err)
			continue
		}
		devices[path] = fd
		l.Info().Println("device attached:", path)
	}
}
