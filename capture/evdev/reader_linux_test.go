//go:build linux

package evdev

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/allape/sysevents/capture"
)

func TestReaderStreamsEvents(t *testing.T) {
	dir := t.TempDir()

	var data []byte
	for i := range 3 {
		data = append(data, Encode(InputEvent{Sec: 1, Type: EvKey, Code: BtnLeft, Value: int32(i % 2)})...)
	}
	if err := os.WriteFile(filepath.Join(dir, "usb-Test-event-mouse"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	events := make(chan InputEvent, 8)
	r := NewReader(dir, Mouse, func(e InputEvent) {
		select {
		case events <- e:
		default:
		}
	})

	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}

	for i := range 3 {
		select {
		case e := <-events:
			if e.Code != BtnLeft || e.Value != int32(i%2) {
				t.Fatalf("event %d: unexpected %+v", i, e)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timeout waiting for event %d", i)
		}
	}

	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if r.Running() {
		t.Fatal("reader should be stopped")
	}
}

func TestReaderWithoutDevices(t *testing.T) {
	r := NewReader(t.TempDir(), Keyboard, nil)
	err := r.Start()
	if !errors.Is(err, capture.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
