package win32

import (
	"errors"
	"testing"

	"github.com/allape/sysevents/capture/keyboard"
)

func TestSlotSingleClaim(t *testing.T) {
	s := &slot{}
	handle := func(t keyboard.Transition) {}

	if err := s.claim(handle); err != nil {
		t.Fatal(err)
	}
	if err := s.claim(handle); !errors.Is(err, ErrAlreadyInstalled) {
		t.Fatalf("expected ErrAlreadyInstalled, got %v", err)
	}
	if s.get() == nil {
		t.Fatal("expected claimed handler")
	}

	s.release()
	if s.get() != nil {
		t.Fatal("expected released slot")
	}
	if err := s.claim(handle); err != nil {
		t.Fatalf("expected claim after release, got %v", err)
	}
}

func TestStopReleasesWhenPostFails(t *testing.T) {
	s := &slot{}
	if err := s.claim(func(t keyboard.Transition) {}); err != nil {
		t.Fatal(err)
	}

	posted := false
	err := stop(s, func() error {
		posted = true
		if s.get() != nil {
			t.Error("slot still claimed while posting quit")
		}
		return errors.New("thread gone")
	})
	if err == nil || !posted {
		t.Fatalf("expected post error to be returned, got %v", err)
	}

	if err := s.claim(func(t keyboard.Transition) {}); err != nil {
		t.Fatalf("a failed quit must not block the next install: %v", err)
	}
}
