package event

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCanonicalButton(t *testing.T) {
	cases := []struct {
		scheme ButtonScheme
		code   int
		name   string
		want   Button
	}{
		{SchemeIndex, 0, "", Left},
		{SchemeIndex, 1, "", Middle},
		{SchemeIndex, 2, "", Right},
		{SchemeIndex, 7, "", Left},
		{SchemeEvdev, BtnLeft, "", Left},
		{SchemeEvdev, BtnMiddle, "", Middle},
		{SchemeEvdev, BtnRight, "", Right},
		{SchemeEvdev, 0x113, "", Left},
		{SchemeWin32, WMLButtonDown, "", Left},
		{SchemeWin32, WMMButtonDown, "", Middle},
		{SchemeWin32, WMRButtonDown, "", Right},
		{SchemeWin32, 0x020B, "", Left},
		{SchemeName, 0, "left", Left},
		{SchemeName, 0, "Middle", Middle},
		{SchemeName, 0, " RIGHT ", Right},
		{SchemeName, 0, "x1", Left},
		{ButtonScheme(99), 2, "right", Left},
	}

	for _, c := range cases {
		got := CanonicalButton(c.scheme, c.code, c.name)
		if got != c.want {
			t.Fatalf("scheme %d code %#x name %q: expected %s, got %s", c.scheme, c.code, c.name, c.want, got)
		}
		if got < Left || got > Right {
			t.Fatalf("button out of range: %d", got)
		}
	}
}

func TestDirectionOf(t *testing.T) {
	if DirectionOf(120, Down) != Up {
		t.Fatal("positive delta should be up")
	}
	if DirectionOf(-120, Up) != Down {
		t.Fatal("negative delta should be down")
	}
	if DirectionOf(0, Up) != Up {
		t.Fatal("zero delta should keep the hint")
	}
	if DirectionOf(0, "") != Down {
		t.Fatal("zero delta without hint should be down")
	}
}

func TestKindString(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseKind(strings.ToUpper(k.String()))
		if err != nil {
			t.Fatal(err)
		}
		if parsed != k {
			t.Fatalf("expected %s, got %s", k, parsed)
		}
	}
	if _, err := ParseKind("wheel"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if Kind(42).Valid() {
		t.Fatal("kind 42 should be invalid")
	}
}

func TestKeyEventKind(t *testing.T) {
	if (KeyEvent{Down: true}).Kind() != KeyDown {
		t.Fatal("down key should be keydown")
	}
	if (KeyEvent{}).Kind() != KeyUp {
		t.Fatal("released key should be keyup")
	}

	bs, err := json.Marshal(KeyEvent{Key: "A", Code: "KeyA", Timestamp: 1, Down: true})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(bs), "Down") {
		t.Fatalf("down flag leaked into payload: %s", bs)
	}
}
