package event

import (
	"fmt"
	"strings"
)

type Kind int

const (
	MouseMove Kind = iota
	Click
	Scroll
	KeyDown
	KeyUp
)

var kindNames = [...]string{
	MouseMove: "mousemove",
	Click:     "click",
	Scroll:    "scroll",
	KeyDown:   "keydown",
	KeyUp:     "keyup",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) Valid() bool {
	return k >= MouseMove && k <= KeyUp
}

func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", s)
}

func Kinds() []Kind {
	return []Kind{MouseMove, Click, Scroll, KeyDown, KeyUp}
}

type Event interface {
	Kind() Kind
	// Time in unix milliseconds
	Time() int64
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (b Bounds) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

type MouseMoveEvent struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Timestamp int64  `json:"timestamp"`
	Screen    Bounds `json:"screen"`
}

func (e MouseMoveEvent) Kind() Kind  { return MouseMove }
func (e MouseMoveEvent) Time() int64 { return e.Timestamp }

type ClickEvent struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Button    Button `json:"button"`
	Timestamp int64  `json:"timestamp"`
}

func (e ClickEvent) Kind() Kind  { return Click }
func (e ClickEvent) Time() int64 { return e.Timestamp }

// ScrollEvent
// Delta always equals DeltaY, both are exposed for consumers reading either one.
type ScrollEvent struct {
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Direction Direction `json:"direction"`
	Delta     int       `json:"delta"`
	DeltaY    int       `json:"deltaY"`
	DeltaX    int       `json:"deltaX"`
	Velocity  float64   `json:"velocity"`
	Timestamp int64     `json:"timestamp"`
}

func (e ScrollEvent) Kind() Kind  { return Scroll }
func (e ScrollEvent) Time() int64 { return e.Timestamp }

type KeyEvent struct {
	Key       string `json:"key"`
	Code      string `json:"code"`
	Timestamp int64  `json:"timestamp"`
	Down      bool   `json:"-"`
}

func (e KeyEvent) Kind() Kind {
	if e.Down {
		return KeyDown
	}
	return KeyUp
}

func (e KeyEvent) Time() int64 { return e.Timestamp }
