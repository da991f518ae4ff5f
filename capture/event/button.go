package event

import "strings"

// Button is the canonical mouse button, encoded as 0 left, 1 middle, 2 right.
type Button int

const (
	Left   Button = 0
	Middle Button = 1
	Right  Button = 2
)

func (b Button) String() string {
	switch b {
	case Middle:
		return "middle"
	case Right:
		return "right"
	default:
		return "left"
	}
}

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// DirectionOf positive is up, negative is down, zero falls back to hint, then down
func DirectionOf(delta int, hint Direction) Direction {
	switch {
	case delta > 0:
		return Up
	case delta < 0:
		return Down
	case hint == Up:
		return Up
	default:
		return Down
	}
}

func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up
	case "down":
		return Down
	}
	return ""
}

// ButtonScheme identifies how a backend numbers or names its buttons.
type ButtonScheme int

const (
	SchemeIndex ButtonScheme = iota
	SchemeEvdev
	SchemeWin32
	SchemeName
)

// linux/input-event-codes.h
const (
	BtnLeft   = 0x110
	BtnRight  = 0x111
	BtnMiddle = 0x112
)

// winuser.h
const (
	WMLButtonDown = 0x0201
	WMRButtonDown = 0x0204
	WMMButtonDown = 0x0207
)

// CanonicalButton maps a native button code or name to Button, anything unrecognized is Left.
func CanonicalButton(scheme ButtonScheme, code int, name string) Button {
	switch scheme {
	case SchemeIndex:
		switch code {
		case 1:
			return Middle
		case 2:
			return Right
		}
	case SchemeEvdev:
		switch code {
		case BtnMiddle:
			return Middle
		case BtnRight:
			return Right
		}
	case SchemeWin32:
		switch code {
		case WMMButtonDown:
			return Middle
		case WMRButtonDown:
			return Right
		}
	case SchemeName:
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "middle":
			return Middle
		case "right":
			return Right
		}
	}
	return Left
}
