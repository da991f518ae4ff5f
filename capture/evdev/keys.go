package evdev

import "fmt"

type keyName struct {
	name string
	code string
}

var keyNames = map[uint16]keyName{
	1:  {"ESC", "KEY_ESC"},
	12: {"MINUS", "KEY_MINUS"},
	13: {"EQUALS", "KEY_EQUAL"},
	14: {"BACKSPACE", "KEY_BACKSPACE"},
	15: {"TAB", "KEY_TAB"},
	26: {"SQUARE BRACKET OPEN", "KEY_LEFTBRACE"},
	27: {"SQUARE BRACKET CLOSE", "KEY_RIGHTBRACE"},
	28: {"RETURN", "KEY_ENTER"},
	29: {"LEFT CTRL", "KEY_LEFTCTRL"},
	39: {"SEMICOLON", "KEY_SEMICOLON"},
	40: {"QUOTE", "KEY_APOSTROPHE"},
	41: {"BACKTICK", "KEY_GRAVE"},
	42: {"LEFT SHIFT", "KEY_LEFTSHIFT"},
	43: {"BACKSLASH", "KEY_BACKSLASH"},
	51: {"COMMA", "KEY_COMMA"},
	52: {"DOT", "KEY_DOT"},
	53: {"FORWARD SLASH", "KEY_SLASH"},
	54: {"RIGHT SHIFT", "KEY_RIGHTSHIFT"},
	55: {"NUMPAD MULTIPLY", "KEY_KPASTERISK"},
	56: {"LEFT ALT", "KEY_LEFTALT"},
	57: {"SPACE", "KEY_SPACE"},
	58: {"CAPS LOCK", "KEY_CAPSLOCK"},
	69: {"NUM LOCK", "KEY_NUMLOCK"},
	70: {"SCROLL LOCK", "KEY_SCROLLLOCK"},
	74: {"NUMPAD MINUS", "KEY_KPMINUS"},
	78: {"NUMPAD PLUS", "KEY_KPPLUS"},
	83: {"NUMPAD DOT", "KEY_KPDOT"},
	87: {"F11", "KEY_F11"},
	88: {"F12", "KEY_F12"},
	96: {"NUMPAD RETURN", "KEY_KPENTER"},
	97: {"RIGHT CTRL", "KEY_RIGHTCTRL"},
	98: {"NUMPAD DIVIDE", "KEY_KPSLASH"},
	99: {"PRINT SCREEN", "KEY_SYSRQ"},
	100: {"RIGHT ALT", "KEY_RIGHTALT"},
	102: {"HOME", "KEY_HOME"},
	103: {"UP ARROW", "KEY_UP"},
	104: {"PAGE UP", "KEY_PAGEUP"},
	105: {"LEFT ARROW", "KEY_LEFT"},
	106: {"RIGHT ARROW", "KEY_RIGHT"},
	107: {"END", "KEY_END"},
	108: {"DOWN ARROW", "KEY_DOWN"},
	109: {"PAGE DOWN", "KEY_PAGEDOWN"},
	110: {"INS", "KEY_INSERT"},
	111: {"DELETE", "KEY_DELETE"},
	113: {"MUTE", "KEY_MUTE"},
	114: {"VOLUME DOWN", "KEY_VOLUMEDOWN"},
	115: {"VOLUME UP", "KEY_VOLUMEUP"},
	119: {"PAUSE", "KEY_PAUSE"},
	125: {"LEFT META", "KEY_LEFTMETA"},
	126: {"RIGHT META", "KEY_RIGHTMETA"},
	127: {"MENU", "KEY_COMPOSE"},

	BtnLeft:   {"LEFT MOUSE", "BTN_LEFT"},
	BtnRight:  {"RIGHT MOUSE", "BTN_RIGHT"},
	BtnMiddle: {"MIDDLE MOUSE", "BTN_MIDDLE"},
	BtnSide:   {"MOUSE BUTTON 4", "BTN_SIDE"},
	BtnExtra:  {"MOUSE BUTTON 5", "BTN_EXTRA"},
}

func init() {
	rows := []struct {
		first uint16
		keys  string
	}{
		{16, "QWERTYUIOP"},
		{30, "ASDFGHJKL"},
		{44, "ZXCVBNM"},
	}
	for _, row := range rows {
		for i, r := range row.keys {
			keyNames[row.first+uint16(i)] = keyName{string(r), "KEY_" + string(r)}
		}
	}

	// KEY_1 is 2 ... KEY_0 is 11
	for i, r := range "1234567890" {
		keyNames[2+uint16(i)] = keyName{string(r), "KEY_" + string(r)}
	}

	// KEY_F1 is 59 ... KEY_F10 is 68
	for i := 1; i <= 10; i++ {
		name := fmt.Sprintf("F%d", i)
		keyNames[58+uint16(i)] = keyName{name, "KEY_" + name}
	}

	numpad := map[uint16]string{71: "7", 72: "8", 73: "9", 75: "4", 76: "5", 77: "6", 79: "1", 80: "2", 81: "3", 82: "0"}
	for code, digit := range numpad {
		keyNames[code] = keyName{"NUMPAD " + digit, "KEY_KP" + digit}
	}
}

// KeyName empty name and a numeric code when the key is not in the table
func KeyName(code uint16) (name string, codeName string) {
	if k, ok := keyNames[code]; ok {
		return k.name, k.code
	}
	return "", fmt.Sprintf("KEY_%d", code)
}
