package factory

import (
	"github.com/allape/sysevents/capture/keyboard"
	kbevdev "github.com/allape/sysevents/capture/keyboard/evdev"
	kbwin32 "github.com/allape/sysevents/capture/keyboard/win32"
	"github.com/allape/sysevents/config"
)

func resolveKeyboard(t config.KeyboardDriverType, goos string) config.KeyboardDriverType {
	if t != config.KeyboardAuto {
		return t
	}
	switch goos {
	case "linux":
		return config.KeyboardEvdev
	case "windows":
		return config.KeyboardWin32
	}
	return config.KeyboardNone
}

func KeyboardFromConfig(conf config.Config, goos string) (*keyboard.Backend, error) {
	switch t := resolveKeyboard(conf.Keyboard.Type, goos); t {
	case config.KeyboardNone:
		l.Warn().Println("keyboard driver is none, no key events")
		return nil, nil
	case config.KeyboardEvdev:
		l.Info().Println("keyboard driver is evdev:", conf.Keyboard.Src)
		return keyboard.New(kbevdev.New(conf.Keyboard.Src, conf.Keyboard.Repeat)), nil
	case config.KeyboardWin32:
		l.Info().Println("keyboard driver is win32")
		return keyboard.New(kbwin32.New()), nil
	default:
		return nil, unknownDriver("keyboard", string(t))
	}
}
