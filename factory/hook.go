package factory

import (
	"github.com/allape/sysevents/capture"
	"github.com/allape/sysevents/capture/hook"
	hookevdev "github.com/allape/sysevents/capture/hook/evdev"
	"github.com/allape/sysevents/config"
)

func resolveHook(t config.HookDriverType, goos string) config.HookDriverType {
	if t != config.HookAuto {
		return t
	}
	if goos == "linux" {
		return config.HookEvdev
	}
	// on windows the helper process is the click and scroll source
	return config.HookNone
}

func HookFromConfig(conf config.Config, goos string, locator capture.Locator) (*hook.Backend, error) {
	switch t := resolveHook(conf.Hook.Type, goos); t {
	case config.HookNone:
		l.Warn().Println("hook driver is none, no native click or scroll")
		return nil, nil
	case config.HookEvdev:
		l.Info().Println("hook driver is evdev:", conf.Hook.Src)
		return hook.New(hookevdev.New(conf.Hook.Src, locator)), nil
	default:
		return nil, unknownDriver("hook", string(t))
	}
}
