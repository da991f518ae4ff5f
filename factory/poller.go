package factory

import (
	"github.com/allape/sysevents/capture/cursor"
	"github.com/allape/sysevents/capture/cursor/win32"
	"github.com/allape/sysevents/capture/cursor/x11"
	"github.com/allape/sysevents/config"
)

func resolvePoller(t config.PollerDriverType, goos string) config.PollerDriverType {
	if t != config.PollerAuto {
		return t
	}
	switch goos {
	case "windows":
		return config.PollerWin32
	case "linux", "freebsd", "openbsd", "netbsd":
		return config.PollerX11
	}
	return config.PollerNone
}

func PollerFromConfig(conf config.Config, goos string) (*cursor.Poller, error) {
	var driver cursor.Driver

	switch t := resolvePoller(conf.Poller.Type, goos); t {
	case config.PollerNone:
		l.Warn().Println("poller driver is none, no mouse movement")
		return nil, nil
	case config.PollerX11:
		l.Info().Println("poller driver is x11:", conf.Poller.Display)
		driver = x11.New(conf.Poller.Display)
	case config.PollerWin32:
		l.Info().Println("poller driver is win32")
		driver = win32.New()
	default:
		return nil, unknownDriver("poller", string(t))
	}

	return cursor.NewPoller(driver, &cursor.Options{
		Interval: conf.PollInterval(),
	}), nil
}
