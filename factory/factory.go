package factory

import (
	"fmt"
	"time"

	"github.com/allape/gogger"
	"github.com/allape/sysevents/capture"
	"github.com/allape/sysevents/config"
)

var l = gogger.New("factory")

// DefaultDedupWindow used when more than one click source is configured
const DefaultDedupWindow = 50 * time.Millisecond

func unknownDriver(concern, t string) error {
	return fmt.Errorf("unknown %s driver %q", concern, t)
}

type Options struct {
	Backends    []capture.Backend
	Locator     capture.Locator
	DedupWindow time.Duration
	Trace       bool
}

// OptionsFromConfig builds every configured backend for goos, nothing is opened here
func OptionsFromConfig(conf config.Config, goos string) (Options, error) {
	var options Options
	clickSources := 0

	poller, err := PollerFromConfig(conf, goos)
	if err != nil {
		return options, err
	}
	if poller != nil {
		options.Backends = append(options.Backends, poller)
		options.Locator = poller
	}

	h, err := HookFromConfig(conf, goos, options.Locator)
	if err != nil {
		return options, err
	}
	if h != nil {
		options.Backends = append(options.Backends, h)
		clickSources++
	}

	k, err := KeyboardFromConfig(conf, goos)
	if err != nil {
		return options, err
	}
	if k != nil {
		options.Backends = append(options.Backends, k)
	}

	s, err := HelperFromConfig(conf, goos)
	if err != nil {
		return options, err
	}
	if s != nil {
		options.Backends = append(options.Backends, s)
		clickSources++
	}

	stream, err := StreamFromConfig(conf)
	if err != nil {
		return options, err
	}
	if stream != nil {
		options.Backends = append(options.Backends, stream)
		clickSources++
	}

	switch {
	case conf.Capture.DedupWindowMS >= 0:
		options.DedupWindow = time.Duration(conf.Capture.DedupWindowMS) * time.Millisecond
	case clickSources > 1:
		options.DedupWindow = DefaultDedupWindow
		l.Info().Printf("%d click sources configured, dedup window %s", clickSources, DefaultDedupWindow)
	}

	options.Trace = conf.Capture.Trace

	return options, nil
}

// CaptureFromConfig builds the coordinator for goos, usually runtime.GOOS.
// Having no backend for goos is not an error here, Start reports it.
func CaptureFromConfig(conf config.Config, goos string) (*capture.Coordinator, error) {
	options, err := OptionsFromConfig(conf, goos)
	if err != nil {
		return nil, err
	}

	if len(options.Backends) == 0 {
		l.Warn().Println("no capture backend for", goos)
	}

	return capture.New(capture.Options{
		Backends:    options.Backends,
		Locator:     options.Locator,
		Trace:       options.Trace,
		DedupWindow: options.DedupWindow,
	}), nil
}
