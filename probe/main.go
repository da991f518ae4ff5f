package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"sync"
	"syscall"

	"github.com/allape/gogger"
	"github.com/allape/sysevents/capture/event"
	"github.com/allape/sysevents/config"
	"github.com/allape/sysevents/factory"
	jsoniter "github.com/json-iterator/go"
)

var l = gogger.New("probe")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ProbeKinds e.g. click,scroll, empty prints every kind
const ProbeKinds = "SYSEVENTS_PROBE_KINDS"

func FormatEvent(e event.Event) (string, error) {
	return json.MarshalToString(event.Wrap(e))
}

func ParseKinds(value string) ([]event.Kind, error) {
	if strings.TrimSpace(value) == "" {
		return event.Kinds(), nil
	}
	var kinds []event.Kind
	for _, s := range strings.Split(value, ",") {
		kind, err := event.ParseKind(s)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// Printer writes one line per event, lines never interleave
type Printer struct {
	locker sync.Locker
	out    io.Writer
}

func (p *Printer) Handle(e event.Event) error {
	line, err := FormatEvent(e)
	if err != nil {
		return err
	}
	p.locker.Lock()
	defer p.locker.Unlock()
	_, err = fmt.Fprintln(p.out, line)
	return err
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{locker: &sync.Mutex{}, out: out}
}

func main() {
	conf, err := config.GetConfig()
	if err != nil {
		l.Error().Println("get config:", err)
		os.Exit(1)
	}

	kinds, err := ParseKinds(os.Getenv(ProbeKinds))
	if err != nil {
		l.Error().Println(ProbeKinds, err)
		os.Exit(1)
	}

	c, err := factory.CaptureFromConfig(conf, runtime.GOOS)
	if err != nil {
		l.Error().Println("capture from config:", err)
		os.Exit(1)
	}

	printer := NewPrinter(os.Stdout)
	for _, kind := range kinds {
		c.Subscribe(kind, printer.Handle)
	}

	err = c.Start()
	if err != nil {
		l.Error().Println("start:", err)
		os.Exit(1)
	}

	for _, status := range c.Status() {
		l.Info().Printf("%s open=%v unavailable=%v %s", status.Name, status.Open, status.Unavailable, status.Error)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	l.Info().Println("awaiting signal")
	sig := <-sigs
	l.Info().Println("exiting with", sig)

	c.Stop()
}
