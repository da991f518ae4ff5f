package logger

import (
	"fmt"
	"sync/atomic"

	"github.com/allape/gogger"
	"github.com/allape/sysevents/envar"
)

var l = gogger.New("logger")

var verbose = envar.Enabled(envar.SysEventsVerbose)

func init() {
	if verbose {
		l.Info().Println("verbose mode enabled")
	}
}

func Verbose() bool {
	return verbose
}

// Tracer logs sampled occurrences per key while enabled.
// A disabled Tracer costs one atomic load per call.
type Tracer struct {
	println func(v ...any)
	enabled atomic.Bool
	sampler *Sampler
}

func (t *Tracer) SetEnabled(enabled bool) {
	if t.enabled.Swap(enabled) == enabled {
		return
	}
	if enabled {
		t.sampler.Reset()
	}
	t.println("tracing enabled:", enabled)
}

func (t *Tracer) Enabled() bool {
	return t.enabled.Load()
}

func (t *Tracer) Trace(key string, payload any) {
	if !t.enabled.Load() {
		return
	}
	count, ok := t.sampler.Sample(key)
	if !ok {
		return
	}
	t.println(fmt.Sprintf("%s #%d", key, count), payload)
}

func NewTracer(name string, enabled bool) *Tracer {
	t := &Tracer{
		println: gogger.New(name).Info().Println,
		sampler: NewSampler(DefaultSampleHead, DefaultSampleEvery),
	}
	t.enabled.Store(enabled || envar.Enabled(envar.SysEventsTrace))
	return t
}
