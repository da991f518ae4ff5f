package serialport

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/allape/sysevents/capture"
	"github.com/allape/sysevents/capture/event"
)

type chunkReader struct {
	chunks []string
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	c.chunks = c.chunks[1:]
	return n, nil
}

func TestPump(t *testing.T) {
	s := New("/dev/null", 0)
	if s.Baud != DefaultBaud {
		t.Fatalf("expected default baud, got %d", s.Baud)
	}

	var got []event.Sample
	s.Bind(func(sample event.Sample) { got = append(got, sample) })

	s.pump(&chunkReader{chunks: []string{
		`{"type":"click","butt`,
		`on":"left","x":1,"y":2,"timestamp":3}` + "\n" + "junk\n",
		`{"type":"scroll","direction":"up","delta":120,"x":1,"y":2,"timestamp":4}` + "\r\n",
		`{"type":"click"`,
	}})

	if len(got) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(got))
	}
	if got[0].Kind != event.Click || got[0].Source != Name || got[0].ButtonName != "left" {
		t.Fatalf("unexpected click %+v", got[0])
	}
	if got[1].Kind != event.Scroll || got[1].DeltaY != 120 {
		t.Fatalf("unexpected scroll %+v", got[1])
	}
}

func TestCloseWithoutOpen(t *testing.T) {
	s := New("/dev/does-not-exist", 9600)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	err := s.Open()
	if err == nil {
		_ = s.Close()
		t.Fatal("expected open error")
	}
	if !errors.Is(err, capture.ErrUnavailable) {
		t.Fatalf("missing device should be reported as unavailable, got %v", err)
	}
}

type fakePort struct {
	reads  chan string
	closed chan struct{}
	once   sync.Once
}

func newFakePort() *fakePort {
	return &fakePort{reads: make(chan string, 4), closed: make(chan struct{})}
}

func (p *fakePort) Read(buf []byte) (int, error) {
	select {
	case chunk, ok := <-p.reads:
		if !ok {
			return 0, io.EOF
		}
		return copy(buf, chunk), nil
	case <-p.closed:
		return 0, errors.New("port closed")
	}
}

func (p *fakePort) Close() error {
	p.once.Do(func() { close(p.closed) })
	return nil
}

func waitFor(t *testing.T, what string, cond func() bool) {
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timeout waiting for", what)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestReopenAfterDeviceLoss(t *testing.T) {
	ports := make(chan *fakePort, 4)
	var opens atomic.Int32

	s := New("/dev/ttyFAKE0", 9600)
	s.RetryDelay = 10 * time.Millisecond
	s.open = func() (io.ReadCloser, error) {
		opens.Add(1)
		select {
		case p := <-ports:
			return p, nil
		default:
			return nil, errors.New("device not back yet")
		}
	}

	samples := make(chan event.Sample, 4)
	s.Bind(func(sample event.Sample) { samples <- sample })

	first := newFakePort()
	ports <- first
	if err := s.Open(); err != nil {
		t.Fatal(err)
	}
	if !s.Alive() {
		t.Fatal("expected source to be alive after open")
	}

	close(first.reads)
	waitFor(t, "loss", func() bool { return !s.Alive() })

	second := newFakePort()
	ports <- second
	waitFor(t, "reopen", func() bool { return s.Alive() })
	if opens.Load() < 2 {
		t.Fatalf("expected a reopen, got %d opens", opens.Load())
	}

	second.reads <- `{"type":"click","button":"middle","x":1,"y":2,"timestamp":3}` + "\n"
	select {
	case sample := <-samples:
		if sample.ButtonName != "middle" {
			t.Fatalf("unexpected sample %+v", sample)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no sample from the reopened port")
	}

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if s.Alive() {
		t.Fatal("expected source to be closed")
	}
}

func TestNoReopenAfterClose(t *testing.T) {
	var opens atomic.Int32
	port := newFakePort()

	s := New("/dev/ttyFAKE1", 9600)
	s.RetryDelay = 5 * time.Millisecond
	s.open = func() (io.ReadCloser, error) {
		opens.Add(1)
		return port, nil
	}

	if err := s.Open(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	time.Sleep(50 * time.Millisecond)
	if opens.Load() != 1 {
		t.Fatalf("expected no reopen after close, got %d opens", opens.Load())
	}
	if s.Alive() {
		t.Fatal("expected source to stay closed")
	}
}
