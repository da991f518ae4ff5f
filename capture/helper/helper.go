package helper

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/allape/gogger"
	"github.com/allape/sysevents/capture"
)

var l = gogger.New("capture.helper")

const (
	Name                = "helper"
	DefaultRestartDelay = time.Second
)

type State int

const (
	Stopped State = iota
	Starting
	Running
	Exited
	Errored
	Restarting
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Exited:
		return "exited"
	case Errored:
		return "errored"
	case Restarting:
		return "restarting"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Command builds a fresh command for every spawn
type Command func() (*exec.Cmd, error)

// Supervisor keeps an external hook process alive while active and turns its
// stdout lines into samples.
type Supervisor struct {
	capture.Backend

	name         string
	command      Command
	restartDelay time.Duration
	kill         func(p *os.Process) error

	emit capture.Emit

	locker     sync.Locker
	active     bool
	state      State
	process    *os.Process
	generation uint64
	timer      *time.Timer
	timerSeq   uint64
	spawns     int
}

func (s *Supervisor) Name() string {
	return s.name
}

func (s *Supervisor) Bind(emit capture.Emit) {
	s.emit = emit
}

func (s *Supervisor) State() State {
	s.locker.Lock()
	defer s.locker.Unlock()
	return s.state
}

func (s *Supervisor) Spawns() int {
	s.locker.Lock()
	defer s.locker.Unlock()
	return s.spawns
}

// Open a spawn failure other than a missing executable is retried in the background
func (s *Supervisor) Open() error {
	s.locker.Lock()
	defer s.locker.Unlock()

	if s.active {
		return nil
	}
	s.active = true

	err := s.spawn()
	if err == nil {
		return nil
	}

	s.state = Errored
	if missing(err) {
		s.active = false
		return fmt.Errorf("%w: %s: %v", capture.ErrUnavailable, s.name, err)
	}

	l.Error().Println("spawn", s.name, err)
	s.scheduleRestart()

	return nil
}

// Close cancels a pending restart first, then kills the live process
func (s *Supervisor) Close() error {
	s.locker.Lock()
	defer s.locker.Unlock()

	s.active = false
	s.cancelRestart()

	var err error
	if s.process != nil {
		err = s.kill(s.process)
		s.process = nil
		if err != nil {
			l.Warn().Println("kill", s.name, err)
		}
	}

	s.state = Stopped

	return err
}

func missing(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

// spawn requires locker
func (s *Supervisor) spawn() error {
	cmd, err := s.command()
	if err != nil {
		return err
	} else if cmd == nil {
		return errors.New("helper command is empty")
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}

	s.state = Starting
	s.spawns++

	l.Verbose().Println(cmd.Path, cmd.Args)

	err = cmd.Start()
	if err != nil {
		return err
	}

	s.generation++
	generation := s.generation
	s.process = cmd.Process
	s.state = Running

	l.Info().Printf("%s started, pid %d", s.name, cmd.Process.Pid)

	readers := &sync.WaitGroup{}
	readers.Add(2)
	go func() {
		defer readers.Done()
		s.readStdout(stdout)
	}()
	go func() {
		defer readers.Done()
		s.readStderr(stderr)
	}()
	go func() {
		readers.Wait()
		s.exited(generation, cmd.Wait())
	}()

	return nil
}

func (s *Supervisor) readStdout(stdout io.Reader) {
	lines := &LineBuffer{}
	buf := make([]byte, 1024)
	for {
		n, err := stdout.Read(buf)
		if n > 0 {
			for _, line := range lines.Write(buf[:n]) {
				s.handleLine(line)
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, fs.ErrClosed) {
				l.Verbose().Println("read stdout:", err)
			}
			if pending := lines.Pending(); pending != "" {
				l.Verbose().Println("discarding unterminated line:", pending)
			}
			return
		}
	}
}

func (s *Supervisor) readStderr(stderr io.Reader) {
	lines := &LineBuffer{}
	buf := make([]byte, 1024)
	for {
		n, err := stderr.Read(buf)
		if n > 0 {
			for _, line := range lines.Write(buf[:n]) {
				l.Verbose().Println(s.name, "stderr:", line)
			}
		}
		if err != nil {
			return
		}
	}
}

func (s *Supervisor) handleLine(line string) {
	sample, err := ParseLine(line)
	if err != nil {
		l.Warn().Printf("malformed %s line %q: %v", s.name, line, err)
		return
	}
	if s.emit == nil {
		return
	}
	sample.Source = s.name
	s.emit(sample)
}

func (s *Supervisor) exited(generation uint64, err error) {
	s.locker.Lock()
	defer s.locker.Unlock()

	if generation != s.generation {
		return
	}
	s.process = nil

	if !s.active {
		s.state = Stopped
		return
	}

	if err != nil {
		s.state = Errored
		l.Warn().Println(s.name, "exited:", err)
	} else {
		s.state = Exited
		l.Warn().Println(s.name, "exited")
	}

	s.scheduleRestart()
}

// scheduleRestart requires locker, a pending restart suppresses another one
func (s *Supervisor) scheduleRestart() bool {
	if !s.active || s.timer != nil {
		return false
	}

	s.state = Restarting
	s.timerSeq++
	seq := s.timerSeq
	s.timer = time.AfterFunc(s.restartDelay, func() {
		s.restart(seq)
	})

	l.Info().Printf("restarting %s in %s", s.name, s.restartDelay)

	return true
}

// cancelRestart requires locker
func (s *Supervisor) cancelRestart() {
	if s.timer == nil {
		return
	}
	s.timer.Stop()
	s.timer = nil
}

func (s *Supervisor) restart(seq uint64) {
	s.locker.Lock()
	defer s.locker.Unlock()

	if s.timer == nil || seq != s.timerSeq {
		return
	}
	s.timer = nil

	if !s.active {
		return
	}

	err := s.spawn()
	if err == nil {
		return
	}

	s.state = Errored
	if missing(err) {
		l.Error().Println(s.name, "executable disappeared, giving up:", err)
		return
	}

	l.Error().Println("respawn", s.name, err)
	s.scheduleRestart()
}

type Options struct {
	Name         string
	RestartDelay time.Duration
	// Kill defaults to killing the whole process tree
	Kill func(p *os.Process) error
}

func New(command Command, options *Options) *Supervisor {
	if options == nil {
		options = &Options{}
	}
	if options.Name == "" {
		options.Name = Name
	}
	if options.RestartDelay <= 0 {
		options.RestartDelay = DefaultRestartDelay
	}
	if options.Kill == nil {
		options.Kill = KillTree
	}

	return &Supervisor{
		name:         options.Name,
		command:      command,
		restartDelay: options.RestartDelay,
		kill:         options.Kill,
		locker:       &sync.Mutex{},
	}
}
