package logger

import "sync"

const (
	DefaultSampleHead  = 25
	DefaultSampleEvery = 100
)

// Sampler counts occurrences per key and lets through the first Head ones,
// then every Every-th one.
type Sampler struct {
	locker sync.Locker
	counts map[string]int

	Head  int
	Every int
}

func (s *Sampler) Sample(key string) (int, bool) {
	s.locker.Lock()
	defer s.locker.Unlock()

	s.counts[key]++
	n := s.counts[key]

	if n <= s.Head {
		return n, true
	}
	if s.Every > 0 && n%s.Every == 0 {
		return n, true
	}
	return n, false
}

func (s *Sampler) Count(key string) int {
	s.locker.Lock()
	defer s.locker.Unlock()
	return s.counts[key]
}

func (s *Sampler) Reset() {
	s.locker.Lock()
	defer s.locker.Unlock()
	s.counts = map[string]int{}
}

func NewSampler(head, every int) *Sampler {
	return &Sampler{
		locker: &sync.Mutex{},
		counts: map[string]int{},
		Head:   head,
		Every:  every,
	}
}
