package capture

import (
	"fmt"
	"sync"

	"github.com/allape/sysevents/capture/event"
)

type Handler func(e event.Event) error

type Token struct {
	kind event.Kind
	id   uint64
}

func (t Token) Kind() event.Kind {
	return t.kind
}

func (t Token) Valid() bool {
	return t.id != 0
}

type subscriber struct {
	id      uint64
	handler Handler
}

type registry struct {
	locker sync.RWMutex
	nextID uint64
	subs   map[event.Kind][]subscriber
	warned map[event.Kind]bool
}

func (r *registry) add(kind event.Kind, handler Handler) Token {
	r.locker.Lock()
	defer r.locker.Unlock()

	r.nextID++
	r.subs[kind] = append(r.subs[kind], subscriber{id: r.nextID, handler: handler})
	delete(r.warned, kind)

	return Token{kind: kind, id: r.nextID}
}

func (r *registry) remove(token Token) bool {
	r.locker.Lock()
	defer r.locker.Unlock()

	list := r.subs[token.kind]
	for i, s := range list {
		if s.id == token.id {
			next := make([]subscriber, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			r.subs[token.kind] = next
			return true
		}
	}
	return false
}

// snapshot list must not be mutated, remove always builds a new slice
func (r *registry) snapshot(kind event.Kind) []subscriber {
	r.locker.RLock()
	defer r.locker.RUnlock()
	return r.subs[kind]
}

func (r *registry) count(kind event.Kind) int {
	r.locker.RLock()
	defer r.locker.RUnlock()
	return len(r.subs[kind])
}

// firstDrop reports true only for the first drop since the last subscription of kind
func (r *registry) firstDrop(kind event.Kind) bool {
	r.locker.Lock()
	defer r.locker.Unlock()
	if r.warned[kind] {
		return false
	}
	r.warned[kind] = true
	return true
}

// dispatch delivers e in registration order and returns the number of handlers invoked
func (r *registry) dispatch(e event.Event) int {
	list := r.snapshot(e.Kind())
	if len(list) == 0 {
		if r.firstDrop(e.Kind()) {
			l.Warn().Println("no subscriber for", e.Kind().String(), "events, dropping")
		}
		return 0
	}

	for i, s := range list {
		err := invoke(s.handler, e)
		if err != nil {
			l.Error().Printf("%s subscriber #%d: %v", e.Kind(), i, err)
		}
	}
	return len(list)
}

func invoke(handler Handler, e event.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return handler(e)
}

func newRegistry() *registry {
	return &registry{
		subs:   map[event.Kind][]subscriber{},
		warned: map[event.Kind]bool{},
	}
}
