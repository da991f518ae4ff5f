package evdev

import (
	"encoding/binary"
	"errors"
)

// linux/input-event-codes.h
const (
	EvSyn = 0x00
	EvKey = 0x01
	EvRel = 0x02

	RelHWheel = 0x06
	RelWheel  = 0x08

	BtnLeft   = 0x110
	BtnRight  = 0x111
	BtnMiddle = 0x112
	BtnSide   = 0x113
	BtnExtra  = 0x114

	KeyReleased = 0
	KeyPressed  = 1
	KeyRepeated = 2
)

// InputEventSize struct input_event on 64 bit hosts
const InputEventSize = 24

type InputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// Millis timestamp in unix milliseconds
func (e InputEvent) Millis() int64 {
	return e.Sec*1000 + e.Usec/1000
}

var ErrShortEvent = errors.New("short input event")

func Decode(buf []byte) (InputEvent, error) {
	if len(buf) < InputEventSize {
		return InputEvent{}, ErrShortEvent
	}
	return InputEvent{
		Sec:   int64(binary.LittleEndian.Uint64(buf[0:8])),
		Usec:  int64(binary.LittleEndian.Uint64(buf[8:16])),
		Type:  binary.LittleEndian.Uint16(buf[16:18]),
		Code:  binary.LittleEndian.Uint16(buf[18:20]),
		Value: int32(binary.LittleEndian.Uint32(buf[20:24])),
	}, nil
}

// DecodeAll trailing bytes that do not form a whole event are ignored
func DecodeAll(buf []byte) []InputEvent {
	events := make([]InputEvent, 0, len(buf)/InputEventSize)
	for len(buf) >= InputEventSize {
		e, _ := Decode(buf[:InputEventSize])
		events = append(events, e)
		buf = buf[InputEventSize:]
	}
	return events
}

func Encode(e InputEvent) []byte {
	buf := make([]byte, InputEventSize)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(e.Sec))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(e.Usec))
	binary.LittleEndian.PutUint16(buf[16:18], e.Type)
	binary.LittleEndian.PutUint16(buf[18:20], e.Code)
	binary.LittleEndian.PutUint32(buf[20:24], uint32(e.Value))
	return buf
}
