package helper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/allape/sysevents/capture/event"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	TypeClick  = "click"
	TypeScroll = "scroll"
)

// Message is one line of the helper protocol
//
//	{"type":"click","button":"left|middle|right","x":0,"y":0,"timestamp":0}
//	{"type":"scroll","direction":"up|down","delta":120,"x":0,"y":0,"timestamp":0}
type Message struct {
	Type      string `json:"type"`
	Button    string `json:"button,omitempty"`
	Direction string `json:"direction,omitempty"`
	Delta     int    `json:"delta,omitempty"`
	DeltaX    int    `json:"deltaX,omitempty"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Timestamp int64  `json:"timestamp"`
}

var ErrEmptyLine = errors.New("empty line")

func ParseLine(line string) (event.Sample, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return event.Sample{}, ErrEmptyLine
	}

	var msg Message
	err := json.UnmarshalFromString(line, &msg)
	if err != nil {
		return event.Sample{}, err
	}

	return msg.Sample()
}

func (m Message) Sample() (event.Sample, error) {
	switch m.Type {
	case TypeClick:
		return event.Sample{
			Kind:       event.Click,
			X:          m.X,
			Y:          m.Y,
			Timestamp:  m.Timestamp,
			Scheme:     event.SchemeName,
			ButtonName: m.Button,
		}, nil
	case TypeScroll:
		return event.Sample{
			Kind:      event.Scroll,
			X:         m.X,
			Y:         m.Y,
			Timestamp: m.Timestamp,
			DeltaY:    m.Delta,
			DeltaX:    m.DeltaX,
			Direction: event.ParseDirection(m.Direction),
		}, nil
	}
	return event.Sample{}, fmt.Errorf("unknown message type %q", m.Type)
}
