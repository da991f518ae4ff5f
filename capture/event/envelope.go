package event

// Envelope is how an event leaves the process, Type is the kind name
type Envelope struct {
	Type string `json:"type"`
	Data Event  `json:"data"`
}

func Wrap(e Event) Envelope {
	return Envelope{Type: e.Kind().String(), Data: e}
}
