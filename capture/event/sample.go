package event

// Sample is a raw observation as a backend produces it, before normalization.
type Sample struct {
	Kind   Kind
	Source string

	X int
	Y int

	// Timestamp in unix milliseconds, 0 means stamp on arrival
	Timestamp int64

	Screen Bounds

	Scheme     ButtonScheme
	ButtonCode int
	ButtonName string

	DeltaY    int
	DeltaX    int
	Direction Direction

	KeyName string
	KeyCode string
}
