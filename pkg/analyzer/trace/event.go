// Package trace ingests execution traces, in binary event-stream or
// line-oriented text form, and reduces them to canonical method keys.
package trace

// EventKind discriminates the method-entry record types of the binary
// stream.
type EventKind uint8

const (
	KindMethod EventKind = 1
	KindCtor   EventKind = 2
	KindCctor  EventKind = 3
)

func (k EventKind) valid() bool {
	return k >= KindMethod && k <= KindCctor
}

// Event is one "method entered compilation" record from a capture
// session.
type Event struct {
	Kind      EventKind
	Namespace string
	Type      string
	Method    string
	Signature string
}

// Identifier composes the raw identifier for the event. Constructor
// events are reconstructed under their canonical names; the capture
// records them with runtime-internal spellings that carry no signal.
func (e Event) Identifier() string {
	name := e.Method
	switch e.Kind {
	case KindCtor:
		name = "ctor"
	case KindCctor:
		name = "cctor"
	}

	owner := e.Type
	if e.Namespace != "" {
		owner = e.Namespace + "." + e.Type
	}
	return owner + "." + name + e.Signature
}
