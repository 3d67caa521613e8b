package domain

import "errors"

// EventType represents the name a handler subscribes under
type EventType string

// EventNavigate is the aggregate type published after every resolved navigation
const EventNavigate EventType = "navigate"

// NavigationKind classifies what an activation does to the current page
type NavigationKind string

// Navigation kinds
const (
	KindStart NavigationKind = "start" // jump to the first page
	KindEnd   NavigationKind = "end"   // jump to the last page
	KindPrev  NavigationKind = "prev"  // step back one page
	KindNext  NavigationKind = "next"  // step forward one page
	KindOther NavigationKind = "other" // jump to an explicit page number
)

var (
	// ErrInvalidPageInput is returned for non-numeric page labels and page counts below one
	ErrInvalidPageInput = errors.New("invalid page input")
	// ErrUnknownKind is returned for an activation kind outside the closed set
	ErrUnknownKind = errors.New("unknown navigation kind")
)

// Valid reports whether k is one of the five navigation kinds
func (k NavigationKind) Valid() bool {
	switch k {
	case KindStart, KindEnd, KindPrev, KindNext, KindOther:
		return true
	}
	return false
}

// EventType returns the subscription type for events of this kind
func (k NavigationKind) EventType() EventType { return EventType(k) }

// Event is published once per resolved activation. It is never reused.
type Event struct {
	Type     EventType
	Kind     NavigationKind
	Target   interface{} // bus owner when the publisher leaves it nil
	Value    int         // new current page
	Previous int         // current page before the activation
	Raw      string      // label of the activated button
}

// Changed reports whether the activation moved to a different page
func (e Event) Changed() bool { return e.Value != e.Previous }
