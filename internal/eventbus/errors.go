package eventbus

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigurationRejected is returned when the capacity was already set or is not positive
	ErrConfigurationRejected = errors.New("capacity configuration rejected")
	// ErrCapacityExceeded is returned when a type already holds its maximum number of handlers
	ErrCapacityExceeded = errors.New("subscriber capacity exceeded")
)

// HandlerFault describes a handler that returned an error or panicked during Publish
type HandlerFault struct {
	Type  EventType
	Err   error
	Panic interface{} // recovered value, nil for returned errors
	Stack []byte
}

func (f HandlerFault) Error() string {
	return fmt.Sprintf("handler for %s failed: %v", f.Type, f.Err)
}

func (f HandlerFault) Unwrap() error { return f.Err }
