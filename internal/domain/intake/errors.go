package intake

import "errors"

var (
	// ErrNotFound is returned when a patient ID is absent from the registry.
	ErrNotFound = errors.New("patient not found")

	// ErrEmptyCollection is returned by dequeue/peek style calls on an empty queue.
	ErrEmptyCollection = errors.New("queue is empty")

	// ErrInvalidAssignmentInput rejects an assignment run as a whole. No
	// patient is placed when it is returned.
	ErrInvalidAssignmentInput = errors.New("invalid assignment input")

	// ErrDuplicatePatient is returned when a caller supplies an ID that is
	// already registered.
	ErrDuplicatePatient = errors.New("patient id already registered")
)
