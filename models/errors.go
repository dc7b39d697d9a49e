package models

import "errors"

// Failure taxonomy shared by repositories, services and handlers. Services
// wrap these with context via fmt.Errorf("...: %w", ...); handlers map them
// to HTTP status codes with errors.Is.
var (
	// ErrBadRequest marks malformed or missing input (unparseable dates,
	// absent identifiers).
	ErrBadRequest = errors.New("bad request")

	// ErrConflict marks an overlap or uniqueness violation: a double-booked
	// slot, an inverted time range, or a block colliding with live appointments.
	ErrConflict = errors.New("scheduling conflict")

	// ErrForbidden marks an actor operating on a record it does not own or
	// with a role that does not permit the action.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound marks an absent referenced entity.
	ErrNotFound = errors.New("not found")

	// ErrTerminalState marks a transition attempted on a CANCELLED or
	// FINALIZED appointment.
	ErrTerminalState = errors.New("appointment is in a terminal state")

	// ErrNoteRequired marks a finalize attempt without a clinical note;
	// finalization only happens through saving the note.
	ErrNoteRequired = errors.New("finalization requires a clinical note")
)
