package services

import (
	"errors"
	"fmt"
)

// ErrContactPhoneRequired rejects an update that would create a contact without a phone.
var ErrContactPhoneRequired = errors.New("contact.phone is required when the student has no contact")

// DatabaseError reports a store failure. The transaction it happened in was
// rolled back before the error was returned.
type DatabaseError struct {
	Op         string // e.g. "students.create"
	Message    string // stable, safe to show
	Err        error
	Constraint bool // a unique constraint rejected the write
}

func (e *DatabaseError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

func newDatabaseError(op, message string, err error) *DatabaseError {
	return &DatabaseError{Op: op, Message: message, Err: err}
}

// IsDatabaseError reports whether err is or wraps a *DatabaseError.
func IsDatabaseError(err error) bool {
	var dbErr *DatabaseError
	return errors.As(err, &dbErr)
}
