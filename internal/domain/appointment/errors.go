package appointment

import (
	"errors"
	"fmt"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

var (
	ErrSlotConflict        = httperr.ErrBusiness("slot_conflict")
	ErrInvalidTransition   = httperr.ErrBusiness("invalid_transition")
	ErrInvalidStatus       = httperr.ErrBusiness("invalid_status")
	ErrAppointmentNotFound = httperr.ErrBusiness("appointment_not_found")
	ErrServiceNotFound     = httperr.ErrBusiness("service_not_found")
	ErrInvalidInterval     = httperr.ErrBusiness("invalid_interval")
	ErrInvalidDuration     = httperr.ErrBusiness("invalid_duration")
	ErrOutsideWorkingHours = httperr.ErrBusiness("outside_working_hours")
	ErrTooSoon             = httperr.ErrBusiness("too_soon")
)

// ParseError reports malformed time or date input. It is raised before any
// store query is issued.
type ParseError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// StoreError wraps a backing store failure (timeout, connection refused...).
// The engine never retries these.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store unavailable (%s): %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

func IsStoreUnavailable(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

var ErrBlackoutNotFound = httperr.ErrBusiness("blackout_not_found")
