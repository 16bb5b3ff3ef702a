package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrUserNotRegistered is returned when a slot operation runs before registration.
	ErrUserNotRegistered = errors.New("no registered user")
	// ErrSlotNotFound is returned when a slot id does not resolve.
	ErrSlotNotFound = errors.New("slot not found")
	// ErrSlotNotBookable is returned for employee and emergency slots.
	ErrSlotNotBookable = errors.New("slot is reserved for staff and cannot be booked")
	// ErrSlotNotAvailable is returned when booking a reserved or occupied slot.
	ErrSlotNotAvailable = errors.New("slot is not available")
	// ErrSlotNotReserved is returned when confirming arrival on a slot that is not reserved.
	ErrSlotNotReserved = errors.New("slot is not reserved")
	// ErrSlotNotBooked is returned when cancelling an available slot.
	ErrSlotNotBooked = errors.New("slot has no booking to cancel")
	// ErrNotSlotOwner is returned when the booking belongs to another vehicle.
	ErrNotSlotOwner = errors.New("this slot is already booked by another user")
	// ErrInvalidArrivalTime is returned when the arrival time is empty.
	ErrInvalidArrivalTime = errors.New("please select an arrival time")
	// ErrInvalidDuration is returned when the duration is not a positive number of hours.
	ErrInvalidDuration = errors.New("duration must be a positive number of hours")
	// ErrUnknownZone is returned for zones outside the configuration.
	ErrUnknownZone = errors.New("unknown parking zone")
	// ErrTableVersionMismatch is returned when the caller's table etag is stale.
	ErrTableVersionMismatch = errors.New("slot table changed since it was read")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// ValidationError carries per-field registration errors.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// PersistenceReadError reports a stored record that could not be decoded.
type PersistenceReadError struct {
	Key string
	Err error
}

func (e *PersistenceReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Key, e.Err)
}

func (e *PersistenceReadError) Unwrap() error {
	return e.Err
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     map[string]string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:  e.Message,
		Code:   e.Code,
		Fields: e.Fields,
	}
}

var sentinelStatus = []struct {
	err    error
	status int
	code   string
}{
	{ErrSlotNotFound, http.StatusNotFound, "SLOT_NOT_FOUND"},
	{ErrUnknownZone, http.StatusNotFound, "ZONE_NOT_FOUND"},
	{ErrUserNotRegistered, http.StatusForbidden, "USER_NOT_REGISTERED"},
	{ErrSlotNotBookable, http.StatusForbidden, "SLOT_NOT_BOOKABLE"},
	{ErrNotSlotOwner, http.StatusForbidden, "NOT_SLOT_OWNER"},
	{ErrSlotNotAvailable, http.StatusConflict, "SLOT_NOT_AVAILABLE"},
	{ErrSlotNotReserved, http.StatusConflict, "SLOT_NOT_RESERVED"},
	{ErrSlotNotBooked, http.StatusConflict, "SLOT_NOT_BOOKED"},
	{ErrTableVersionMismatch, http.StatusPreconditionFailed, "TABLE_VERSION_MISMATCH"},
	{ErrInvalidArrivalTime, http.StatusBadRequest, "INVALID_ARRIVAL_TIME"},
	{ErrInvalidDuration, http.StatusBadRequest, "INVALID_DURATION"},
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		httpErr := NewHTTPError(http.StatusUnprocessableEntity, "validation failed", "VALIDATION_ERROR")
		httpErr.Fields = verr.Fields
		return httpErr
	}
	for _, s := range sentinelStatus {
		if errors.Is(err, s.err) {
			return NewHTTPError(s.status, s.err.Error(), s.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
