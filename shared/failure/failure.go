package failure

import (
	"errors"
	"net/http"
)

// Kind classifies a Failure for callers that branch on the cause rather than the HTTP code.
type Kind string

const (
	KindGeneric              Kind = ""
	KindValidation           Kind = "validation"
	KindAvailabilityConflict Kind = "availability_conflict"
	KindCollaborator         Kind = "collaborator"
	KindStateViolation       Kind = "state_violation"
)

const (
	MessageBookingFailed   = "Failed to create booking. Please try again."
	MessageUnknownError    = "An unknown error occurred"
	MessageSlotTaken       = "This time slot is no longer available. Please pick another time."
	MessageDateUnavailable = "Selected date is not available"
	MessageValidation      = "validation failed"
)

// Failure is an error with the HTTP code and message shown to the caller.
// The underlying error, when any, stays reachable through errors.Unwrap.
type Failure struct {
	Code      int               `json:"code"`
	Message   string            `json:"message"`
	Kind      Kind              `json:"kind,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	Retryable bool              `json:"retryable,omitempty"`

	cause error
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

func (e *Failure) Unwrap() error {
	return e.cause
}

func newFailure(code int, kind Kind, msg string) *Failure {
	return &Failure{Code: code, Kind: kind, Message: msg}
}

// BadRequest returns nil for a nil err.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	f := newFailure(http.StatusBadRequest, KindGeneric, err.Error())
	f.cause = err

	return f
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, KindGeneric, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, KindGeneric, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, KindGeneric, msg)
}

// NotFound takes the full message, e.g. "booking not found".
func NotFound(msg string) error {
	return newFailure(http.StatusNotFound, KindGeneric, msg)
}

func Conflict(msg string) error {
	return newFailure(http.StatusConflict, KindGeneric, msg)
}

// Validation returns a Failure carrying one message per offending field.
func Validation(fields map[string]string) error {
	f := newFailure(http.StatusBadRequest, KindValidation, MessageValidation)
	f.Fields = fields

	return f
}

// ValidationField is a shorthand for a single-field Validation failure.
func ValidationField(field, msg string) error {
	f := newFailure(http.StatusBadRequest, KindValidation, msg)
	f.Fields = map[string]string{field: msg}

	return f
}

// AvailabilityConflict signals that the requested slot was taken. The caller may pick another slot and retry.
func AvailabilityConflict(msg string) error {
	if msg == "" {
		msg = MessageSlotTaken
	}

	f := newFailure(http.StatusConflict, KindAvailabilityConflict, msg)
	f.Retryable = true

	return f
}

// Collaborator wraps an error raised by an external collaborator, keeping its message when present.
func Collaborator(err error) error {
	msg := MessageUnknownError
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}

	f := newFailure(http.StatusBadGateway, KindCollaborator, msg)
	f.cause = err

	return f
}

// CollaboratorWithMessage reports a collaborator failure under a user-facing message.
func CollaboratorWithMessage(msg string) error {
	return newFailure(http.StatusBadGateway, KindCollaborator, msg)
}

// StateViolation returns a Failure for an operation not permitted from the current state.
func StateViolation(msg string) error {
	return newFailure(http.StatusUnprocessableEntity, KindStateViolation, msg)
}

func as(err error) (*Failure, bool) {
	var fail *Failure

	return fail, errors.As(err, &fail)
}

// GetCode returns the HTTP code of the outermost Failure in err's chain, 500 when there is none.
func GetCode(err error) int {
	if fail, ok := as(err); ok {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the Kind of an error interface, or KindGeneric when it is not a Failure.
func GetKind(err error) Kind {
	if fail, ok := as(err); ok {
		return fail.Kind
	}

	return KindGeneric
}

// Is reports whether err is a Failure of the given kind.
func Is(err error, kind Kind) bool {
	fail, ok := as(err)

	return ok && fail.Kind == kind
}
