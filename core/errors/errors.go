package errors

import "fmt"

type ErrorCode string

const (
	// Generic codes
	ErrInternalServer             ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrInvalidInput               ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData         ErrorCode = "INVALID_REQUEST_DATA"
	ErrNotFound                   ErrorCode = "NOT_FOUND"
	ErrAlreadyExists              ErrorCode = "ALREADY_EXISTS"
	ErrUnauthorized               ErrorCode = "UNAUTHORIZED"
	ErrForbidden                  ErrorCode = "FORBIDDEN"
	ErrTokenExpired               ErrorCode = "TOKEN_EXPIRED"
	ErrInvalidTokenFormat         ErrorCode = "INVALID_TOKEN_FORMAT"
	ErrMissingAuthorizationHeader ErrorCode = "MISSING_AUTHORIZATION_HEADER"

	// Booking engine codes
	ErrSlotUnavailable        ErrorCode = "SLOT_UNAVAILABLE"
	ErrPastCutoff             ErrorCode = "PAST_CUTOFF"
	ErrSlotConflict           ErrorCode = "SLOT_CONFLICT"
	ErrNonContiguousSelection ErrorCode = "NON_CONTIGUOUS_SELECTION"
	ErrInvalidStateTransition ErrorCode = "INVALID_STATE_TRANSITION"
	ErrAccessDenied           ErrorCode = "ACCESS_DENIED"

	// Internal signal used by the recurring engine to skip a single date.
	// Never surfaced as a fatal error for a whole series.
	ErrRecurrenceDateConflict ErrorCode = "RECURRENCE_DATE_CONFLICT"
)

// AppError is the application error carried between services and controllers.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by code so services can branch on the taxonomy
// without inspecting messages.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}
