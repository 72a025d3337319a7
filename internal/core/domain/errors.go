package domain

import "errors"

// Error kinds. Every error returned by the core wraps exactly one of these so
// the transport layer can pick a status code with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
)

// reasonError carries a message that is safe to show to API callers.
type reasonError struct {
	kind   error
	reason string
}

func (e *reasonError) Error() string { return e.reason }
func (e *reasonError) Unwrap() error { return e.kind }

// Invalid returns a validation error with a user-facing message.
func Invalid(reason string) error {
	return &reasonError{kind: ErrValidation, reason: reason}
}

var (
	ErrAccountNotFound = &reasonError{kind: ErrInvalidCredentials, reason: "account not found"}
	ErrWrongPassword   = &reasonError{kind: ErrInvalidCredentials, reason: "wrong password"}

	// ErrOrganizationExists is also returned when the store rejects an insert
	// on its unique indexes, so a lost registration race looks the same to the
	// caller as the pre-insert duplicate check.
	ErrOrganizationExists = &reasonError{kind: ErrValidation, reason: "account or email already registered"}

	ErrOrganizationNotFound = &reasonError{kind: ErrNotFound, reason: "organization not found"}
	ErrItemNotFound         = &reasonError{kind: ErrNotFound, reason: "item not found"}

	ErrNotItemOwner = &reasonError{kind: ErrForbidden, reason: "you are not allowed to modify this item"}

	ErrIdempotencyInProgress = &reasonError{kind: ErrConflict, reason: "a request with this Idempotency-Key is still being processed"}

	ErrMissingToken = &reasonError{kind: ErrUnauthenticated, reason: "token not found"}
	ErrInvalidToken = &reasonError{kind: ErrUnauthenticated, reason: "invalid token"}
	ErrUnknownActor = &reasonError{kind: ErrUnauthenticated, reason: "organization not found"}
)

// Reason returns the user-facing message carried by err. Errors built without
// one fall back to their own text.
func Reason(err error) string {
	var re *reasonError
	if errors.As(err, &re) {
		return re.reason
	}
	return err.Error()
}
