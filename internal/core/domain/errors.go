package domain

import (
	"errors"
	"net/http"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
	KindUpstream
)

// HTTPStatus is the response code a request boundary uses for the kind.
// Conflicts answer 400 because clients of the redeem endpoint expect it.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels by kind and message so wrapped copies still compare equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func NewValidationError(msg string) error { return &Error{Kind: KindValidation, Message: msg} }
func NewNotFoundError(msg string) error   { return &Error{Kind: KindNotFound, Message: msg} }
func NewConflictError(msg string) error   { return &Error{Kind: KindConflict, Message: msg} }
func NewAuthError(msg string) error       { return &Error{Kind: KindAuth, Message: msg} }

func NewUpstreamError(msg string, err error) error {
	return &Error{Kind: KindUpstream, Message: msg, Err: err}
}

func NewInternalError(msg string, err error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

var (
	ErrInvalidSignature   = &Error{Kind: KindValidation, Message: "payment signature mismatch"}
	ErrTicketUnavailable  = &Error{Kind: KindConflict, Message: "Ticket already used or not found"}
	ErrTicketNotFound     = &Error{Kind: KindNotFound, Message: "Ticket not found"}
	ErrPaymentProcessed   = &Error{Kind: KindConflict, Message: "payment already processed"}
	ErrCredentialsMissing = &Error{Kind: KindValidation, Message: "Email and password required"}
	ErrUnknownStaff       = &Error{Kind: KindValidation, Message: "Invalid User"}
	ErrInvalidCredentials = &Error{Kind: KindValidation, Message: "Invalid credentials"}
	ErrStaffExists        = &Error{Kind: KindConflict, Message: "Staff member already exists"}
	ErrStaffNotFound      = &Error{Kind: KindNotFound, Message: "Staff member not found"}
	ErrAdminOnly          = &Error{Kind: KindForbidden, Message: "Access denied: admin role required"}
)

// KindOf reports the kind of the first domain error in err's chain.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// PublicMessage is what may be shown to a caller. Wrapped causes stay in the logs.
func PublicMessage(err error) string {
	var de *Error
	if !errors.As(err, &de) || de.Kind == KindInternal {
		return "Server error"
	}
	return de.Message
}
