package domain

import (
	"errors"
	"strings"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
)

// ErrorKind classifies a use-case failure. The transport layer maps kinds to status codes.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindReferenceInconsistent
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation_failed"
	case KindNotFound:
		return "not_found"
	case KindReferenceInconsistent:
		return "reference_inconsistent"
	default:
		return "unknown"
	}
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the tagged error returned by every use case.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  []FieldError
	// Missing lists unresolved product ids of a ReferenceInconsistent failure.
	Missing []string
	Err     error
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return e.Message + ": " + strings.Join(parts, ", ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewValidationError(message string, fields []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func NewNotFoundError(err error) *Error {
	return &Error{Kind: KindNotFound, Message: err.Error(), Err: err}
}

func NewProductsMissingError(missing []string) *Error {
	return &Error{
		Kind:    KindReferenceInconsistent,
		Message: "some products were not found",
		Missing: missing,
	}
}

// KindOf returns the kind of a tagged error anywhere in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}
