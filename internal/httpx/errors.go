package httpx

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Kind discriminates the failures the ErrorTranslator knows how to format.
type Kind int

const (
	KindUnclassified Kind = iota
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unclassified"
	}
}

// Failure is an error that reached the edge of a handler without a structured response.
type Failure struct {
	Kind    Kind
	Code    string
	Message string
	Stack   string
	cause   error
}

func (f *Failure) Error() string {
	if f.cause != nil && f.cause.Error() != f.Message {
		return fmt.Sprintf("%s: %v", f.Message, f.cause)
	}
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.cause
}

// Unauthorized builds a credential failure; code and message are sent to the client verbatim.
func Unauthorized(code, message string) *Failure {
	return &Failure{Kind: KindUnauthorized, Code: code, Message: message}
}

// Unclassified wraps err and records the stack of the caller.
func Unclassified(err error) *Failure {
	if err == nil {
		err = errUnknown
	}
	return &Failure{
		Kind:    KindUnclassified,
		Message: err.Error(),
		Stack:   string(debug.Stack()),
		cause:   err,
	}
}

// AsFailure returns the Failure in err's chain, or wraps err as unclassified.
func AsFailure(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return Unclassified(err)
}
