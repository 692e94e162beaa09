package httpx

import (
	"errors"
	"log"
	"net/http"
	"runtime/debug"
)

var errUnknown = errors.New("unknown error")

// ErrorTranslator is the last stop for failures that have no structured response of their own.
// Expected 4xx outcomes are written where they are detected and never come through here.
type ErrorTranslator struct {
	// Fallback receives failures raised after the response has started.
	Fallback func(w http.ResponseWriter, r *http.Request, err error)
}

func NewErrorTranslator() *ErrorTranslator {
	return &ErrorTranslator{Fallback: AbortResponse}
}

// AbortResponse logs err and aborts the connection; net/http swallows http.ErrAbortHandler.
func AbortResponse(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("error after response started: request_id=%s path=%s error=%v", RequestIDFrom(r), r.URL.Path, err)
	panic(http.ErrAbortHandler)
}

func (t *ErrorTranslator) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		err = errUnknown
	}
	if ResponseStarted(w) {
		fallback := t.Fallback
		if fallback == nil {
			fallback = AbortResponse
		}
		fallback(w, r, err)
		return
	}

	f := AsFailure(err)
	switch f.Kind {
	case KindUnauthorized:
		JSON(w, http.StatusUnauthorized, UnauthorizedResponse{Code: f.Code, Message: f.Message})
	default:
		log.Printf("unhandled error: request_id=%s method=%s path=%s error=%v", RequestIDFrom(r), r.Method, r.URL.Path, err)
		stack := f.Stack
		if stack == "" {
			stack = string(debug.Stack())
		}
		JSON(w, http.StatusInternalServerError, InternalErrorResponse{Message: f.Message, Stack: stack})
	}
}
