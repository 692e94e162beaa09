package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTranslator_Unauthorized(t *testing.T) {
	var forwarded []error
	translator := &ErrorTranslator{Fallback: func(w http.ResponseWriter, r *http.Request, err error) {
		forwarded = append(forwarded, err)
	}}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	translator.Handle(w, r, Unauthorized("some_error_code", "some message"))

	assert.Empty(t, forwarded)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"code":"some_error_code","message":"some message"}`, w.Body.String())
}

func TestErrorTranslator_WrappedUnauthorized(t *testing.T) {
	translator := NewErrorTranslator()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	err := errors.Join(errors.New("context"), Unauthorized("invalid_token", "token is expired"))
	translator.Handle(w, r, err)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"code":"invalid_token","message":"token is expired"}`, w.Body.String())
}

func TestErrorTranslator_ResponseAlreadyStarted(t *testing.T) {
	var forwarded []error
	translator := &ErrorTranslator{Fallback: func(w http.ResponseWriter, r *http.Request, err error) {
		forwarded = append(forwarded, err)
	}}

	rec := httptest.NewRecorder()
	w := TrackResponse(rec)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("partial"))
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	failure := Unauthorized("some_error_code", "some message")
	translator.Handle(w, r, failure)

	require.Len(t, forwarded, 1)
	assert.Same(t, failure, forwarded[0])
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}

func TestErrorTranslator_DefaultFallbackAborts(t *testing.T) {
	translator := NewErrorTranslator()
	w := TrackResponse(httptest.NewRecorder())
	w.WriteHeader(http.StatusOK)
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		translator.Handle(w, r, errors.New("late failure"))
	})
}

func TestErrorTranslator_Unclassified(t *testing.T) {
	translator := NewErrorTranslator()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	translator.Handle(w, r, errors.New("errorrrr"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body InternalErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "errorrrr", body.Message)
	assert.NotEmpty(t, body.Stack)
}

func TestErrorTranslator_UnclassifiedKeepsOriginalStack(t *testing.T) {
	translator := NewErrorTranslator()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	failure := Unclassified(errors.New("db down"))
	failure.Stack = "goroutine 1 [running]:\nmain.main()"
	translator.Handle(w, r, failure)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"db down","stack":"goroutine 1 [running]:\nmain.main()"}`, w.Body.String())
}

func TestErrorTranslator_FailureWithoutStack(t *testing.T) {
	translator := NewErrorTranslator()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	translator.Handle(w, r, &Failure{Message: "no stack recorded"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body InternalErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "no stack recorded", body.Message)
	assert.Contains(t, body.Stack, "goroutine")
}

func TestErrorTranslator_NilError(t *testing.T) {
	translator := NewErrorTranslator()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.NotPanics(t, func() {
		translator.Handle(w, r, nil)
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body InternalErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "unknown error", body.Message)
	assert.NotEmpty(t, body.Stack)
}

func TestResponseStarted(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.False(t, ResponseStarted(rec))

	w := TrackResponse(rec)
	assert.False(t, ResponseStarted(w))
	assert.Same(t, w, TrackResponse(w))

	_, _ = w.Write([]byte("x"))
	assert.True(t, ResponseStarted(w))
}
