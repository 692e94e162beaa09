package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type UnauthorizedResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type InternalErrorResponse struct {
	Message string `json:"message"`
	Stack   string `json:"stack"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("response encode failed: status=%d error=%v", statusCode, err)
	}
}

func JSONOK(w http.ResponseWriter, body any) {
	JSON(w, http.StatusOK, body)
}

// JSONMessage writes the {message} body used for every expected 4xx outcome.
func JSONMessage(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, MessageResponse{Message: message})
}

func JSONSuccess(w http.ResponseWriter) {
	JSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// BindJSON decodes the request body into dst. An empty body leaves dst untouched.
// On failure it writes the 400 (or 413) response itself and returns false.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil {
		return true
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		JSONMessage(w, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}
	JSONMessage(w, http.StatusBadRequest, "invalid request body")
	return false
}
