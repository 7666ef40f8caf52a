package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/rsathishtechit/video-player/internal/store"
)

// Common response structures for consistency across all handlers
type ErrorResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// StatusForError maps store sentinels onto HTTP status codes so every
// handler reports them the same way
func StatusForError(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateFolder), errors.Is(err, store.ErrDuplicatePath):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// SendError sends a consistent error response with logging
func SendError(w http.ResponseWriter, message string, statusCode int, err error) {
	if err != nil {
		log.Printf("%s: %v", message, err)
	} else {
		log.Printf("%s", message)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Message: message,
		Success: false,
	}
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		log.Printf("Failed to encode error response: %v", encodeErr)
	}
}

// SendServiceError reports a service failure, letting the sentinel decide
// the status code
func SendServiceError(w http.ResponseWriter, message string, err error) {
	SendError(w, message, StatusForError(err), err)
}

// SendJSON sends a success response with the given status code
func SendJSON(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := SuccessResponse{
		Message: message,
		Success: true,
		Data:    data,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// DecodeJSONBody strictly decodes the request body into dest
func DecodeJSONBody(r *http.Request, dest interface{}) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dest); err != nil {
		return errors.New("invalid JSON format: " + err.Error())
	}
	return nil
}

// PathID pulls a numeric {id} path parameter out of the request
func PathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name + " path parameter")
	}
	return id, nil
}
