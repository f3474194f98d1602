package httputil

import (
	"encoding/json"
	"log"
	"net/http"
)

// Machine-readable error codes returned alongside failure messages.
const (
	CodeUnauthenticated    = "unauthenticated"
	CodeAlreadyExists      = "already_exists"
	CodeInvalidCredentials = "invalid_credentials"
	CodeValidationFailed   = "validation_failed"
	CodeNotFound           = "not_found"
	CodeInvalidRequestBody = "invalid_request_body"
	CodeTooManyRequests    = "too_many_requests"
	CodeInternalError      = "internal_error"
)

// Response is the envelope every endpoint answers with.
// Status is either "success" or "fail".
type Response struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Code      string `json:"code,omitempty"`
	AuthToken string `json:"auth_token,omitempty"`
	Data      any    `json:"data,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// Logs encoding errors to avoid silent failures.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

// RespondSuccess sends a success envelope with a human-readable message.
func RespondSuccess(w http.ResponseWriter, message string, statusCode int) {
	RespondJSON(w, Response{Status: "success", Message: message}, statusCode)
}

// RespondToken sends a success envelope carrying an auth token.
func RespondToken(w http.ResponseWriter, message, token string, statusCode int) {
	RespondJSON(w, Response{Status: "success", Message: message, AuthToken: token}, statusCode)
}

// RespondData sends a success envelope carrying a data payload.
func RespondData(w http.ResponseWriter, data any, statusCode int) {
	RespondJSON(w, Response{Status: "success", Data: data}, statusCode)
}

// RespondFail sends a failure envelope with a machine-readable error code.
func RespondFail(w http.ResponseWriter, message, code string, statusCode int) {
	RespondJSON(w, Response{Status: "fail", Message: message, Code: code}, statusCode)
}
