package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/seojin-dev/todo-calendar-api/internal/domain"
)

// Responder writes the API's response envelopes and owns the domain-error to
// status-code mapping.
type Responder struct {
	development bool
}

func NewResponder(development bool) *Responder {
	return &Responder{development: development}
}

type successEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

type errorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (rsp *Responder) JSON(w http.ResponseWriter, status int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(successEnvelope{Success: true, Data: data, Message: message}); err != nil {
		log.Printf("ERROR [handlers] failed to encode response: %v", err)
	}
}

func (rsp *Responder) Error(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)

	message := err.Error()
	if kind == domain.KindInternal {
		log.Printf("ERROR [handlers] internal error: %v", err)
		if !rsp.development {
			message = "An unexpected error occurred"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(kind))
	encodeErr := json.NewEncoder(w).Encode(errorEnvelope{
		Error: errorBody{Type: typeFor(kind), Message: message},
	})
	if encodeErr != nil {
		log.Printf("ERROR [handlers] failed to encode error response: %v", encodeErr)
	}
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindAuthentication:
		return http.StatusUnauthorized
	case domain.KindAuthorization:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func typeFor(kind domain.ErrorKind) string {
	switch kind {
	case domain.KindValidation:
		return "ValidationError"
	case domain.KindAuthentication:
		return "AuthenticationError"
	case domain.KindAuthorization:
		return "AuthorizationError"
	case domain.KindNotFound:
		return "NotFoundError"
	case domain.KindConflict:
		return "ConflictError"
	default:
		return "InternalServerError"
	}
}
