package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tagpoint/backend/internal/domain"
)

// errorResponse is the JSON envelope for every failure this API returns.
// Fields carries per-field messages when the failure is attributable to
// specific inputs (validation, duplicate tag).
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// writeJSON serializes v with the given status. Encoding failures are beyond
// recovery mid-response, so they are ignored; the request logger still records
// the status line.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainError maps the domain's sentinel taxonomy onto HTTP statuses.
// notFoundMsg names what was being looked up, because the handler is the
// layer that knows.
func writeDomainError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error: errorDetail{Code: "not_found", Message: notFoundMsg},
		})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error: errorDetail{
				Code:    "conflict",
				Message: "this tag is already registered",
				Fields:  map[string]string{"tag": "this tag is already registered"},
			},
		})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: errorDetail{Code: "validation_error", Message: unwrapMessage(err)},
		})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: errorDetail{Code: "internal", Message: "internal server error"},
		})
	}
}

// writeValidatorError turns validator.ValidationErrors into a 422 with one
// message per offending field. Field keys are JSON names, courtesy of the
// tag name func registered in NewServer.
func writeValidatorError(w http.ResponseWriter, err error) {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
	}
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Error: errorDetail{Code: "validation_error", Message: "invalid request", Fields: fields},
	})
}

// writeRequestError rejects a request before it reaches the service layer
// (missing body, malformed JSON, bad query parameter).
func writeRequestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Error: errorDetail{Code: "validation_error", Message: message},
	})
}

// fieldMessage renders a human-readable message for the common tags used by
// the DTOs in this package.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "uuid":
		return "must be a valid UUID"
	default:
		return "is invalid"
	}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.DirectoryService.Register: validation error: tag is required"
// → "tag is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, "validation error: "); i >= 0 {
		return msg[i+len("validation error: "):]
	}
	return msg
}
