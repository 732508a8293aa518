package http

import (
	"encoding/json"
	"errors"
	"io"
	"maps"
	"net/http"
	"slices"
	"strconv"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-coopsite/internal/contact"
	"github.com/goliatone/go-coopsite/internal/schema"
	"github.com/goliatone/go-coopsite/internal/site"
	"github.com/goliatone/go-coopsite/internal/validation"
)

const maxBodyBytes = 64 << 10

type errorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message,omitempty"`
	Issues  []validation.ValidationIssue `json:"issues,omitempty"`
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	switch {
	case errors.Is(err, site.ErrPostNotFound),
		errors.Is(err, site.ErrUnknownPage),
		errors.Is(err, schema.ErrUnknownType):
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()}
	case errors.Is(err, contact.ErrContactDisabled):
		return http.StatusServiceUnavailable, errorResponse{Error: "contact_disabled", Message: err.Error()}
	case goerrors.IsCategory(err, goerrors.CategoryValidation):
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: "the submission is invalid",
			Issues:  validation.Issues(err),
		}
	}

	return http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: "unexpected error"}
}

func fieldIssues(fields map[string]string) []validation.ValidationIssue {
	issues := make([]validation.ValidationIssue, 0, len(fields))
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		issues = append(issues, validation.ValidationIssue{Location: "/" + name, Message: fields[name]})
	}
	return issues
}

// intParam parses a positive integer query parameter, returning zero when
// it is missing or malformed.
func intParam(r *http.Request, name string) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0
	}
	return value
}
