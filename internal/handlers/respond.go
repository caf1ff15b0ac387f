package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/markjakearzadon/cohorttools-gobackend/internal/apperrors"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to encode response")
	}
}

func writeNotFound(w http.ResponseWriter, r *http.Request, message string) {
	hlog.FromRequest(r).Info().Str("method", r.Method).Str("path", r.URL.Path).Msg(message)
	writeJSON(w, r, http.StatusNotFound, messageResponse{Message: message})
}

// decodeJSON reads the request body into dst. Unknown fields are ignored.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("", "body", "invalid request body")
	}
	return nil
}

// decodePatch reads an update body into dst. Fields in required may be left
// out but not sent as null.
func decodePatch(r *http.Request, dst any, entity string, required []string) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return apperrors.NewValidationError("", "body", "invalid request body")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return apperrors.NewValidationError("", "body", "invalid request body")
	}

	verr := &apperrors.ValidationError{Entity: entity}
	for _, name := range required {
		if raw, ok := fields[name]; ok && string(raw) == "null" {
			verr.Fields = append(verr.Fields, apperrors.FieldError{Field: name, Message: name + " is a required field"})
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return apperrors.NewValidationError("", "body", "invalid request body")
	}
	return nil
}
