package handlers

import (
	"errors"
	"net"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/markjakearzadon/cohorttools-gobackend/internal/apperrors"
)

const (
	msgUnexpected         = "Unexpected error occurred"
	msgServiceUnavailable = "Service unavailable. Unable to reach server."
	msgNetwork            = "Network error. Check connection and URLs."
	msgUnauthorized       = "Unauthorized. Please check your credentials."
	msgInternal           = "Internal server error. Check the server console."
	msgRouteNotFound      = "This route does not exist."
)

// WriteError logs err and answers with the status and message it maps to.
// Nothing is written when the response has already started.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := translate(err)

	level := zerolog.ErrorLevel
	if status < http.StatusInternalServerError {
		level = zerolog.WarnLevel
	}
	hlog.FromRequest(r).WithLevel(level).
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg("request failed")

	if responseStarted(r) {
		return
	}
	writeJSON(w, r, status, messageResponse{Message: message})
}

func translate(err error) (int, string) {
	var (
		upstream   *apperrors.UpstreamError
		validation *apperrors.ValidationError
		netErr     net.Error
	)

	switch {
	case errors.As(err, &upstream):
		status := upstream.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		if upstream.Message == "" {
			return status, msgUnexpected
		}
		return status, upstream.Message
	case errors.Is(err, apperrors.ErrServiceUnavailable):
		return http.StatusServiceUnavailable, msgServiceUnavailable
	case errors.Is(err, apperrors.ErrNetwork), errors.As(err, &netErr):
		return http.StatusServiceUnavailable, msgNetwork
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, msgUnauthorized
	}
	return http.StatusInternalServerError, msgInternal
}

// NotFound answers every request that no route matched.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeNotFound(w, r, msgRouteNotFound)
}
