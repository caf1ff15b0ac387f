package handlers

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markjakearzadon/cohorttools-gobackend/internal/apperrors"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

var _ net.Error = timeoutError{}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "upstream status and message",
			err:     &apperrors.UpstreamError{Status: http.StatusTeapot, Message: "short and stout"},
			status:  http.StatusTeapot,
			message: "short and stout",
		},
		{
			name:    "upstream without message",
			err:     &apperrors.UpstreamError{Status: http.StatusConflict},
			status:  http.StatusConflict,
			message: msgUnexpected,
		},
		{
			name:    "upstream with non error status",
			err:     &apperrors.UpstreamError{Status: http.StatusOK, Message: "odd"},
			status:  http.StatusBadGateway,
			message: "odd",
		},
		{
			name:    "upstream wins over unauthorized",
			err:     fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, &apperrors.UpstreamError{Status: 418, Message: "x"}),
			status:  418,
			message: "x",
		},
		{
			name:    "service unavailable",
			err:     fmt.Errorf("find student: %w", apperrors.ErrServiceUnavailable),
			status:  http.StatusServiceUnavailable,
			message: msgServiceUnavailable,
		},
		{
			name:    "network sentinel",
			err:     fmt.Errorf("list: %w", apperrors.ErrNetwork),
			status:  http.StatusServiceUnavailable,
			message: msgNetwork,
		},
		{
			name:    "net.Error",
			err:     &net.OpError{Op: "dial", Err: timeoutError{}},
			status:  http.StatusServiceUnavailable,
			message: msgNetwork,
		},
		{
			name:    "validation",
			err:     apperrors.NewDuplicateError("Student", "email"),
			status:  http.StatusBadRequest,
			message: "Student validation failed: email: email already exists",
		},
		{
			name:    "unauthorized",
			err:     apperrors.Unauthorized("token expired"),
			status:  http.StatusUnauthorized,
			message: msgUnauthorized,
		},
		{
			name:    "anything else",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			message: msgInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := translate(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, message)
		})
	}
}

func TestWriteErrorAfterResponseStarted(t *testing.T) {
	h := TrackResponse(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("partial"))
		WriteError(w, r, errors.New("late failure"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}

func TestWriteErrorBeforeResponseStarted(t *testing.T) {
	h := TrackResponse(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Trace", "1")
		WriteError(w, r, apperrors.ErrServiceUnavailable)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"message":"`+msgServiceUnavailable+`"}`, rec.Body.String())
}
