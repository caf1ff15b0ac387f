package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markjakearzadon/cohorttools-gobackend/internal/apperrors"
)

func guardedRequest() *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/students/abc", nil)
	r.Header.Set("Authorization", "Bearer token-123")
	return r
}

func TestRemoteVerifierSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"_id":"u1","email":"ana@example.com","name":"Ana"}`))
	}))
	defer server.Close()

	identity, err := NewRemoteVerifier(server.URL, time.Second).Verify(guardedRequest())
	require.NoError(t, err)
	assert.Equal(t, &Identity{ID: "u1", Email: "ana@example.com", Name: "Ana"}, identity)
}

func TestRemoteVerifierUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := NewRemoteVerifier(server.URL, time.Second).Verify(guardedRequest())
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestRemoteVerifierMissingHeaderSkipsCall(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	_, err := NewRemoteVerifier(server.URL, time.Second).Verify(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.False(t, called)
}

func TestRemoteVerifierUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"message":"token store down"}`))
	}))
	defer server.Close()

	_, err := NewRemoteVerifier(server.URL, time.Second).Verify(guardedRequest())

	var upstream *apperrors.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusBadGateway, upstream.Status)
	assert.Equal(t, "token store down", upstream.Message)
}

func TestRemoteVerifierConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewRemoteVerifier(url, time.Second).Verify(guardedRequest())
	assert.ErrorIs(t, err, apperrors.ErrNetwork)
}

func TestRemoteVerifierNoResponse(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	_, err := NewRemoteVerifier(server.URL, 50*time.Millisecond).Verify(guardedRequest())
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
}
