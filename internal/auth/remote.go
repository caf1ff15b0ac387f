package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/markjakearzadon/cohorttools-gobackend/internal/apperrors"
)

// RemoteVerifier asks an external auth service to verify the caller by
// forwarding the Authorization header to its verify endpoint.
type RemoteVerifier struct {
	verifyURL string
	client    *http.Client
}

func NewRemoteVerifier(verifyURL string, timeout time.Duration) *RemoteVerifier {
	return &RemoteVerifier{
		verifyURL: verifyURL,
		client:    &http.Client{Timeout: timeout},
	}
}

func (v *RemoteVerifier) Verify(r *http.Request) (*Identity, error) {
	if _, err := BearerToken(r); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, v.verifyURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", r.Header.Get("Authorization"))
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, apperrors.Unauthorized("rejected by auth service")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &payload)
		return nil, &apperrors.UpstreamError{Status: resp.StatusCode, Message: payload.Message}
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	if identity.ID == "" {
		return nil, apperrors.Unauthorized("auth service returned no identity")
	}
	return &identity, nil
}

// transportError separates "could not connect" from "sent but never answered".
func transportError(err error) error {
	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) || (errors.As(err, &opErr) && opErr.Op == "dial") {
		return fmt.Errorf("%w: %w", apperrors.ErrNetwork, err)
	}
	return fmt.Errorf("%w: %w", apperrors.ErrServiceUnavailable, err)
}
