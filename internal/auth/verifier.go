package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/markjakearzadon/cohorttools-gobackend/internal/apperrors"
)

// Verifier establishes who is calling. Failures wrap apperrors.ErrUnauthorized
// unless the check itself could not be carried out.
type Verifier interface {
	Verify(r *http.Request) (*Identity, error)
}

// TokenVerifier validates the bearer token locally.
type TokenVerifier struct {
	authenticator *JWTAuthenticator
}

func NewTokenVerifier(authenticator *JWTAuthenticator) *TokenVerifier {
	return &TokenVerifier{authenticator: authenticator}
}

func (v *TokenVerifier) Verify(r *http.Request) (*Identity, error) {
	token, err := BearerToken(r)
	if err != nil {
		return nil, err
	}

	identity, err := v.authenticator.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err.Error())
	}
	return identity, nil
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", apperrors.Unauthorized("authorization header required")
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", apperrors.Unauthorized("invalid authorization header format")
	}
	return strings.TrimSpace(token), nil
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFrom returns the identity stored by WithIdentity, if any.
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*Identity)
	return identity, ok
}
