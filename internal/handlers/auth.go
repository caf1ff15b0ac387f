package handlers

import (
	"context"
	"net/http"

	"github.com/markjakearzadon/cohorttools-gobackend/internal/apperrors"
	"github.com/markjakearzadon/cohorttools-gobackend/internal/auth"
	"github.com/markjakearzadon/cohorttools-gobackend/internal/models"
)

type UserStore interface {
	Signup(ctx context.Context, input models.SignupInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
}

type TokenIssuer interface {
	GenerateToken(identity auth.Identity) (string, error)
}

type AuthHandler struct {
	users     UserStore
	tokens    TokenIssuer
	validator Validator
}

func NewAuthHandler(users UserStore, tokens TokenIssuer, validator Validator) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, validator: validator}
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input models.SignupInput
	if err := decodeJSON(r, &input); err != nil {
		WriteError(w, r, err)
		return
	}
	if err := h.validator.Struct("User", input); err != nil {
		WriteError(w, r, err)
		return
	}

	user, err := h.users.Signup(r.Context(), input)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, user)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input models.LoginInput
	if err := decodeJSON(r, &input); err != nil {
		WriteError(w, r, err)
		return
	}
	if err := h.validator.Struct("User", input); err != nil {
		WriteError(w, r, err)
		return
	}

	user, err := h.users.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	token, err := h.tokens.GenerateToken(auth.Identity{ID: user.ID.Hex(), Email: user.Email, Name: user.Name})
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"authToken": token})
}

// Verify handles GET /auth/verify. It only runs behind RequireIdentity.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		WriteError(w, r, apperrors.Unauthorized("no identity on request"))
		return
	}
	writeJSON(w, r, http.StatusOK, identity)
}
