package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/markjakearzadon/cohorttools-gobackend/internal/apperrors"
	"github.com/markjakearzadon/cohorttools-gobackend/internal/models"
)

const userEntity = "User"

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

type UserService struct {
	collection *mongo.Collection
	hasher     PasswordHasher
}

func NewUserService(db *mongo.Database, hasher PasswordHasher) *UserService {
	return &UserService{collection: db.Collection("users"), hasher: hasher}
}

func (s *UserService) EnsureIndexes(ctx context.Context) error {
	if _, err := s.collection.Indexes().CreateOne(ctx, uniqueIndex("email")); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", classify(err))
	}
	return nil
}

// Signup stores a new user with a hashed password.
func (s *UserService) Signup(ctx context.Context, input models.SignupInput) (*models.User, error) {
	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        bson.NewObjectID(),
		Email:     models.NormalizeEmail(input.Email),
		Password:  hashed,
		Name:      input.Name,
		CreatedAt: time.Now(),
	}

	id, err := insert(ctx, s.collection, userEntity, "email", user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, bool, error) {
	return findByID[models.User](ctx, s.collection, id)
}

// Login returns the user owning email when password matches, and
// apperrors.ErrUnauthorized otherwise.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": models.NormalizeEmail(email)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, classify(err)
	}

	if err := checkPassword(s.hasher, &user, password); err != nil {
		return nil, err
	}
	return &user, nil
}

func checkPassword(hasher PasswordHasher, user *models.User, password string) error {
	ok, err := hasher.Verify(password, user.Password)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Unauthorized("invalid email or password")
	}
	return nil
}
