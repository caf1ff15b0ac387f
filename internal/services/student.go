package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/markjakearzadon/cohorttools-gobackend/internal/apperrors"
	"github.com/markjakearzadon/cohorttools-gobackend/internal/models"
)

const studentEntity = "Student"

type StudentService struct {
	collection *mongo.Collection
}

func NewStudentService(db *mongo.Database) *StudentService {
	return &StudentService{collection: db.Collection("students")}
}

// EnsureIndexes creates the unique email index and the cohort lookup index.
func (s *StudentService) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		uniqueIndex("email"),
		{Keys: bson.D{{Key: "cohort", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create student indexes: %w", classify(err))
	}
	return nil
}

func (s *StudentService) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	student.ID = bson.NewObjectID()

	id, err := insert(ctx, s.collection, studentEntity, "email", student)
	if err != nil {
		return nil, err
	}
	student.ID = id
	return student, nil
}

// List returns every student matching filter; a zero filter matches all.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	query := bson.M{}
	if filter.Cohort != nil {
		query["cohort"] = *filter.Cohort
	}
	return findAll[models.Student](ctx, s.collection, query)
}

func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, bool, error) {
	return findByID[models.Student](ctx, s.collection, id)
}

func (s *StudentService) Update(ctx context.Context, id string, patch models.StudentPatch) (*models.Student, bool, error) {
	set, err := patch.Set()
	if err != nil {
		return nil, false, apperrors.NewValidationError(studentEntity, "cohort", "cohort must be a valid identifier")
	}
	return updateByID[models.Student](ctx, s.collection, studentEntity, "email", id, set)
}

func (s *StudentService) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.collection, id)
}
