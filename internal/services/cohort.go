package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/markjakearzadon/cohorttools-gobackend/internal/models"
)

const cohortEntity = "Cohort"

type CohortService struct {
	collection *mongo.Collection
}

func NewCohortService(db *mongo.Database) *CohortService {
	return &CohortService{collection: db.Collection("cohorts")}
}

func (s *CohortService) EnsureIndexes(ctx context.Context) error {
	if _, err := s.collection.Indexes().CreateOne(ctx, uniqueIndex("cohortSlug")); err != nil {
		return fmt.Errorf("failed to create cohort indexes: %w", classify(err))
	}
	return nil
}

func (s *CohortService) Create(ctx context.Context, cohort *models.Cohort) (*models.Cohort, error) {
	cohort.ID = bson.NewObjectID()

	id, err := insert(ctx, s.collection, cohortEntity, "cohortSlug", cohort)
	if err != nil {
		return nil, err
	}
	cohort.ID = id
	return cohort, nil
}

func (s *CohortService) List(ctx context.Context) ([]models.Cohort, error) {
	return findAll[models.Cohort](ctx, s.collection, bson.D{})
}

// FindByIDs fetches the cohorts with the given ids in one query. Ids with no
// matching document are simply absent from the result.
func (s *CohortService) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.Cohort, error) {
	if len(ids) == 0 {
		return []models.Cohort{}, nil
	}
	return findAll[models.Cohort](ctx, s.collection, bson.M{"_id": bson.M{"$in": ids}})
}

func (s *CohortService) Get(ctx context.Context, id string) (*models.Cohort, bool, error) {
	return findByID[models.Cohort](ctx, s.collection, id)
}

func (s *CohortService) Update(ctx context.Context, id string, patch models.CohortPatch) (*models.Cohort, bool, error) {
	return updateByID[models.Cohort](ctx, s.collection, cohortEntity, "cohortSlug", id, patch.Set())
}

func (s *CohortService) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.collection, id)
}
