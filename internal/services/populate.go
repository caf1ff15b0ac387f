package services

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/markjakearzadon/cohorttools-gobackend/internal/models"
)

// CohortFinder loads cohorts by id.
type CohortFinder interface {
	FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.Cohort, error)
}

// Populate replaces each student's cohort reference with the cohort document.
// References to cohorts that no longer exist resolve to nil.
func Populate(ctx context.Context, finder CohortFinder, students ...models.Student) ([]models.PopulatedStudent, error) {
	seen := make(map[bson.ObjectID]struct{})
	ids := []bson.ObjectID{}
	for _, s := range students {
		if s.Cohort == nil {
			continue
		}
		if _, ok := seen[*s.Cohort]; !ok {
			seen[*s.Cohort] = struct{}{}
			ids = append(ids, *s.Cohort)
		}
	}

	byID := make(map[bson.ObjectID]*models.Cohort, len(ids))
	if len(ids) > 0 {
		cohorts, err := finder.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range cohorts {
			byID[cohorts[i].ID] = &cohorts[i]
		}
	}

	out := make([]models.PopulatedStudent, 0, len(students))
	for _, s := range students {
		p := models.PopulatedStudent{Student: s}
		if s.Cohort != nil {
			p.Cohort = byID[*s.Cohort]
			if p.Cohort == nil {
				zerolog.Ctx(ctx).Debug().
					Str("student", s.ID.Hex()).
					Str("cohort", s.Cohort.Hex()).
					Msg("student references a missing cohort")
			}
		}
		out = append(out, p)
	}
	return out, nil
}
