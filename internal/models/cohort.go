package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DefaultTotalHours is stored when a cohort is created without totalHours.
const DefaultTotalHours = 360

// Cohort represents a cohort document in the MongoDB database
type Cohort struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	CohortSlug     string        `bson:"cohortSlug" json:"cohortSlug"`
	CohortName     string        `bson:"cohortName" json:"cohortName"`
	Program        string        `bson:"program" json:"program"`
	Format         string        `bson:"format" json:"format"`
	Campus         string        `bson:"campus" json:"campus"`
	StartDate      time.Time     `bson:"startDate" json:"startDate"`
	EndDate        *time.Time    `bson:"endDate,omitempty" json:"endDate,omitempty"`
	InProgress     bool          `bson:"inProgress" json:"inProgress"`
	ProgramManager string        `bson:"programManager" json:"programManager"`
	LeadTeacher    string        `bson:"leadTeacher" json:"leadTeacher"`
	TotalHours     int           `bson:"totalHours" json:"totalHours"`
}

// CohortRequiredFields may be omitted from an update but never set to null.
var CohortRequiredFields = []string{"cohortSlug", "cohortName", "programManager", "leadTeacher"}

// CohortInput is the body of POST /api/cohorts.
type CohortInput struct {
	CohortSlug     string     `json:"cohortSlug" validate:"required"`
	CohortName     string     `json:"cohortName" validate:"required"`
	Program        string     `json:"program" validate:"omitempty,program"`
	Format         string     `json:"format" validate:"omitempty,cohortformat"`
	Campus         string     `json:"campus"`
	StartDate      *Date      `json:"startDate"`
	EndDate        *Date      `json:"endDate"`
	InProgress     bool       `json:"inProgress"`
	ProgramManager string     `json:"programManager" validate:"required"`
	LeadTeacher    string     `json:"leadTeacher" validate:"required"`
	TotalHours     *int       `json:"totalHours" validate:"omitnil,gte=0"`
}

// Cohort builds the document to insert. now is used when startDate is omitted.
func (in CohortInput) Cohort(now time.Time) *Cohort {
	c := &Cohort{
		CohortSlug:     in.CohortSlug,
		CohortName:     in.CohortName,
		Program:        in.Program,
		Format:         in.Format,
		Campus:         in.Campus,
		StartDate:      now,
		InProgress:     in.InProgress,
		ProgramManager: in.ProgramManager,
		LeadTeacher:    in.LeadTeacher,
		TotalHours:     DefaultTotalHours,
	}
	if in.StartDate != nil {
		c.StartDate = in.StartDate.Time
	}
	if in.EndDate != nil {
		end := in.EndDate.Time
		c.EndDate = &end
	}
	if in.TotalHours != nil {
		c.TotalHours = *in.TotalHours
	}
	return c
}

// CohortPatch is the body of PUT /api/cohorts/{id}.
type CohortPatch struct {
	CohortSlug     *string    `json:"cohortSlug" validate:"omitnil,min=1"`
	CohortName     *string    `json:"cohortName" validate:"omitnil,min=1"`
	Program        *string    `json:"program" validate:"omitnil,program"`
	Format         *string    `json:"format" validate:"omitnil,cohortformat"`
	Campus         *string    `json:"campus"`
	StartDate      *Date      `json:"startDate"`
	EndDate        *Date      `json:"endDate"`
	InProgress     *bool      `json:"inProgress"`
	ProgramManager *string    `json:"programManager" validate:"omitnil,min=1"`
	LeadTeacher    *string    `json:"leadTeacher" validate:"omitnil,min=1"`
	TotalHours     *int       `json:"totalHours" validate:"omitnil,gte=0"`
}

// Set returns the $set document for the supplied fields.
func (p CohortPatch) Set() bson.M {
	set := bson.M{}
	setString(set, "cohortSlug", p.CohortSlug)
	setString(set, "cohortName", p.CohortName)
	setString(set, "program", p.Program)
	setString(set, "format", p.Format)
	setString(set, "campus", p.Campus)
	setString(set, "programManager", p.ProgramManager)
	setString(set, "leadTeacher", p.LeadTeacher)
	if p.StartDate != nil {
		set["startDate"] = p.StartDate.Time
	}
	if p.EndDate != nil {
		set["endDate"] = p.EndDate.Time
	}
	if p.InProgress != nil {
		set["inProgress"] = *p.InProgress
	}
	if p.TotalHours != nil {
		set["totalHours"] = *p.TotalHours
	}
	return set
}
