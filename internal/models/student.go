package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// DefaultStudentImage is stored when a student is created without an image.
const DefaultStudentImage = "https://i.imgur.com/r8bo8u7.png"

// Student represents a student document in the MongoDB database
type Student struct {
	ID          bson.ObjectID  `bson:"_id,omitempty" json:"_id"`
	FirstName   string         `bson:"firstName" json:"firstName"`
	LastName    string         `bson:"lastName" json:"lastName"`
	Email       string         `bson:"email" json:"email"`
	Phone       string         `bson:"phone" json:"phone"`
	LinkedinURL string         `bson:"linkedinUrl" json:"linkedinUrl"`
	Languages   []string       `bson:"languages" json:"languages"`
	Program     string         `bson:"program" json:"program"`
	Background  string         `bson:"background" json:"background"`
	Image       string         `bson:"image" json:"image"`
	Cohort      *bson.ObjectID `bson:"cohort" json:"cohort"`
	Projects    []any          `bson:"projects" json:"projects"`
}

// PopulatedStudent is a Student whose cohort reference has been replaced by
// the cohort itself. Cohort is nil when unassigned or dangling.
type PopulatedStudent struct {
	Student
	Cohort *Cohort `json:"cohort"`
}

// StudentFilter is an exact-match filter for listing students.
type StudentFilter struct {
	Cohort *bson.ObjectID
}

// StudentRequiredFields may be omitted from an update but never set to null.
var StudentRequiredFields = []string{"firstName", "lastName", "email", "phone"}

// StudentInput is the body of POST /api/students.
type StudentInput struct {
	FirstName   string   `json:"firstName" validate:"required"`
	LastName    string   `json:"lastName" validate:"required"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       string   `json:"phone" validate:"required"`
	LinkedinURL string   `json:"linkedinUrl" validate:"omitempty,url"`
	Languages   []string `json:"languages"`
	Program     string   `json:"program" validate:"omitempty,program"`
	Background  string   `json:"background"`
	Image       string   `json:"image" validate:"omitempty,url"`
	Cohort      *string  `json:"cohort" validate:"omitempty,mongodb"`
	Projects    []any    `json:"projects"`
}

// Student builds the document to insert, filling defaults for omitted fields.
func (in StudentInput) Student() (*Student, error) {
	s := &Student{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       NormalizeEmail(in.Email),
		Phone:       in.Phone,
		LinkedinURL: in.LinkedinURL,
		Languages:   in.Languages,
		Program:     in.Program,
		Background:  in.Background,
		Image:       in.Image,
		Projects:    in.Projects,
	}
	if s.Languages == nil {
		s.Languages = []string{}
	}
	if s.Projects == nil {
		s.Projects = []any{}
	}
	if s.Image == "" {
		s.Image = DefaultStudentImage
	}
	if in.Cohort != nil && *in.Cohort != "" {
		id, err := bson.ObjectIDFromHex(*in.Cohort)
		if err != nil {
			return nil, err
		}
		s.Cohort = &id
	}
	return s, nil
}

// StudentPatch is the body of PUT /api/students/{id}. Nil fields are left
// untouched; an empty cohort string unassigns the cohort.
type StudentPatch struct {
	FirstName   *string   `json:"firstName" validate:"omitnil,min=1"`
	LastName    *string   `json:"lastName" validate:"omitnil,min=1"`
	Email       *string   `json:"email" validate:"omitnil,email"`
	Phone       *string   `json:"phone" validate:"omitnil,min=1"`
	LinkedinURL *string   `json:"linkedinUrl" validate:"omitempty,url"`
	Languages   *[]string `json:"languages"`
	Program     *string   `json:"program" validate:"omitnil,program"`
	Background  *string   `json:"background"`
	Image       *string   `json:"image" validate:"omitempty,url"`
	Cohort      *string   `json:"cohort" validate:"omitempty,mongodb"`
	Projects    *[]any    `json:"projects"`
}

// Set returns the $set document for the supplied fields.
func (p StudentPatch) Set() (bson.M, error) {
	set := bson.M{}
	setString(set, "firstName", p.FirstName)
	setString(set, "lastName", p.LastName)
	if p.Email != nil {
		set["email"] = NormalizeEmail(*p.Email)
	}
	setString(set, "phone", p.Phone)
	setString(set, "linkedinUrl", p.LinkedinURL)
	setString(set, "program", p.Program)
	setString(set, "background", p.Background)
	setString(set, "image", p.Image)
	if p.Languages != nil {
		set["languages"] = *p.Languages
	}
	if p.Projects != nil {
		set["projects"] = *p.Projects
	}
	if p.Cohort != nil {
		if *p.Cohort == "" {
			set["cohort"] = nil
		} else {
			id, err := bson.ObjectIDFromHex(*p.Cohort)
			if err != nil {
				return nil, err
			}
			set["cohort"] = id
		}
	}
	return set, nil
}

// Normalize rewrites the supplied fields into their stored form.
func (p *StudentPatch) Normalize() {
	if p.Email != nil {
		email := NormalizeEmail(*p.Email)
		p.Email = &email
	}
}

func setString(set bson.M, key string, v *string) {
	if v != nil {
		set[key] = *v
	}
}
