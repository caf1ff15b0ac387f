package handlers

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/markjakearzadon/cohorttools-gobackend/internal/apperrors"
	"github.com/markjakearzadon/cohorttools-gobackend/internal/auth"
	"github.com/markjakearzadon/cohorttools-gobackend/internal/models"
)

// memStudents is an in-memory StudentStore enforcing the unique email rule.
type memStudents struct {
	mu    sync.Mutex
	docs  map[bson.ObjectID]models.Student
	calls int
	err   error
}

func newMemStudents() *memStudents {
	return &memStudents{docs: map[bson.ObjectID]models.Student{}}
}

func (m *memStudents) emailTaken(email string, except bson.ObjectID) bool {
	for id, s := range m.docs {
		if id != except && s.Email == email {
			return true
		}
	}
	return false
}

func (m *memStudents) Create(_ context.Context, s *models.Student) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.emailTaken(s.Email, bson.NilObjectID) {
		return nil, apperrors.NewDuplicateError("Student", "email")
	}
	s.ID = bson.NewObjectID()
	m.docs[s.ID] = *s
	return s, nil
}

func (m *memStudents) List(_ context.Context, filter models.StudentFilter) ([]models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Student{}
	for _, s := range m.docs {
		if filter.Cohort != nil && (s.Cohort == nil || *s.Cohort != *filter.Cohort) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memStudents) Get(_ context.Context, id string) (*models.Student, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, false, m.err
	}
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, false, nil
	}
	s, ok := m.docs[objID]
	if !ok {
		return nil, false, nil
	}
	return &s, true, nil
}

func (m *memStudents) Update(_ context.Context, id string, p models.StudentPatch) (*models.Student, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, false, m.err
	}
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, false, nil
	}
	s, ok := m.docs[objID]
	if !ok {
		return nil, false, nil
	}
	if p.Email != nil && m.emailTaken(*p.Email, objID) {
		return nil, false, apperrors.NewDuplicateError("Student", "email")
	}

	assign(&s.FirstName, p.FirstName)
	assign(&s.LastName, p.LastName)
	assign(&s.Email, p.Email)
	assign(&s.Phone, p.Phone)
	assign(&s.LinkedinURL, p.LinkedinURL)
	assign(&s.Program, p.Program)
	assign(&s.Background, p.Background)
	assign(&s.Image, p.Image)
	assign(&s.Languages, p.Languages)
	assign(&s.Projects, p.Projects)
	if p.Cohort != nil {
		s.Cohort = nil
		if *p.Cohort != "" {
			ref, err := bson.ObjectIDFromHex(*p.Cohort)
			if err != nil {
				return nil, false, err
			}
			s.Cohort = &ref
		}
	}

	m.docs[objID] = s
	return &s, true, nil
}

func (m *memStudents) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	if objID, err := bson.ObjectIDFromHex(id); err == nil {
		delete(m.docs, objID)
	}
	return nil
}

func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// memCohorts is an in-memory CohortStore enforcing the unique slug rule.
type memCohorts struct {
	mu   sync.Mutex
	docs map[bson.ObjectID]models.Cohort
}

func newMemCohorts() *memCohorts {
	return &memCohorts{docs: map[bson.ObjectID]models.Cohort{}}
}

func (m *memCohorts) Create(_ context.Context, c *models.Cohort) (*models.Cohort, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.docs {
		if existing.CohortSlug == c.CohortSlug {
			return nil, apperrors.NewDuplicateError("Cohort", "cohortSlug")
		}
	}
	c.ID = bson.NewObjectID()
	m.docs[c.ID] = *c
	return c, nil
}

func (m *memCohorts) List(context.Context) ([]models.Cohort, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Cohort{}
	for _, c := range m.docs {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCohorts) FindByIDs(_ context.Context, ids []bson.ObjectID) ([]models.Cohort, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Cohort{}
	for _, id := range ids {
		if c, ok := m.docs[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCohorts) Get(_ context.Context, id string) (*models.Cohort, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, false, nil
	}
	c, ok := m.docs[objID]
	if !ok {
		return nil, false, nil
	}
	return &c, true, nil
}

func (m *memCohorts) Update(_ context.Context, id string, p models.CohortPatch) (*models.Cohort, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, false, nil
	}
	c, ok := m.docs[objID]
	if !ok {
		return nil, false, nil
	}
	if p.CohortSlug != nil {
		for otherID, other := range m.docs {
			if otherID != objID && other.CohortSlug == *p.CohortSlug {
				return nil, false, apperrors.NewDuplicateError("Cohort", "cohortSlug")
			}
		}
	}

	assign(&c.CohortSlug, p.CohortSlug)
	assign(&c.CohortName, p.CohortName)
	assign(&c.Program, p.Program)
	assign(&c.Format, p.Format)
	assign(&c.Campus, p.Campus)
	if p.StartDate != nil {
		c.StartDate = p.StartDate.Time
	}
	assign(&c.InProgress, p.InProgress)
	assign(&c.ProgramManager, p.ProgramManager)
	assign(&c.LeadTeacher, p.LeadTeacher)
	assign(&c.TotalHours, p.TotalHours)
	if p.EndDate != nil {
		end := p.EndDate.Time
		c.EndDate = &end
	}

	m.docs[objID] = c
	return &c, true, nil
}

func (m *memCohorts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if objID, err := bson.ObjectIDFromHex(id); err == nil {
		delete(m.docs, objID)
	}
	return nil
}

// memUsers is an in-memory UserStore that hashes passwords for real.
type memUsers struct {
	mu     sync.Mutex
	hasher *auth.PasswordHasher
	users  map[string]models.User
}

func newMemUsers() *memUsers {
	return &memUsers{hasher: auth.NewPasswordHasher("bcrypt"), users: map[string]models.User{}}
}

func (m *memUsers) Signup(_ context.Context, in models.SignupInput) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[in.Email]; ok {
		return nil, apperrors.NewDuplicateError("User", "email")
	}
	hashed, err := m.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u := models.User{ID: bson.NewObjectID(), Email: in.Email, Password: hashed, Name: in.Name, CreatedAt: time.Now()}
	m.users[in.Email] = u
	return &u, nil
}

func (m *memUsers) Login(_ context.Context, email, password string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, apperrors.Unauthorized("invalid email or password")
	}
	match, err := m.hasher.Verify(password, u.Password)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, apperrors.Unauthorized("invalid email or password")
	}
	return &u, nil
}
