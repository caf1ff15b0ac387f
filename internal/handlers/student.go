package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/markjakearzadon/cohorttools-gobackend/internal/apperrors"
	"github.com/markjakearzadon/cohorttools-gobackend/internal/models"
	"github.com/markjakearzadon/cohorttools-gobackend/internal/services"
)

// StudentStore is the persistence the student routes need.
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) (*models.Student, error)
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	Get(ctx context.Context, id string) (*models.Student, bool, error)
	Update(ctx context.Context, id string, patch models.StudentPatch) (*models.Student, bool, error)
	Delete(ctx context.Context, id string) error
}

// Validator checks a request input and reports failures for entity.
type Validator interface {
	Struct(entity string, s any) error
}

// StudentHandler handles HTTP requests for students
type StudentHandler struct {
	students  StudentStore
	cohorts   services.CohortFinder
	validator Validator
}

func NewStudentHandler(students StudentStore, cohorts services.CohortFinder, validator Validator) *StudentHandler {
	return &StudentHandler{students: students, cohorts: cohorts, validator: validator}
}

// CreateStudent handles POST /api/students
func (h *StudentHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var input models.StudentInput
	if err := decodeJSON(r, &input); err != nil {
		WriteError(w, r, err)
		return
	}
	if err := h.validator.Struct("Student", input); err != nil {
		WriteError(w, r, err)
		return
	}

	student, err := input.Student()
	if err != nil {
		WriteError(w, r, apperrors.NewValidationError("Student", "cohort", "cohort must be a valid identifier"))
		return
	}

	created, err := h.students.Create(r.Context(), student)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	hlog.FromRequest(r).Info().Str("student", created.ID.Hex()).Msg("student created")
	writeJSON(w, r, http.StatusCreated, created)
}

// GetStudents handles GET /api/students
func (h *StudentHandler) GetStudents(w http.ResponseWriter, r *http.Request) {
	h.listStudents(w, r, models.StudentFilter{})
}

// GetStudentsByCohort handles GET /api/students/cohort/{cohortId}
func (h *StudentHandler) GetStudentsByCohort(w http.ResponseWriter, r *http.Request) {
	cohortID, err := bson.ObjectIDFromHex(mux.Vars(r)["cohortId"])
	if err != nil {
		// no student can reference a malformed id
		writeJSON(w, r, http.StatusOK, []models.PopulatedStudent{})
		return
	}
	h.listStudents(w, r, models.StudentFilter{Cohort: &cohortID})
}

func (h *StudentHandler) listStudents(w http.ResponseWriter, r *http.Request, filter models.StudentFilter) {
	students, err := h.students.List(r.Context(), filter)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	populated, err := services.Populate(r.Context(), h.cohorts, students...)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, populated)
}

// GetStudent handles GET /api/students/{id}
func (h *StudentHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	student, found, err := h.students.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, r, err)
		return
	}
	if !found {
		writeNotFound(w, r, "Student not found")
		return
	}

	populated, err := services.Populate(r.Context(), h.cohorts, *student)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, populated[0])
}

// UpdateStudent handles PUT /api/students/{id}
func (h *StudentHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	var patch models.StudentPatch
	if err := decodePatch(r, &patch, "Student", models.StudentRequiredFields); err != nil {
		WriteError(w, r, err)
		return
	}
	if err := h.validator.Struct("Student", patch); err != nil {
		WriteError(w, r, err)
		return
	}
	patch.Normalize()

	updated, found, err := h.students.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	if !found {
		writeNotFound(w, r, "Student not found")
		return
	}

	writeJSON(w, r, http.StatusOK, updated)
}

// DeleteStudent handles DELETE /api/students/{id}. It succeeds whether or
// not the student existed.
func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	if err := h.students.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
