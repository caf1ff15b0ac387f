package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"

	"github.com/markjakearzadon/cohorttools-gobackend/internal/models"
	"github.com/markjakearzadon/cohorttools-gobackend/internal/services"
)

// CohortStore is the persistence the cohort routes need. It also resolves
// student cohort references.
type CohortStore interface {
	services.CohortFinder
	Create(ctx context.Context, cohort *models.Cohort) (*models.Cohort, error)
	List(ctx context.Context) ([]models.Cohort, error)
	Get(ctx context.Context, id string) (*models.Cohort, bool, error)
	Update(ctx context.Context, id string, patch models.CohortPatch) (*models.Cohort, bool, error)
	Delete(ctx context.Context, id string) error
}

// CohortHandler handles HTTP requests for cohorts
type CohortHandler struct {
	cohorts   CohortStore
	validator Validator
	now       func() time.Time
}

func NewCohortHandler(cohorts CohortStore, validator Validator) *CohortHandler {
	return &CohortHandler{cohorts: cohorts, validator: validator, now: time.Now}
}

// CreateCohort handles POST /api/cohorts
func (h *CohortHandler) CreateCohort(w http.ResponseWriter, r *http.Request) {
	var input models.CohortInput
	if err := decodeJSON(r, &input); err != nil {
		WriteError(w, r, err)
		return
	}
	if err := h.validator.Struct("Cohort", input); err != nil {
		WriteError(w, r, err)
		return
	}

	created, err := h.cohorts.Create(r.Context(), input.Cohort(h.now()))
	if err != nil {
		WriteError(w, r, err)
		return
	}

	hlog.FromRequest(r).Info().Str("cohort", created.ID.Hex()).Msg("cohort created")
	writeJSON(w, r, http.StatusCreated, created)
}

// GetCohorts handles GET /api/cohorts
func (h *CohortHandler) GetCohorts(w http.ResponseWriter, r *http.Request) {
	cohorts, err := h.cohorts.List(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cohorts)
}

// GetCohort handles GET /api/cohorts/{id}
func (h *CohortHandler) GetCohort(w http.ResponseWriter, r *http.Request) {
	cohort, found, err := h.cohorts.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, r, err)
		return
	}
	if !found {
		writeNotFound(w, r, "Cohort not found")
		return
	}
	writeJSON(w, r, http.StatusOK, cohort)
}

// UpdateCohort handles PUT /api/cohorts/{id}
func (h *CohortHandler) UpdateCohort(w http.ResponseWriter, r *http.Request) {
	var patch models.CohortPatch
	if err := decodePatch(r, &patch, "Cohort", models.CohortRequiredFields); err != nil {
		WriteError(w, r, err)
		return
	}
	if err := h.validator.Struct("Cohort", patch); err != nil {
		WriteError(w, r, err)
		return
	}

	updated, found, err := h.cohorts.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	if !found {
		writeNotFound(w, r, "Cohort not found")
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

// DeleteCohort handles DELETE /api/cohorts/{id}. Students keep their
// reference to the removed cohort.
func (h *CohortHandler) DeleteCohort(w http.ResponseWriter, r *http.Request) {
	if err := h.cohorts.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
