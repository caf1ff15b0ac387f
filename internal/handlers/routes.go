package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/markjakearzadon/cohorttools-gobackend/internal/auth"
)

// Router wires every route of the API.
type Router struct {
	Logger      zerolog.Logger
	CORSOrigins []string
	Verifier    auth.Verifier
	Students    *StudentHandler
	Cohorts     *CohortHandler
	Auth        *AuthHandler
}

func (rt Router) Handler() http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(NotFound)

	guard := RequireIdentity(rt.Verifier)

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET", "HEAD")

	s := rt.Students
	router.HandleFunc("/api/students", s.CreateStudent).Methods("POST")
	router.HandleFunc("/api/students", s.GetStudents).Methods("GET")
	router.HandleFunc("/api/students/cohort/{cohortId}", s.GetStudentsByCohort).Methods("GET")
	router.Handle("/api/students/{id}", guard(http.HandlerFunc(s.GetStudent))).Methods("GET")
	router.HandleFunc("/api/students/{id}", s.UpdateStudent).Methods("PUT")
	router.HandleFunc("/api/students/{id}", s.DeleteStudent).Methods("DELETE")

	c := rt.Cohorts
	router.HandleFunc("/api/cohorts", c.CreateCohort).Methods("POST")
	router.HandleFunc("/api/cohorts", c.GetCohorts).Methods("GET")
	router.HandleFunc("/api/cohorts/{id}", c.GetCohort).Methods("GET")
	router.HandleFunc("/api/cohorts/{id}", c.UpdateCohort).Methods("PUT")
	router.HandleFunc("/api/cohorts/{id}", c.DeleteCohort).Methods("DELETE")

	a := rt.Auth
	router.HandleFunc("/auth/signup", a.Signup).Methods("POST")
	router.HandleFunc("/auth/login", a.Login).Methods("POST")
	router.Handle("/auth/verify", guard(http.HandlerFunc(a.Verify))).Methods("GET")

	return Stack(rt.Logger, rt.CORSOrigins, router)
}
