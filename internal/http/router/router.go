// Package router wires the HTTP routes and middleware.
//
// Route table:
//
//	GET  /subjectsForStudents → subject availability message (text)
//	GET  /subjects            → list all students (JSON)
//	GET  /students            → list all students (JSON), same handler
//	POST /students            → create a student
//	GET  /health              → liveness probe
package router

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/students-service/internal/http/handlers/student"
	"github.com/aanand-mishra/students-service/internal/http/handlers/subject"
	"github.com/aanand-mishra/students-service/internal/http/middleware"
	"github.com/aanand-mishra/students-service/internal/utils/response"
)

// StudentService is what the student routes need.
type StudentService interface {
	student.Creator
	student.Lister
}

// New returns the fully wrapped handler for the service.
func New(log *slog.Logger, students StudentService, summary subject.Describer) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /subjectsForStudents", subject.Summary(summary))
	mux.HandleFunc("GET /subjects", student.GetList(students))
	mux.HandleFunc("GET /students", student.GetList(students))
	mux.HandleFunc("POST /students", student.New(students))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		response.WriteJSON(w, http.StatusOK, response.OK())
	})

	return middleware.Chain(
		middleware.RequestID,
		middleware.Logger(log),
		middleware.Recovery(log),
	)(mux)
}
