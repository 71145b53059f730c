// Package student contains the HTTP handlers for the Student resource.
//
// Handlers are built by factory functions that receive their
// dependencies once at startup and return the func the router calls on
// every request:
//
//	router.HandleFunc("POST /students", student.New(intake))
package student

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/students-service/internal/apperr"
	"github.com/aanand-mishra/students-service/internal/types"
	"github.com/aanand-mishra/students-service/internal/utils/response"
)

// Creator validates and persists one student.
type Creator interface {
	Create(ctx context.Context, req types.CreateStudentRequest) (types.Student, error)
}

// Lister returns every stored student.
type Lister interface {
	List(ctx context.Context) ([]types.Student, error)
}

// New handles POST /students.
//
// Request body (JSON):
//
//	{ "name": "John", "birthDate": "2000-01-29", "dni": "12345678A" }
//
// Success response (201 Created, text/plain):
//
//	Student{id=1, name=John, birthDate=2000-01-29, dni=12345678A}
//
// Error responses:
//
//	400 Bad Request : empty or malformed body (JSON envelope)
//	400 Bad Request : validation failure (text/plain message)
//	500 Internal    : storage error (JSON envelope)
func New(creator Creator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.InfoContext(r.Context(), "creating a student")

		var req types.CreateStudentRequest
		dec := json.NewDecoder(r.Body)
		err := dec.Decode(&req)

		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}

		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if dec.More() {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body must contain a single JSON object")))
			return
		}

		saved, err := creator.Create(r.Context(), req)
		if err != nil {
			var verr *apperr.ValidationError
			if errors.As(err, &verr) {
				slog.InfoContext(r.Context(), "student rejected",
					slog.String("field", verr.Field),
					slog.String("reason", verr.Message))
				response.WriteText(w, http.StatusBadRequest, verr.Message)
				return
			}

			slog.ErrorContext(r.Context(), "error creating student",
				slog.String("error", err.Error()))
			response.WriteJSON(w, response.StatusFor(err), response.GeneralError(err))
			return
		}

		response.WriteText(w, http.StatusCreated, saved.String())
	}
}

// GetList handles GET /subjects and GET /students.
// Returns a JSON array of all students, [] when there are none.
func GetList(lister Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.InfoContext(r.Context(), "getting all students")

		students, err := lister.List(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "error getting students",
				slog.String("error", err.Error()))
			response.WriteJSON(w, response.StatusFor(err), response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}
