// Package subject contains the HTTP handler that reports how many
// subjects students can enroll in.
package subject

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/students-service/internal/utils/response"
)

// Describer produces the subject availability message.
type Describer interface {
	Describe(ctx context.Context) (string, error)
}

// Summary handles GET /subjectsForStudents.
//
//	200 OK                 : "Students can enroll at 3 subjects."
//	503 Service Unavailable: the subjects peer failed or timed out
func Summary(describer Describer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg, err := describer.Describe(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "error describing subjects",
				slog.String("error", err.Error()))
			response.WriteText(w, response.StatusFor(err), response.MsgSubjectsUnavailable)
			return
		}

		response.WriteText(w, http.StatusOK, msg)
	}
}
