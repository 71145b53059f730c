// Package subjects talks to the peer subjects service and turns its
// answer into the availability message shown to students.
package subjects

import (
	"context"
	"fmt"

	"github.com/aanand-mishra/students-service/internal/apperr"
)

// Source lists every subject the peer service offers, in its order.
type Source interface {
	GetAllSubjects(ctx context.Context) ([]string, error)
}

// Summary formats the subject count reported by a Source.
type Summary struct {
	source Source
}

// NewSummary builds a Summary over source.
func NewSummary(source Source) *Summary {
	return &Summary{source: source}
}

// Describe returns "Students can enroll at N subjects." where N is the
// number of names the source returned, duplicates included. A source
// failure is returned as an *apperr.UpstreamError, never as a zero count.
func (s *Summary) Describe(ctx context.Context) (string, error) {
	names, err := s.source.GetAllSubjects(ctx)
	if err != nil {
		return "", apperr.NewUpstreamError(apperr.ComponentSubjects, "get all subjects", err)
	}

	return fmt.Sprintf("Students can enroll at %d subjects.", len(names)), nil
}
