// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage and services can all import types without depending
// on each other.
package types

import "fmt"

// BirthDateLayout is the only accepted format for birth dates: a plain
// calendar date with no time or zone, e.g. "2000-01-29".
const BirthDateLayout = "2006-01-02"

// Student represents a persisted student record.
//
// ID is assigned by the storage backend. It is never read from a client
// request: see CreateStudentRequest.
type Student struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	BirthDate string `json:"birthDate"`
	DNI       string `json:"dni"`
}

// String renders the record the way it is echoed back to the client
// after a successful creation:
//
//	Student{id=1, name=John, birthDate=2000-01-29, dni=12345678A}
func (s Student) String() string {
	return fmt.Sprintf("Student{id=%d, name=%s, birthDate=%s, dni=%s}",
		s.ID, s.Name, s.BirthDate, s.DNI)
}

// CreateStudentRequest is the candidate record decoded from the body of
// POST /students.
//
// The validate:"..." tags are checked by go-playground/validator in the
// order they are written, stopping at the first failure of each field:
//
//	required             : absent, null and "" all fail
//	datetime=2006-01-02  : must be a real calendar date
//	notfuture            : custom rule: not after today
type CreateStudentRequest struct {
	Name      string `json:"name"      validate:"required"`
	BirthDate string `json:"birthDate" validate:"required,datetime=2006-01-02,notfuture"`
	DNI       string `json:"dni"       validate:"required"`
}
