// Package students implements student intake: validating creation
// requests, persisting accepted records, and listing what is stored.
package students

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/students-service/internal/apperr"
	"github.com/aanand-mishra/students-service/internal/types"
)

// Client-facing validation messages.
const (
	MsgMissingFields = "Fields name, birthDate and dni are required."
	MsgInvalidDate   = "Field birthDate must be a valid date (YYYY-MM-DD)."
	MsgFutureDate    = "Field birthDate must be a past date."
)

// Store is the part of storage.StudentStore the intake needs.
type Store interface {
	Save(ctx context.Context, student types.Student) (types.Student, error)
	FindAll(ctx context.Context) ([]types.Student, error)
}

// Intake validates and persists student records.
type Intake struct {
	store    Store
	validate *validator.Validate
	now      func() time.Time
}

// Option configures an Intake.
type Option func(*Intake)

// WithClock overrides the clock used to decide what "today" is.
func WithClock(now func() time.Time) Option {
	return func(i *Intake) {
		i.now = now
	}
}

// NewIntake builds an Intake backed by store.
func NewIntake(store Store, opts ...Option) *Intake {
	i := &Intake{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}

	i.validate = validator.New()
	// Report fields by their JSON names ("birthDate", not "BirthDate").
	i.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	// Cannot fail: the tag is non-empty and the func is non-nil.
	_ = i.validate.RegisterValidation("notfuture", i.notFuture)

	return i
}

// notFuture reports whether the field, a YYYY-MM-DD date, is on or before
// today in the clock's location. It runs after the datetime tag, so the
// value is already known to parse.
func (i *Intake) notFuture(fl validator.FieldLevel) bool {
	now := i.now()
	birth, err := time.ParseInLocation(types.BirthDateLayout, fl.Field().String(), now.Location())
	if err != nil {
		return false
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return !birth.After(today)
}

// Create validates req and, if it is acceptable, saves exactly one new
// record built from its name, birth date and DNI.
//
// Checks run in a fixed order and the first failing class wins:
// missing fields, then an unparseable date, then a future date. Nothing
// is written when validation fails.
func (i *Intake) Create(ctx context.Context, req types.CreateStudentRequest) (types.Student, error) {
	if err := i.check(req); err != nil {
		return types.Student{}, err
	}

	saved, err := i.store.Save(ctx, types.Student{
		Name:      req.Name,
		BirthDate: req.BirthDate,
		DNI:       req.DNI,
	})
	if err != nil {
		return types.Student{}, apperr.NewUpstreamError(apperr.ComponentStorage, "save student", err)
	}

	slog.InfoContext(ctx, "student created", slog.Int64("id", saved.ID))
	return saved, nil
}

// List returns every stored student in storage order.
func (i *Intake) List(ctx context.Context) ([]types.Student, error) {
	all, err := i.store.FindAll(ctx)
	if err != nil {
		return nil, apperr.NewUpstreamError(apperr.ComponentStorage, "list students", err)
	}
	if all == nil {
		all = []types.Student{}
	}
	return all, nil
}

func (i *Intake) check(req types.CreateStudentRequest) error {
	err := i.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var invalidDate, futureDate bool
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			return apperr.NewValidationError(fe.Field(), MsgMissingFields)
		case "datetime":
			invalidDate = true
		case "notfuture":
			futureDate = true
		}
	}

	switch {
	case invalidDate:
		return apperr.NewValidationError("birthDate", MsgInvalidDate)
	case futureDate:
		return apperr.NewValidationError("birthDate", MsgFutureDate)
	default:
		return apperr.NewValidationError("", err.Error())
	}
}
