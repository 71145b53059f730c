package student

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-service/internal/students"
	"github.com/aanand-mishra/students-service/internal/types"
	"github.com/aanand-mishra/students-service/internal/utils/response"
)

type countingStore struct {
	saves   int
	saved   []types.Student
	saveErr error
	listErr error
}

func (c *countingStore) Save(_ context.Context, s types.Student) (types.Student, error) {
	c.saves++
	if c.saveErr != nil {
		return types.Student{}, c.saveErr
	}
	s.ID = int64(len(c.saved) + 1)
	c.saved = append(c.saved, s)
	return s, nil
}

func (c *countingStore) FindAll(context.Context) ([]types.Student, error) {
	if c.listErr != nil {
		return nil, c.listErr
	}
	out := make([]types.Student, len(c.saved))
	copy(out, c.saved)
	return out, nil
}

func newIntake(store *countingStore) *students.Intake {
	now := time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)
	return students.NewIntake(store, students.WithClock(func() time.Time { return now }))
}

func postStudent(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/students", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestNew_Created(t *testing.T) {
	store := &countingStore{}
	h := New(newIntake(store))

	w := postStudent(t, h, `{"name":"John","birthDate":"2000-01-29","dni":"12345678A"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, store.saves)
	require.Len(t, store.saved, 1)
	assert.Equal(t, store.saved[0].String(), w.Body.String())
	assert.Equal(t, "Student{id=1, name=John, birthDate=2000-01-29, dni=12345678A}", w.Body.String())
}

func TestNew_IgnoresClientID(t *testing.T) {
	store := &countingStore{}
	h := New(newIntake(store))

	w := postStudent(t, h, `{"id":500,"name":"John","birthDate":"2000-01-29","dni":"12345678A"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(1), store.saved[0].ID)
}

func TestNew_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "empty object",
			body: `{}`,
			want: students.MsgMissingFields,
		},
		{
			name: "null name",
			body: `{"name":null,"birthDate":"2000-01-29","dni":"1"}`,
			want: students.MsgMissingFields,
		},
		{
			name: "snake case date field is not accepted",
			body: `{"name":"John","birth_date":"2000-01-29","dni":"1"}`,
			want: students.MsgMissingFields,
		},
		{
			name: "future birth date",
			body: `{"name":"Alice","birthDate":"2100-01-01","dni":"87654321B"}`,
			want: students.MsgFutureDate,
		},
		{
			name: "unparseable birth date",
			body: `{"name":"Alice","birthDate":"yesterday","dni":"87654321B"}`,
			want: students.MsgInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &countingStore{}
			w := postStudent(t, New(newIntake(store)), tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
			assert.Zero(t, store.saves)
		})
	}
}

func TestNew_MalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "broken json", body: `{"name":`},
		{name: "wrong type", body: `{"name":42}`},
		{name: "trailing object", body: `{"name":"John","birthDate":"2000-01-29","dni":"12345678A"} {"x":1}`},
		{name: "trailing garbage", body: `{"name":"John","birthDate":"2000-01-29","dni":"12345678A"} junk`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &countingStore{}
			w := postStudent(t, New(newIntake(store)), tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var resp response.Response
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, response.StatusError, resp.Status)
			assert.NotEmpty(t, resp.Error)
			assert.Zero(t, store.saves)
		})
	}
}

func TestNew_StorageFailure(t *testing.T) {
	store := &countingStore{saveErr: errors.New("database is locked")}
	w := postStudent(t, New(newIntake(store)), `{"name":"John","birthDate":"2000-01-29","dni":"12345678A"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, store.saves)
}

func TestGetList(t *testing.T) {
	store := &countingStore{}
	intake := newIntake(store)

	w := httptest.NewRecorder()
	GetList(intake)(w, httptest.NewRequest(http.MethodGet, "/subjects", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	postStudent(t, New(intake), `{"name":"John","birthDate":"2000-01-29","dni":"12345678A"}`)
	postStudent(t, New(intake), `{"name":"Ana","birthDate":"1999-12-31","dni":"X1"}`)

	w = httptest.NewRecorder()
	GetList(intake)(w, httptest.NewRequest(http.MethodGet, "/subjects", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"id":1,"name":"John","birthDate":"2000-01-29","dni":"12345678A"},
		{"id":2,"name":"Ana","birthDate":"1999-12-31","dni":"X1"}
	]`, w.Body.String())
}

func TestGetList_StorageFailure(t *testing.T) {
	store := &countingStore{listErr: errors.New("database is locked")}

	w := httptest.NewRecorder()
	GetList(newIntake(store))(w, httptest.NewRequest(http.MethodGet, "/subjects", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
