package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagpoint/backend/internal/domain"
	"github.com/tagpoint/backend/internal/handler"
)

// ---- mock services ---------------------------------------------------------

// mockDirectory is a test double for handler.DirectoryServicer.
// Set only the method fields your test needs.
type mockDirectory struct {
	register     func(ctx context.Context, emp domain.Employee) (domain.Employee, error)
	remove       func(ctx context.Context, id uuid.UUID) error
	list         func(ctx context.Context) ([]domain.Employee, error)
	findByTag    func(ctx context.Context, tag string) (domain.Employee, error)
	searchByName func(ctx context.Context, query string) ([]domain.Employee, error)
}

func (m *mockDirectory) Register(ctx context.Context, emp domain.Employee) (domain.Employee, error) {
	return m.register(ctx, emp)
}
func (m *mockDirectory) Remove(ctx context.Context, id uuid.UUID) error {
	return m.remove(ctx, id)
}
func (m *mockDirectory) List(ctx context.Context) ([]domain.Employee, error) {
	return m.list(ctx)
}
func (m *mockDirectory) FindByTag(ctx context.Context, tag string) (domain.Employee, error) {
	return m.findByTag(ctx, tag)
}
func (m *mockDirectory) SearchByName(ctx context.Context, query string) ([]domain.Employee, error) {
	return m.searchByName(ctx, query)
}

// mockCheckin is a test double for handler.CheckinServicer.
type mockCheckin struct {
	checkIn func(ctx context.Context, employeeID uuid.UUID, category domain.Category) (domain.DayEntry, error)
	today   func(ctx context.Context, category domain.Category) ([]domain.DayEntry, error)
}

func (m *mockCheckin) CheckIn(ctx context.Context, employeeID uuid.UUID, category domain.Category) (domain.DayEntry, error) {
	return m.checkIn(ctx, employeeID, category)
}
func (m *mockCheckin) Today(ctx context.Context, category domain.Category) ([]domain.DayEntry, error) {
	return m.today(ctx, category)
}

// compile-time checks against the consumer-side interfaces.
var (
	_ handler.DirectoryServicer = (*mockDirectory)(nil)
	_ handler.CheckinServicer   = (*mockCheckin)(nil)
)

// ---- helpers ---------------------------------------------------------------

// passthrough replaces the admin gate and rate limiter in tests; those
// middlewares have their own tests.
func passthrough(next http.Handler) http.Handler { return next }

// newHTTPHandler wires a Server with the given mocks into its router, exactly
// as main.go does in production (minus real auth and rate limiting).
func newHTTPHandler(dir handler.DirectoryServicer, chk handler.CheckinServicer) http.Handler {
	return handler.NewServer(dir, chk).Router(passthrough, passthrough)
}

func employeeFixture() domain.Employee {
	maternal := "García"
	return domain.Employee{
		ID:              uuid.New(),
		Tag:             "A100",
		GivenName:       "Juan",
		PaternalSurname: "Pérez",
		MaternalSurname: &maternal,
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// ---- GET /admin/employees --------------------------------------------------

func TestListEmployees_200(t *testing.T) {
	h := newHTTPHandler(&mockDirectory{
		list: func(_ context.Context) ([]domain.Employee, error) {
			return []domain.Employee{employeeFixture()}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/employees", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)
}

// ---- POST /admin/employees -------------------------------------------------

func TestRegisterEmployee_201(t *testing.T) {
	stored := employeeFixture()
	h := newHTTPHandler(&mockDirectory{
		register: func(_ context.Context, emp domain.Employee) (domain.Employee, error) {
			return stored, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/employees", jsonBody(t, map[string]any{
		"tag":              "A100",
		"given_name":       "Juan",
		"paternal_surname": "Pérez",
		"maternal_surname": "García",
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Employee registered successfully.", body["message"])
	require.NotNil(t, body["employee"])
}

func TestRegisterEmployee_MissingFields_422(t *testing.T) {
	h := newHTTPHandler(&mockDirectory{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/employees", jsonBody(t, map[string]any{
		"tag": "A100",
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeBody(t, rec)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "validation_error", errObj["code"])
	fields := errObj["fields"].(map[string]any)
	assert.Contains(t, fields, "given_name")
	assert.Contains(t, fields, "paternal_surname")
	assert.NotContains(t, fields, "tag")
}

func TestRegisterEmployee_DuplicateTag_409(t *testing.T) {
	h := newHTTPHandler(&mockDirectory{
		register: func(_ context.Context, _ domain.Employee) (domain.Employee, error) {
			return domain.Employee{}, domain.ErrConflict
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/employees", jsonBody(t, map[string]any{
		"tag":              "A100",
		"given_name":       "Juan",
		"paternal_surname": "Pérez",
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "conflict", errObj["code"])
	fields := errObj["fields"].(map[string]any)
	assert.Contains(t, fields, "tag", "conflict is attributed to the tag field")
}

func TestRegisterEmployee_MalformedJSON_422(t *testing.T) {
	h := newHTTPHandler(&mockDirectory{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/employees", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- DELETE /admin/employees/{id} ------------------------------------------

func TestRemoveEmployee_200(t *testing.T) {
	id := uuid.New()
	h := newHTTPHandler(&mockDirectory{
		remove: func(_ context.Context, got uuid.UUID) error {
			assert.Equal(t, id, got)
			return nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/admin/employees/"+id.String(), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Employee removed successfully.", body["message"])
}

func TestRemoveEmployee_Unknown_404(t *testing.T) {
	h := newHTTPHandler(&mockDirectory{
		remove: func(_ context.Context, _ uuid.UUID) error {
			return domain.ErrNotFound
		},
	}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/admin/employees/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "not_found", errObj["code"])
}

func TestRemoveEmployee_BadID_422(t *testing.T) {
	h := newHTTPHandler(&mockDirectory{}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/admin/employees/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
