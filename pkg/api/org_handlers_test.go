package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SuDelk/ClientLine-Backend/pkg/apperrors"
	"github.com/SuDelk/ClientLine-Backend/pkg/organizations"
)

// mockOrgService is a mock implementation of organizations.Service for testing
type mockOrgService struct {
	createFunc func(ctx context.Context, req *organizations.CreateOrganizationRequest) (*organizations.Organization, error)
	getFunc    func(ctx context.Context, id int64) (*organizations.Organization, error)
	listFunc   func(ctx context.Context, offset, limit int) ([]*organizations.Organization, error)
	updateFunc func(ctx context.Context, id int64, req *organizations.UpdateOrganizationRequest) (*organizations.Organization, error)
	deleteFunc func(ctx context.Context, id int64) error
}

func (m *mockOrgService) Create(ctx context.Context, req *organizations.CreateOrganizationRequest) (*organizations.Organization, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &organizations.Organization{ID: 1, Name: req.Name, Email: req.Email}, nil
}

func (m *mockOrgService) Get(ctx context.Context, id int64) (*organizations.Organization, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &organizations.Organization{ID: id}, nil
}

func (m *mockOrgService) List(ctx context.Context, offset, limit int) ([]*organizations.Organization, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, offset, limit)
	}
	return []*organizations.Organization{}, nil
}

func (m *mockOrgService) Update(ctx context.Context, id int64, req *organizations.UpdateOrganizationRequest) (*organizations.Organization, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, req)
	}
	return &organizations.Organization{ID: id}, nil
}

func (m *mockOrgService) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func newOrgRouter(service organizations.Service) *mux.Router {
	router := mux.NewRouter()
	NewOrgHandlers(service).RegisterRoutes(router)
	return router
}

func TestCreateOrganization_Success(t *testing.T) {
	service := &mockOrgService{
		createFunc: func(ctx context.Context, req *organizations.CreateOrganizationRequest) (*organizations.Organization, error) {
			return &organizations.Organization{
				ID:        1,
				Name:      req.Name,
				Email:     req.Email,
				IsActive:  true,
				CreatedAt: time.Now(),
			}, nil
		},
	}
	router := newOrgRouter(service)

	body, _ := json.Marshal(map[string]string{"name": "Acme", "email": "acme@example.com"})
	req := httptest.NewRequest("POST", "/organizations", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var org organizations.Organization
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&org))
	assert.Equal(t, int64(1), org.ID)
	assert.Equal(t, "Acme", org.Name)
	assert.True(t, org.IsActive)
}

func TestCreateOrganization_DuplicateEmail(t *testing.T) {
	service := &mockOrgService{
		createFunc: func(ctx context.Context, req *organizations.CreateOrganizationRequest) (*organizations.Organization, error) {
			return nil, apperrors.New(apperrors.KindDuplicateEmail, "organizations.create", "email already registered")
		},
	}
	router := newOrgRouter(service)

	body, _ := json.Marshal(map[string]string{"name": "Acme", "email": "acme@example.com"})
	req := httptest.NewRequest("POST", "/organizations", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already registered")
}

func TestCreateOrganization_MalformedBody(t *testing.T) {
	router := newOrgRouter(&mockOrgService{})

	req := httptest.NewRequest("POST", "/organizations", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrganization_Success(t *testing.T) {
	service := &mockOrgService{
		getFunc: func(ctx context.Context, id int64) (*organizations.Organization, error) {
			return &organizations.Organization{ID: id, Name: "Acme", Email: "acme@example.com"}, nil
		},
	}
	router := newOrgRouter(service)

	req := httptest.NewRequest("GET", "/organizations/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var org organizations.Organization
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&org))
	assert.Equal(t, int64(7), org.ID)
}

func TestGetOrganization_NotFound(t *testing.T) {
	service := &mockOrgService{
		getFunc: func(ctx context.Context, id int64) (*organizations.Organization, error) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "organizations.get", "organization %d not found", id)
		},
	}
	router := newOrgRouter(service)

	req := httptest.NewRequest("GET", "/organizations/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrganization_InvalidID(t *testing.T) {
	router := newOrgRouter(&mockOrgService{})

	req := httptest.NewRequest("GET", "/organizations/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListOrganizations_DefaultsAndOverrides(t *testing.T) {
	var gotOffset, gotLimit int
	service := &mockOrgService{
		listFunc: func(ctx context.Context, offset, limit int) ([]*organizations.Organization, error) {
			gotOffset, gotLimit = offset, limit
			return []*organizations.Organization{{ID: 1}}, nil
		},
	}
	router := newOrgRouter(service)

	req := httptest.NewRequest("GET", "/organizations", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, gotOffset)
	assert.Equal(t, 100, gotLimit)

	req = httptest.NewRequest("GET", "/organizations?offset=20&limit=5", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 20, gotOffset)
	assert.Equal(t, 5, gotLimit)
}

func TestListOrganizations_BadPagination(t *testing.T) {
	service := &mockOrgService{
		listFunc: func(ctx context.Context, offset, limit int) ([]*organizations.Organization, error) {
			return nil, apperrors.New(apperrors.KindInvalidParameters, "organizations.list", "limit must be between 1 and 1000")
		},
	}
	router := newOrgRouter(service)

	req := httptest.NewRequest("GET", "/organizations?limit=5000", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrganization_Success(t *testing.T) {
	service := &mockOrgService{
		updateFunc: func(ctx context.Context, id int64, req *organizations.UpdateOrganizationRequest) (*organizations.Organization, error) {
			return &organizations.Organization{ID: id, Name: *req.Name}, nil
		},
	}
	router := newOrgRouter(service)

	body, _ := json.Marshal(map[string]string{"name": "Renamed"})
	req := httptest.NewRequest("PUT", "/organizations/3", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var org organizations.Organization
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&org))
	assert.Equal(t, "Renamed", org.Name)
}

func TestDeleteOrganization_Success(t *testing.T) {
	router := newOrgRouter(&mockOrgService{})

	req := httptest.NewRequest("DELETE", "/organizations/3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "deleted")
}

func TestDeleteOrganization_HasDependents(t *testing.T) {
	service := &mockOrgService{
		deleteFunc: func(ctx context.Context, id int64) error {
			return apperrors.New(apperrors.KindHasDependents, "organizations.delete", "organization has dependent users")
		},
	}
	router := newOrgRouter(service)

	req := httptest.NewRequest("DELETE", "/organizations/3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "dependent users")
}

func TestDeleteOrganization_StoreUnavailable(t *testing.T) {
	service := &mockOrgService{
		deleteFunc: func(ctx context.Context, id int64) error {
			return apperrors.New(apperrors.KindStoreUnavailable, "organizations.delete", "store unavailable")
		},
	}
	router := newOrgRouter(service)

	req := httptest.NewRequest("DELETE", "/organizations/3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestInternalErrorDetailHidden(t *testing.T) {
	service := &mockOrgService{
		getFunc: func(ctx context.Context, id int64) (*organizations.Organization, error) {
			return nil, apperrors.New(apperrors.KindInternal, "organizations.get", `pq: relation "organizations" does not exist`)
		},
	}
	router := newOrgRouter(service)

	req := httptest.NewRequest("GET", "/organizations/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
	assert.NotContains(t, rec.Body.String(), "pq:")
}
