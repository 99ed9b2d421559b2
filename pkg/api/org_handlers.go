package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/SuDelk/ClientLine-Backend/pkg/httputil"
	"github.com/SuDelk/ClientLine-Backend/pkg/organizations"
)

// OrgHandlers handles organization-related HTTP requests
type OrgHandlers struct {
	orgService organizations.Service
}

// NewOrgHandlers creates a new OrgHandlers
func NewOrgHandlers(orgService organizations.Service) *OrgHandlers {
	return &OrgHandlers{
		orgService: orgService,
	}
}

// RegisterRoutes registers organization routes
func (h *OrgHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/organizations", h.CreateOrganization).Methods("POST")
	router.HandleFunc("/organizations", h.ListOrganizations).Methods("GET")
	router.HandleFunc("/organizations/{id}", h.GetOrganization).Methods("GET")
	router.HandleFunc("/organizations/{id}", h.UpdateOrganization).Methods("PUT")
	router.HandleFunc("/organizations/{id}", h.DeleteOrganization).Methods("DELETE")
}

// CreateOrganization creates a new organization
func (h *OrgHandlers) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req organizations.CreateOrganizationRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	org, err := h.orgService.Create(r.Context(), &req)
	if err != nil {
		httputil.WriteClassifiedError(w, err)
		return
	}

	httputil.WriteCreated(w, org)
}

// ListOrganizations returns a page of organizations. Offset defaults to 0 and
// limit to 100; bounds are enforced by the service.
func (h *OrgHandlers) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	offset, err := httputil.ParseQueryInt(r, "offset", 0)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	limit, err := httputil.ParseQueryInt(r, "limit", 100)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	orgs, err := h.orgService.List(r.Context(), offset, limit)
	if err != nil {
		httputil.WriteClassifiedError(w, err)
		return
	}

	httputil.WriteSuccess(w, orgs)
}

// GetOrganization retrieves an organization by ID
func (h *OrgHandlers) GetOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}

	org, err := h.orgService.Get(r.Context(), id)
	if err != nil {
		httputil.WriteClassifiedError(w, err)
		return
	}

	httputil.WriteSuccess(w, org)
}

// UpdateOrganization applies a partial update to an organization
func (h *OrgHandlers) UpdateOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}

	var req organizations.UpdateOrganizationRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	org, err := h.orgService.Update(r.Context(), id, &req)
	if err != nil {
		httputil.WriteClassifiedError(w, err)
		return
	}

	httputil.WriteSuccess(w, org)
}

// DeleteOrganization deletes an organization. Organizations with dependent
// users are refused with a conflict.
func (h *OrgHandlers) DeleteOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}

	if err := h.orgService.Delete(r.Context(), id); err != nil {
		httputil.WriteClassifiedError(w, err)
		return
	}

	httputil.WriteSuccess(w, map[string]string{"status": "deleted"})
}
