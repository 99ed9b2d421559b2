package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/SuDelk/ClientLine-Backend/pkg/httputil"
	"github.com/SuDelk/ClientLine-Backend/pkg/users"
)

// UserHandlers handles user-related HTTP requests
type UserHandlers struct {
	userService users.Service
}

// NewUserHandlers creates a new UserHandlers
func NewUserHandlers(userService users.Service) *UserHandlers {
	return &UserHandlers{
		userService: userService,
	}
}

// RegisterRoutes registers user routes
func (h *UserHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/users", h.CreateUser).Methods("POST")
	router.HandleFunc("/users", h.ListUsers).Methods("GET")
	router.HandleFunc("/users/{id}", h.GetUser).Methods("GET")
	router.HandleFunc("/users/{id}", h.UpdateUser).Methods("PUT")
	router.HandleFunc("/users/{id}", h.DeleteUser).Methods("DELETE")
}

// CreateUser creates a new user. The password arrives in plaintext over the
// request body and is hashed by the service; it never appears in responses.
func (h *UserHandlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req users.CreateUserRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	user, err := h.userService.Create(r.Context(), &req)
	if err != nil {
		httputil.WriteClassifiedError(w, err)
		return
	}

	httputil.WriteCreated(w, user)
}

// ListUsers returns a page of users. Offset defaults to 0 and limit to 100.
func (h *UserHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
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

	list, err := h.userService.List(r.Context(), offset, limit)
	if err != nil {
		httputil.WriteClassifiedError(w, err)
		return
	}

	httputil.WriteSuccess(w, list)
}

// GetUser retrieves a user by ID
func (h *UserHandlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		httputil.WriteClassifiedError(w, err)
		return
	}

	httputil.WriteSuccess(w, user)
}

// UpdateUser applies a partial update to a user
func (h *UserHandlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}

	var req users.UpdateUserRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	user, err := h.userService.Update(r.Context(), id, &req)
	if err != nil {
		httputil.WriteClassifiedError(w, err)
		return
	}

	httputil.WriteSuccess(w, user)
}

// DeleteUser deletes a user by ID
func (h *UserHandlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		httputil.WriteClassifiedError(w, err)
		return
	}

	httputil.WriteSuccess(w, map[string]string{"status": "deleted"})
}
