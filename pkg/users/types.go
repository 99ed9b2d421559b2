package users

import (
	"context"
	"time"

	"github.com/SuDelk/ClientLine-Backend/pkg/apperrors"
	"github.com/SuDelk/ClientLine-Backend/pkg/validation"
)

// RoleType is the coarse role classification of a user.
type RoleType string

const (
	RoleSuperAdmin      RoleType = "super-admin"
	RoleAdmin           RoleType = "admin"
	RoleBusinessOwner   RoleType = "business-owner"
	RoleBusinessManager RoleType = "business-manager"
	RoleStaff           RoleType = "staff"
	RoleClient          RoleType = "client"
)

// Valid reports whether r is one of the known role types.
func (r RoleType) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleBusinessOwner, RoleBusinessManager, RoleStaff, RoleClient:
		return true
	}
	return false
}

// User is the public representation of a user record. The credential hash is
// persisted but never serialized.
type User struct {
	ID             int64     `json:"id"`
	OrganizationID *int64    `json:"organization_id,omitempty"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Phone          *string   `json:"phone,omitempty"`
	RoleType       RoleType  `json:"role_type"`
	Role           *string   `json:"role,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateUserRequest is the input for creating a user. Password is accepted in
// plaintext, hashed immediately, and never echoed back.
type CreateUserRequest struct {
	OrganizationID *int64   `json:"organization_id,omitempty"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Password       string   `json:"password"`
	Phone          *string  `json:"phone,omitempty"`
	RoleType       RoleType `json:"role_type,omitempty"`
	Role           *string  `json:"role,omitempty"`
}

// Validate checks required fields, first violation wins. An empty role type
// is allowed and defaults to staff.
func (r *CreateUserRequest) Validate() error {
	if r.Name == "" {
		return apperrors.New(apperrors.KindInvalidData, "users.create", "name is required")
	}
	if !validation.ValidEmail(r.Email) {
		return apperrors.New(apperrors.KindInvalidFormat, "users.create", "invalid email address")
	}
	if r.Password == "" {
		return apperrors.New(apperrors.KindInvalidData, "users.create", "password is required")
	}
	if r.RoleType != "" && !r.RoleType.Valid() {
		return apperrors.Newf(apperrors.KindInvalidData, "users.create", "unknown role type %q", r.RoleType)
	}
	return nil
}

// UpdateUserRequest is the partial-update input; nil fields are left
// untouched. A supplied password is re-hashed and replaces the stored hash.
type UpdateUserRequest struct {
	OrganizationID *int64    `json:"organization_id,omitempty"`
	Name           *string   `json:"name,omitempty"`
	Email          *string   `json:"email,omitempty"`
	Password       *string   `json:"password,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	RoleType       *RoleType `json:"role_type,omitempty"`
	Role           *string   `json:"role,omitempty"`
	IsActive       *bool     `json:"is_active,omitempty"`
}

// Validate checks supplied fields only.
func (r *UpdateUserRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return apperrors.New(apperrors.KindInvalidData, "users.update", "name must not be empty")
	}
	if r.Email != nil && !validation.ValidEmail(*r.Email) {
		return apperrors.New(apperrors.KindInvalidFormat, "users.update", "invalid email address")
	}
	if r.Password != nil && *r.Password == "" {
		return apperrors.New(apperrors.KindInvalidData, "users.update", "password must not be empty")
	}
	if r.RoleType != nil && !r.RoleType.Valid() {
		return apperrors.Newf(apperrors.KindInvalidData, "users.update", "unknown role type %q", *r.RoleType)
	}
	return nil
}

// Service is the user entity service.
type Service interface {
	Create(ctx context.Context, req *CreateUserRequest) (*User, error)
	Get(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context, offset, limit int) ([]*User, error)
	Update(ctx context.Context, id int64, req *UpdateUserRequest) (*User, error)
	Delete(ctx context.Context, id int64) error
}
