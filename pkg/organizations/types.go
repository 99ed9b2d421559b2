package organizations

import (
	"context"
	"time"

	"github.com/SuDelk/ClientLine-Backend/pkg/apperrors"
	"github.com/SuDelk/ClientLine-Backend/pkg/validation"
)

// Organization is the public representation of an organization record.
type Organization struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateOrganizationRequest is the input for creating an organization.
type CreateOrganizationRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// Validate checks required fields, first violation wins.
func (r *CreateOrganizationRequest) Validate() error {
	if r.Name == "" {
		return apperrors.New(apperrors.KindInvalidData, "organizations.create", "name is required")
	}
	if !validation.ValidEmail(r.Email) {
		return apperrors.New(apperrors.KindInvalidFormat, "organizations.create", "invalid email address")
	}
	return nil
}

// UpdateOrganizationRequest is the partial-update input; nil fields are left
// untouched.
type UpdateOrganizationRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Validate checks supplied fields only.
func (r *UpdateOrganizationRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return apperrors.New(apperrors.KindInvalidData, "organizations.update", "name must not be empty")
	}
	if r.Email != nil && !validation.ValidEmail(*r.Email) {
		return apperrors.New(apperrors.KindInvalidFormat, "organizations.update", "invalid email address")
	}
	return nil
}

// Service is the organization entity service.
type Service interface {
	Create(ctx context.Context, req *CreateOrganizationRequest) (*Organization, error)
	Get(ctx context.Context, id int64) (*Organization, error)
	List(ctx context.Context, offset, limit int) ([]*Organization, error)
	Update(ctx context.Context, id int64, req *UpdateOrganizationRequest) (*Organization, error)
	Delete(ctx context.Context, id int64) error
}
