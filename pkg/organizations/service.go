package organizations

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/SuDelk/ClientLine-Backend/pkg/apperrors"
	"github.com/SuDelk/ClientLine-Backend/pkg/observability"
	"github.com/SuDelk/ClientLine-Backend/pkg/validation"
)

const entity = "organization"

// PostgresService implements the Service interface using PostgreSQL
type PostgresService struct {
	db      *sql.DB
	logger  *observability.Logger
	metrics *observability.Metrics
}

// NewPostgresService creates a new PostgresService. metrics may be nil.
func NewPostgresService(db *sql.DB, logger *observability.Logger, metrics *observability.Metrics) *PostgresService {
	return &PostgresService{db: db, logger: logger, metrics: metrics}
}

// fail classifies err, logs it with operation context, records the error
// metric, and returns the classified error.
func (s *PostgresService) fail(op string, id int64, err error) error {
	cerr := apperrors.Classify(op, entity, id, err)
	s.logger.WithOperation(op, entity, id).WithError(err).Error(cerr.Error())
	if s.metrics != nil {
		s.metrics.RecordEntityOperation(entity, op, string(cerr.Kind))
	}
	return cerr
}

func (s *PostgresService) recordSuccess(op string) {
	if s.metrics != nil {
		s.metrics.RecordEntityOperation(entity, op, "")
	}
}

// Create persists a new organization. The email pre-check is advisory; the
// unique index decides races and the resulting constraint violation is
// classified as a duplicate email.
func (s *PostgresService) Create(ctx context.Context, req *CreateOrganizationRequest) (*Organization, error) {
	const op = "organizations.create"

	if err := req.Validate(); err != nil {
		return nil, s.fail(op, 0, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, s.fail(op, 0, err)
	}
	defer tx.Rollback()

	taken, err := validation.EmailTaken(ctx, tx, "organizations", req.Email, 0)
	if err != nil {
		return nil, s.fail(op, 0, err)
	}
	if taken {
		return nil, s.fail(op, 0, apperrors.New(apperrors.KindDuplicateEmail, op, "email already registered"))
	}

	org := &Organization{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO organizations (name, email, phone, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at
	`, req.Name, req.Email, req.Phone, req.Address).
		Scan(&org.ID, &org.IsActive, &org.CreatedAt)
	if err != nil {
		return nil, s.fail(op, 0, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, s.fail(op, 0, err)
	}

	s.recordSuccess(op)
	return org, nil
}

// Get retrieves an organization by ID
func (s *PostgresService) Get(ctx context.Context, id int64) (*Organization, error) {
	const op = "organizations.get"

	org := &Organization{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone, address, is_active, created_at
		FROM organizations
		WHERE id = $1
	`, id).Scan(&org.ID, &org.Name, &org.Email, &org.Phone, &org.Address, &org.IsActive, &org.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, s.fail(op, id, apperrors.Newf(apperrors.KindNotFound, op, "organization %d not found", id))
	}
	if err != nil {
		return nil, s.fail(op, id, err)
	}

	s.recordSuccess(op)
	return org, nil
}

// List returns organizations ordered by id for stable pagination.
func (s *PostgresService) List(ctx context.Context, offset, limit int) ([]*Organization, error) {
	const op = "organizations.list"

	if err := validation.PageBounds(offset, limit); err != nil {
		return nil, s.fail(op, 0, apperrors.New(apperrors.KindInvalidParameters, op, err.Error()))
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, phone, address, is_active, created_at
		FROM organizations
		ORDER BY id
		OFFSET $1 LIMIT $2
	`, offset, limit)
	if err != nil {
		return nil, s.fail(op, 0, err)
	}
	defer rows.Close()

	orgs := make([]*Organization, 0)
	for rows.Next() {
		org := &Organization{}
		if err := rows.Scan(&org.ID, &org.Name, &org.Email, &org.Phone, &org.Address, &org.IsActive, &org.CreatedAt); err != nil {
			return nil, s.fail(op, 0, err)
		}
		orgs = append(orgs, org)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(op, 0, err)
	}

	s.recordSuccess(op)
	return orgs, nil
}

// Update applies only the fields present in the request and returns the
// updated record. Changing the email re-runs the uniqueness pre-check.
func (s *PostgresService) Update(ctx context.Context, id int64, req *UpdateOrganizationRequest) (*Organization, error) {
	const op = "organizations.update"

	if err := req.Validate(); err != nil {
		return nil, s.fail(op, id, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, s.fail(op, id, err)
	}
	defer tx.Rollback()

	var currentEmail string
	err = tx.QueryRowContext(ctx, "SELECT email FROM organizations WHERE id = $1", id).Scan(&currentEmail)
	if err == sql.ErrNoRows {
		return nil, s.fail(op, id, apperrors.Newf(apperrors.KindNotFound, op, "organization %d not found", id))
	}
	if err != nil {
		return nil, s.fail(op, id, err)
	}

	if req.Email != nil && *req.Email != currentEmail {
		taken, err := validation.EmailTaken(ctx, tx, "organizations", *req.Email, id)
		if err != nil {
			return nil, s.fail(op, id, err)
		}
		if taken {
			return nil, s.fail(op, id, apperrors.New(apperrors.KindDuplicateEmail, op, "email already registered"))
		}
	}

	setClauses := []string{}
	args := []interface{}{}
	argPos := 1
	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}
	if req.Name != nil {
		addSet("name", *req.Name)
	}
	if req.Email != nil {
		addSet("email", *req.Email)
	}
	if req.Phone != nil {
		addSet("phone", *req.Phone)
	}
	if req.Address != nil {
		addSet("address", *req.Address)
	}
	if req.IsActive != nil {
		addSet("is_active", *req.IsActive)
	}

	org := &Organization{}
	if len(setClauses) == 0 {
		// Nothing to change; return the record as-is.
		err = tx.QueryRowContext(ctx, `
			SELECT id, name, email, phone, address, is_active, created_at
			FROM organizations
			WHERE id = $1
		`, id).Scan(&org.ID, &org.Name, &org.Email, &org.Phone, &org.Address, &org.IsActive, &org.CreatedAt)
	} else {
		args = append(args, id)
		query := fmt.Sprintf(`
			UPDATE organizations SET %s
			WHERE id = $%d
			RETURNING id, name, email, phone, address, is_active, created_at
		`, strings.Join(setClauses, ", "), argPos)
		err = tx.QueryRowContext(ctx, query, args...).
			Scan(&org.ID, &org.Name, &org.Email, &org.Phone, &org.Address, &org.IsActive, &org.CreatedAt)
	}
	if err != nil {
		return nil, s.fail(op, id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, s.fail(op, id, err)
	}

	s.recordSuccess(op)
	return org, nil
}

// Delete removes an organization. An organization still referenced by users
// is not deleted; the foreign-key violation surfaces as a dependency error.
func (s *PostgresService) Delete(ctx context.Context, id int64) error {
	const op = "organizations.delete"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.fail(op, id, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, "DELETE FROM organizations WHERE id = $1", id)
	if err != nil {
		// pq reports both missing-reference and dependent-rows failures as a
		// foreign-key violation; on a delete it can only mean dependents.
		if apperrors.Classify(op, entity, id, err).Kind == apperrors.KindInvalidReference {
			return s.fail(op, id, apperrors.New(apperrors.KindHasDependents, op, "organization has dependent users"))
		}
		return s.fail(op, id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return s.fail(op, id, err)
	}
	if rowsAffected == 0 {
		return s.fail(op, id, apperrors.Newf(apperrors.KindNotFound, op, "organization %d not found", id))
	}

	if err := tx.Commit(); err != nil {
		return s.fail(op, id, err)
	}

	s.recordSuccess(op)
	return nil
}
