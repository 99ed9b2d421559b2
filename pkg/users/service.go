package users

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/SuDelk/ClientLine-Backend/pkg/apperrors"
	"github.com/SuDelk/ClientLine-Backend/pkg/auth"
	"github.com/SuDelk/ClientLine-Backend/pkg/observability"
	"github.com/SuDelk/ClientLine-Backend/pkg/validation"
)

const entity = "user"

// PostgresService implements the Service interface using PostgreSQL
type PostgresService struct {
	db      *sql.DB
	hasher  auth.Hasher
	logger  *observability.Logger
	metrics *observability.Metrics
}

// NewPostgresService creates a new PostgresService. metrics may be nil.
func NewPostgresService(db *sql.DB, hasher auth.Hasher, logger *observability.Logger, metrics *observability.Metrics) *PostgresService {
	return &PostgresService{db: db, hasher: hasher, logger: logger, metrics: metrics}
}

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

// checkID rejects non-positive ids before any store interaction.
func checkID(op string, id int64) error {
	if id <= 0 {
		return apperrors.Newf(apperrors.KindInvalidParameters, op, "user id must be positive, got %d", id)
	}
	return nil
}

// Create persists a new user. The organization reference, when supplied, must
// resolve; the plaintext credential is hashed before it touches the store and
// the role type defaults to staff.
func (s *PostgresService) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	const op = "users.create"

	if err := req.Validate(); err != nil {
		return nil, s.fail(op, 0, err)
	}

	roleType := req.RoleType
	if roleType == "" {
		roleType = RoleStaff
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, s.fail(op, 0, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, s.fail(op, 0, err)
	}
	defer tx.Rollback()

	taken, err := validation.EmailTaken(ctx, tx, "users", req.Email, 0)
	if err != nil {
		return nil, s.fail(op, 0, err)
	}
	if taken {
		return nil, s.fail(op, 0, apperrors.New(apperrors.KindDuplicateEmail, op, "email already registered"))
	}

	if req.OrganizationID != nil {
		exists, err := validation.OrganizationExists(ctx, tx, *req.OrganizationID)
		if err != nil {
			return nil, s.fail(op, 0, err)
		}
		if !exists {
			return nil, s.fail(op, 0, apperrors.Newf(apperrors.KindInvalidReference, op, "organization %d does not exist", *req.OrganizationID))
		}
	}

	user := &User{
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   passwordHash,
		Phone:          req.Phone,
		RoleType:       roleType,
		Role:           req.Role,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (organization_id, name, email, password_hash, phone, role_type, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_active, created_at
	`, req.OrganizationID, req.Name, req.Email, passwordHash, req.Phone, roleType, req.Role).
		Scan(&user.ID, &user.IsActive, &user.CreatedAt)
	if err != nil {
		return nil, s.fail(op, 0, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, s.fail(op, 0, err)
	}

	s.recordSuccess(op)
	return user, nil
}

// Get retrieves a user by ID
func (s *PostgresService) Get(ctx context.Context, id int64) (*User, error) {
	const op = "users.get"

	if err := checkID(op, id); err != nil {
		return nil, s.fail(op, id, err)
	}

	user := &User{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, organization_id, name, email, password_hash, phone, role_type, role, is_active, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&user.ID, &user.OrganizationID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Phone, &user.RoleType, &user.Role, &user.IsActive, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, s.fail(op, id, apperrors.Newf(apperrors.KindNotFound, op, "user %d not found", id))
	}
	if err != nil {
		return nil, s.fail(op, id, err)
	}

	s.recordSuccess(op)
	return user, nil
}

// List returns users ordered by id for stable pagination.
func (s *PostgresService) List(ctx context.Context, offset, limit int) ([]*User, error) {
	const op = "users.list"

	if err := validation.PageBounds(offset, limit); err != nil {
		return nil, s.fail(op, 0, apperrors.New(apperrors.KindInvalidParameters, op, err.Error()))
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, organization_id, name, email, password_hash, phone, role_type, role, is_active, created_at
		FROM users
		ORDER BY id
		OFFSET $1 LIMIT $2
	`, offset, limit)
	if err != nil {
		return nil, s.fail(op, 0, err)
	}
	defer rows.Close()

	list := make([]*User, 0)
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(&user.ID, &user.OrganizationID, &user.Name, &user.Email, &user.PasswordHash,
			&user.Phone, &user.RoleType, &user.Role, &user.IsActive, &user.CreatedAt); err != nil {
			return nil, s.fail(op, 0, err)
		}
		list = append(list, user)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(op, 0, err)
	}

	s.recordSuccess(op)
	return list, nil
}

// Update applies only the fields present in the request and returns the
// updated record. A changed email re-runs the uniqueness pre-check, a new
// organization reference is re-validated, and a new password is re-hashed.
func (s *PostgresService) Update(ctx context.Context, id int64, req *UpdateUserRequest) (*User, error) {
	const op = "users.update"

	if err := checkID(op, id); err != nil {
		return nil, s.fail(op, id, err)
	}
	if err := req.Validate(); err != nil {
		return nil, s.fail(op, id, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, s.fail(op, id, err)
	}
	defer tx.Rollback()

	var currentEmail string
	err = tx.QueryRowContext(ctx, "SELECT email FROM users WHERE id = $1", id).Scan(&currentEmail)
	if err == sql.ErrNoRows {
		return nil, s.fail(op, id, apperrors.Newf(apperrors.KindNotFound, op, "user %d not found", id))
	}
	if err != nil {
		return nil, s.fail(op, id, err)
	}

	if req.Email != nil && *req.Email != currentEmail {
		taken, err := validation.EmailTaken(ctx, tx, "users", *req.Email, id)
		if err != nil {
			return nil, s.fail(op, id, err)
		}
		if taken {
			return nil, s.fail(op, id, apperrors.New(apperrors.KindDuplicateEmail, op, "email already registered"))
		}
	}

	if req.OrganizationID != nil {
		exists, err := validation.OrganizationExists(ctx, tx, *req.OrganizationID)
		if err != nil {
			return nil, s.fail(op, id, err)
		}
		if !exists {
			return nil, s.fail(op, id, apperrors.Newf(apperrors.KindInvalidReference, op, "organization %d does not exist", *req.OrganizationID))
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
	if req.OrganizationID != nil {
		addSet("organization_id", *req.OrganizationID)
	}
	if req.Name != nil {
		addSet("name", *req.Name)
	}
	if req.Email != nil {
		addSet("email", *req.Email)
	}
	if req.Password != nil {
		passwordHash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, s.fail(op, id, err)
		}
		addSet("password_hash", passwordHash)
	}
	if req.Phone != nil {
		addSet("phone", *req.Phone)
	}
	if req.RoleType != nil {
		addSet("role_type", *req.RoleType)
	}
	if req.Role != nil {
		addSet("role", *req.Role)
	}
	if req.IsActive != nil {
		addSet("is_active", *req.IsActive)
	}

	user := &User{}
	scanDest := func(u *User) []interface{} {
		return []interface{}{
			&u.ID, &u.OrganizationID, &u.Name, &u.Email, &u.PasswordHash,
			&u.Phone, &u.RoleType, &u.Role, &u.IsActive, &u.CreatedAt,
		}
	}
	if len(setClauses) == 0 {
		// Nothing to change; return the record as-is.
		err = tx.QueryRowContext(ctx, `
			SELECT id, organization_id, name, email, password_hash, phone, role_type, role, is_active, created_at
			FROM users
			WHERE id = $1
		`, id).Scan(scanDest(user)...)
	} else {
		args = append(args, id)
		query := fmt.Sprintf(`
			UPDATE users SET %s
			WHERE id = $%d
			RETURNING id, organization_id, name, email, password_hash, phone, role_type, role, is_active, created_at
		`, strings.Join(setClauses, ", "), argPos)
		err = tx.QueryRowContext(ctx, query, args...).Scan(scanDest(user)...)
	}
	if err != nil {
		return nil, s.fail(op, id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, s.fail(op, id, err)
	}

	s.recordSuccess(op)
	return user, nil
}

// Delete removes a user. Users are leaf records, so no dependency check is
// needed beyond existence.
func (s *PostgresService) Delete(ctx context.Context, id int64) error {
	const op = "users.delete"

	if err := checkID(op, id); err != nil {
		return s.fail(op, id, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.fail(op, id, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return s.fail(op, id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return s.fail(op, id, err)
	}
	if rowsAffected == 0 {
		return s.fail(op, id, apperrors.Newf(apperrors.KindNotFound, op, "user %d not found", id))
	}

	if err := tx.Commit(); err != nil {
		return s.fail(op, id, err)
	}

	s.recordSuccess(op)
	return nil
}
