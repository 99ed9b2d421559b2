// Package validation holds the advisory pre-checks run before entity
// mutations: email format and uniqueness, organization existence, and
// pagination bounds. Pre-checks reduce round-trips but do not replace the
// store's own constraints; concurrent requests can both pass a pre-check and
// the store's unique/foreign-key indexes remain authoritative.
package validation

import (
	"context"
	"database/sql"
	"fmt"
	"net/mail"
	"strings"
)

// Pagination limits for list operations.
const (
	MinLimit = 1
	MaxLimit = 1000
)

// Querier is satisfied by both *sql.DB and *sql.Tx, so pre-checks can run
// inside the transaction that performs the mutation.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// ValidEmail reports whether the address parses as a bare RFC 5322 address.
func ValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// Reject display-name forms like "Bob <b@x.com>"; only the bare address
	// is stored.
	return addr.Address == email && strings.Contains(email, "@")
}

// EmailTaken reports whether another record in table already holds the email.
// excludeID skips the record being updated; pass 0 on create. The match is
// case-sensitive, exactly as stored.
func EmailTaken(ctx context.Context, q Querier, table, email string, excludeID int64) (bool, error) {
	var query string
	switch table {
	case "organizations":
		query = "SELECT id FROM organizations WHERE email = $1 AND id <> $2 LIMIT 1"
	case "users":
		query = "SELECT id FROM users WHERE email = $1 AND id <> $2 LIMIT 1"
	default:
		return false, fmt.Errorf("unknown table %q", table)
	}

	var id int64
	err := q.QueryRowContext(ctx, query, email, excludeID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	return true, nil
}

// OrganizationExists reports whether an organization with the given id exists.
func OrganizationExists(ctx context.Context, q Querier, id int64) (bool, error) {
	var found int64
	err := q.QueryRowContext(ctx, "SELECT id FROM organizations WHERE id = $1", id).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check organization existence: %w", err)
	}
	return true, nil
}

// PageBounds validates list pagination parameters.
func PageBounds(offset, limit int) error {
	if offset < 0 {
		return fmt.Errorf("offset must not be negative, got %d", offset)
	}
	if limit < MinLimit || limit > MaxLimit {
		return fmt.Errorf("limit must be between %d and %d, got %d", MinLimit, MaxLimit, limit)
	}
	return nil
}
