// Package organizations implements the organization entity service:
// create/read/list/update/delete with advisory pre-checks, per-operation
// transaction scope, and classified errors.
package organizations
