// Package users implements the user entity service, including the
// organization-reference pre-check, write-only password handling, and role
// classification defaults.
package users
