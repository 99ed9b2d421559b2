// Package apperrors defines the fixed error taxonomy surfaced by the entity
// services and the classifier that maps store-level failures onto it.
package apperrors
