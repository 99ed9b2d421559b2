// Package api implements the HTTP API server: the router, the entity
// handlers for organizations and users, and the middleware chain. Handlers
// translate HTTP requests into service calls and classified errors into
// status codes; all business rules live in the services.
package api
