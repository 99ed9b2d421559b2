// Package httputil provides JSON request/response helpers, classified-error
// status mapping, and HTTP middleware shared by the API handlers.
package httputil
