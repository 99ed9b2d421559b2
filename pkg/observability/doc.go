// Package observability provides structured logging, prometheus metrics, and
// health probes for the ClientLine backend.
package observability
