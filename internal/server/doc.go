// Package server exposes the plugin tools over HTTP for the workflow host:
// one endpoint per tool plus liveness and readiness probes. Every request
// gets a request ID that flows through the logger, and panics are converted
// to JSON 500 responses.
package server
