// Package client talks to the sensorhub HTTP API.
//
// # Overview
//
// The package provides a transport-agnostic API contract (see the Client
// interface) and a concrete JSON-over-HTTP implementation (see HTTPClient)
// that attaches the bearer token to protected calls and maps HTTP statuses to
// sentinel errors.
//
// # Error Handling
//
//   - ErrUnavailable: the server could not be reached.
//   - ErrUnauthorized: bad credentials or a missing/expired token (401).
//   - common.ErrorConflict: username already taken (409).
//   - common.ErrorNotFound: no readings for the sensor (404).
//   - common.ValidationErrors: field problems reported by the server (400).
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation.
package client
