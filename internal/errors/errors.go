// Package errors defines domain-level errors used throughout the application.
// These errors represent failures of a tool call, of payload extraction, or of
// configuration handling, and are matched with errors.Is at the CLI boundary.
//
// NOTE: Important for developers
// When adding a new error here, you MUST consider how it should be reported
// when surfaced from the `call` and `health` commands. Unmatched errors are
// printed verbatim with a non-zero exit code.
package errors

import (
	"errors"
)

var (
	// ErrUnavailable indicates that the endpoint's health check failed and no
	// tool call was attempted. The health status is cached, so this can be
	// returned without any network activity.
	ErrUnavailable = errors.New("endpoint not healthy")

	// ErrCallFailed indicates that every allowed attempt of a tool call
	// failed. The wrapped detail carries the last observed status code or
	// transport error so the failure can be diagnosed without re-running.
	ErrCallFailed = errors.New("tool call failed")

	// ErrTimeout indicates that the terminal cause of a failed tool call was
	// a timeout rather than an HTTP error status. A timeout-terminated call
	// matches both ErrCallFailed and ErrTimeout.
	ErrTimeout = errors.New("tool call timed out")

	// ErrMalformedResponse indicates that the transport succeeded (2xx) but
	// the body was not valid JSON where JSON was expected. This is surfaced
	// at extraction time, never at call time, and is never retried.
	ErrMalformedResponse = errors.New("malformed response payload")

	// ErrToolForbidden indicates that the requested tool is not in the
	// endpoint's allowed tools list. No network call is made.
	ErrToolForbidden = errors.New("tool not allowed")

	// ErrInvalidArguments indicates that the tool arguments failed validation
	// against the tool's configured input schema. No network call is made.
	ErrInvalidArguments = errors.New("invalid tool arguments")

	// ErrEndpointNotFound indicates that the named endpoint does not exist in
	// the configuration or in the client manager.
	ErrEndpointNotFound = errors.New("endpoint not found")

	// ErrConfigLoadFailed indicates that the configuration file could not be
	// read, decoded, or validated.
	ErrConfigLoadFailed = errors.New("failed to load config")
)
