package fix

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEngineUnavailable means the selected engine has no credentials
	// configured or its circuit breaker is open.
	ErrEngineUnavailable = errors.New("engine unavailable")

	// ErrTransport covers network and timeout failures on the engine call.
	ErrTransport = errors.New("engine transport error")

	// ErrAuth is a provider-reported authentication failure.
	ErrAuth = errors.New("engine authentication error")

	// ErrQuota is a provider-reported quota or rate-limit failure.
	ErrQuota = errors.New("engine quota exceeded")

	// ErrNoFixAvailable means both strategies were exhausted. It is the only
	// error surfaced to callers; every other kind is absorbed as a fallback.
	ErrNoFixAvailable = errors.New("no fix available")

	// ErrEmptySnippet rejects an empty or whitespace-only snippet before any
	// strategy runs.
	ErrEmptySnippet = errors.New("snippet is empty")
)

// ValidationError carries the accumulated rejection reasons of a verdict.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("candidate rejected: %s", strings.Join(e.Reasons, "; "))
}
