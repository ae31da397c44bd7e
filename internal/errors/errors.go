// internal/errors/errors.go
package errors

import "fmt"

// The ingestion pipeline fails with exactly one of the types below. Each
// carries a short user-facing message via UserMessage() and the full causal
// detail via Error(); types wrapping another error implement Unwrap() so
// callers can keep using errors.Is/errors.As on the chain.

// ErrInvalidURLFormat is returned when the submitted string is not a
// syntactically valid URL.
type ErrInvalidURLFormat struct {
	URL   string
	Cause error
}

func (e *ErrInvalidURLFormat) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid repository URL %q: %v", e.URL, e.Cause)
	}
	return fmt.Sprintf("invalid repository URL %q", e.URL)
}

func (e *ErrInvalidURLFormat) Unwrap() error { return e.Cause }

// UserMessage returns the short display message for this failure.
func (e *ErrInvalidURLFormat) UserMessage() string {
	return "Please enter a valid URL"
}

// ErrUnsupportedHost is returned when the URL points at a host other than
// the supported hosting domain.
type ErrUnsupportedHost struct {
	Host string
}

func (e *ErrUnsupportedHost) Error() string {
	return fmt.Sprintf("unsupported repository host %q, expected %q", e.Host, "github.com")
}

// UserMessage returns the short display message for this failure.
func (e *ErrUnsupportedHost) UserMessage() string {
	return "Only github.com repositories are supported"
}

// ErrIncompleteRepositoryPath is returned when the URL path does not contain
// both an owner and a repository name.
type ErrIncompleteRepositoryPath struct {
	Path string
}

func (e *ErrIncompleteRepositoryPath) Error() string {
	return fmt.Sprintf("incomplete repository path %q, expected '/owner/name'", e.Path)
}

// UserMessage returns the short display message for this failure.
func (e *ErrIncompleteRepositoryPath) UserMessage() string {
	return "URL must include both the owner and the repository name"
}

// ErrProviderHTTP is returned when the metrics provider answers with a
// non-success status.
type ErrProviderHTTP struct {
	StatusCode int
}

func (e *ErrProviderHTTP) Error() string {
	return fmt.Sprintf("provider responded with status %d", e.StatusCode)
}

// UserMessage returns the short display message for this failure.
func (e *ErrProviderHTTP) UserMessage() string {
	if e.StatusCode == 404 {
		return "Repository not found on GitHub"
	}
	return "GitHub returned an error for this repository"
}

// ErrProviderUnreachable is returned when the request to the metrics
// provider fails at the transport level (DNS, connection reset, timeout).
type ErrProviderUnreachable struct {
	Cause error
}

func (e *ErrProviderUnreachable) Error() string {
	return fmt.Sprintf("provider unreachable: %v", e.Cause)
}

func (e *ErrProviderUnreachable) Unwrap() error { return e.Cause }

// UserMessage returns the short display message for this failure.
func (e *ErrProviderUnreachable) UserMessage() string {
	return "Could not reach GitHub, please try again"
}

// ErrStore is returned when the persistence store fails during an insert,
// select or delete.
type ErrStore struct {
	Op    string // "insert", "select", "delete"
	Cause error
}

func (e *ErrStore) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Cause)
}

func (e *ErrStore) Unwrap() error { return e.Cause }

// UserMessage returns the short display message for this failure.
func (e *ErrStore) UserMessage() string {
	return "Saving or loading repositories failed"
}
