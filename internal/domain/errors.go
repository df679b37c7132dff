package domain

import "fmt"

// ValidationError marks caller-supplied input that fails required-field or
// structural checks. Always recoverable by correcting the input; mapped to
// 400 at the transport layer.
type ValidationError struct {
	Msg string // Human-readable reason
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError marks a referenced record that does not exist; mapped to 404.
type NotFoundError struct {
	Resource string // "entry", "user"
	Key      string // Identifier that missed
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// AuthenticationError marks a credential mismatch at login; mapped to 401.
type AuthenticationError struct {
	Msg string
}

func (e *AuthenticationError) Error() string { return e.Msg }

// StoreError wraps an unexpected persistence failure. The caller must not
// assume the write succeeded. Mapped to 500 with minimal detail; the full
// cause goes to the server log only.
type StoreError struct {
	Op  string // Store operation that failed
	Err error  // Underlying driver error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store %s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }
