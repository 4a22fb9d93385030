package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Auth errors (AUTH-001 to AUTH-099)
	ErrCodeAuthCredentials    ErrorCode = "AUTH-001"
	ErrCodeAuthAccessDenied   ErrorCode = "AUTH-002"
	ErrCodeAuthSessionExpired ErrorCode = "AUTH-003"
	ErrCodeAuthNotLoggedIn    ErrorCode = "AUTH-004"
	ErrCodeAuthTokenInvalid   ErrorCode = "AUTH-005"

	// API errors (API-001 to API-099)
	ErrCodeAPITransport   ErrorCode = "API-001"
	ErrCodeAPIDecode      ErrorCode = "API-002"
	ErrCodeAPIStatus      ErrorCode = "API-003"
	ErrCodeAPIBadRequest  ErrorCode = "API-004"
	ErrCodeAPINotFound    ErrorCode = "API-005"

	// Session store errors (STORE-001 to STORE-099)
	ErrCodeStoreNotFound    ErrorCode = "STORE-001"
	ErrCodeStoreReadFailed  ErrorCode = "STORE-002"
	ErrCodeStoreWriteFailed ErrorCode = "STORE-003"
	ErrCodeStoreCorrupt     ErrorCode = "STORE-004"

	// Config errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigNotFound  ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid   ErrorCode = "CONFIG-002"
	ErrCodeConfigUnmarshal ErrorCode = "CONFIG-003"

	// Wallet errors (WALLET-001 to WALLET-099)
	ErrCodeWalletAmountInvalid ErrorCode = "WALLET-001"
	ErrCodeWalletBelowMinimum  ErrorCode = "WALLET-002"
	ErrCodeWalletAboveMaximum  ErrorCode = "WALLET-003"
	ErrCodeWalletInsufficient  ErrorCode = "WALLET-004"
)

// KhelError represents an enhanced error with code, suggestions, and documentation
type KhelError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *KhelError) Error() string {
	var b strings.Builder

	// Error code and message
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	// Add cause if present
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	// Add suggestions
	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	// Add documentation link
	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *KhelError) Unwrap() error {
	return e.Cause
}

// New creates a new KhelError
func New(code ErrorCode, message string) *KhelError {
	return &KhelError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new KhelError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *KhelError {
	return &KhelError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *KhelError) WithSuggestion(suggestion string) *KhelError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *KhelError) WithSuggestions(suggestions ...string) *KhelError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *KhelError) WithDocs(url string) *KhelError {
	e.DocsURL = url
	return e
}

// CodeOf returns the error code of err if it is a KhelError, or "" otherwise.
func CodeOf(err error) ErrorCode {
	if ke, ok := err.(*KhelError); ok {
		return ke.Code
	}
	return ""
}

// ServerMessage returns the server-supplied message carried by err, or the
// fallback when err carries none. Session operations use this to normalize
// every failure into a {success, message} result.
func ServerMessage(err error, fallback string) string {
	if ke, ok := err.(*KhelError); ok && ke.Message != "" {
		switch ke.Code {
		case ErrCodeAPIStatus, ErrCodeAuthCredentials, ErrCodeAuthAccessDenied, ErrCodeAuthSessionExpired:
			return ke.Message
		}
	}
	return fallback
}

// Common error constructors for frequently used errors

// NewNotLoggedInError creates a missing-session error
func NewNotLoggedInError() *KhelError {
	return New(ErrCodeAuthNotLoggedIn, "you are not logged in").
		WithSuggestion("Run 'khel login' to authenticate")
}

// NewAccessDeniedError creates an admin authorization error
func NewAccessDeniedError() *KhelError {
	return New(ErrCodeAuthAccessDenied, "Access denied. Admin privileges required.").
		WithSuggestion("Log in with an administrator account")
}

// NewSessionExpiredError creates a 401 session-expiry error
func NewSessionExpiredError() *KhelError {
	return New(ErrCodeAuthSessionExpired, "your session has expired").
		WithSuggestion("Run 'khel login' to re-authenticate")
}

// NewTransportError creates a network failure error
func NewTransportError(cause error) *KhelError {
	return Wrap(ErrCodeAPITransport, "could not reach the Khel server", cause).
		WithSuggestion("Check your network connection").
		WithSuggestion("Verify the server address with 'khel config show'")
}
