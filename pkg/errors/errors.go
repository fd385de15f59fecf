// Package errors provides custom error types for siesta.
// They let commands decide between aborting with guidance, recovering
// locally, or treating a condition as a no-op, and let tests match on
// a condition with errors.Is / errors.As instead of message text.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is, As, Join and Unwrap are re-exported so callers only need one errors import.
var (
	Is     = errors.Is
	As     = errors.As
	Join   = errors.Join
	Unwrap = errors.Unwrap
)

// Common sentinel errors.
var (
	// ErrNotFound indicates that a requested resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrCredentialMissing indicates that remote access needs a credential that is not configured.
	ErrCredentialMissing = errors.New("credential missing")

	// ErrDestinationMissing indicates that a destination file or directory must exist but does not.
	ErrDestinationMissing = errors.New("destination missing")

	// ErrInvalidInput indicates that provided input was invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAPIKeyInvalid indicates that the remote rejected the credential.
	ErrAPIKeyInvalid = errors.New("API key invalid")

	// ErrRateLimited indicates that the API rate limit has been exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrProviderUnavailable indicates that the remote is temporarily unavailable.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrCanceled indicates that an operation was canceled.
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundKind tells which part of a remote lookup was missing.
type NotFoundKind string

// Not-found kinds.
const (
	KindUnknown NotFoundKind = ""
	KindBranch  NotFoundKind = "branch"
	KindPath    NotFoundKind = "path"
)

// NotFoundError represents an error when a resource is not found.
type NotFoundError struct {
	Resource string
	ID       string
	// Kind distinguishes a missing branch from a missing path inside an existing branch.
	Kind NotFoundKind
	// Ref is the branch or tag the lookup was made against, if any.
	Ref string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	switch e.Kind {
	case KindBranch:
		return fmt.Sprintf("branch not found: %s", e.ID)
	case KindPath:
		return fmt.Sprintf("could not find %s contents: %s on branch %s", e.Resource, e.ID, e.Ref)
	}
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// CredentialError reports a credential that is required but not configured.
type CredentialError struct {
	Name string
	// Hint tells the user how to provide the credential.
	Hint string
	// Err is why lookup came back empty, when a provider failed.
	Err error
}

// Error implements the error interface.
func (e *CredentialError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s not found. %s", e.Name, e.Hint)
	}
	return fmt.Sprintf("%s not found", e.Name)
}

// Is implements errors.Is support.
func (e *CredentialError) Is(target error) bool {
	return target == ErrCredentialMissing
}

// Unwrap implements errors.Unwrap.
func (e *CredentialError) Unwrap() error {
	return e.Err
}

// NewCredentialError creates a new CredentialError.
func NewCredentialError(name, hint string, err error) *CredentialError {
	return &CredentialError{Name: name, Hint: hint, Err: err}
}

// DestinationError reports a destination path that must exist before an operation.
type DestinationError struct {
	What string // "folder", "file"
	Path string
}

// Error implements the error interface.
func (e *DestinationError) Error() string {
	what := e.What
	if what == "" {
		what = "path"
	}
	return fmt.Sprintf("destination %s not found: %s", what, e.Path)
}

// Is implements errors.Is support.
func (e *DestinationError) Is(target error) bool {
	return target == ErrDestinationMissing
}

// NewDestinationError creates a new DestinationError.
func NewDestinationError(what, path string) *DestinationError {
	return &DestinationError{What: what, Path: path}
}

// APIError represents an error from the remote repository API.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Provider, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *APIError) Is(target error) bool {
	switch {
	case e.StatusCode == 401:
		return target == ErrAPIKeyInvalid
	case e.StatusCode == 429:
		return target == ErrRateLimited
	case e.StatusCode >= 500:
		return target == ErrProviderUnavailable
	}
	return false
}

// NewAPIError creates a new APIError.
func NewAPIError(provider string, statusCode int, message string) *APIError {
	return &APIError{
		Provider:   provider,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats.
type ParseError struct {
	Format  string // "json", "yaml", "toml", etc.
	File    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewParseError creates a new ParseError.
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations.
type IOError struct {
	Operation string // "read", "write", "create", "delete", "copy", "backup"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError.
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations.
type ResourceError struct {
	Operation string // "create", "fetch", "load", "merge"
	Resource  string // "boilerplate", "conf.py", "pre-commit config"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError.
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// AuthenticationError represents a failure to obtain or apply a credential.
type AuthenticationError struct {
	Provider string
	Method   string // "token", "keyring", "env"
	Message  string
	Err      error
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("authentication error for %s (%s): %s", e.Provider, e.Method, e.Message)
	}
	return fmt.Sprintf("authentication error (%s): %s", e.Method, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// NewAuthenticationError creates a new AuthenticationError.
func NewAuthenticationError(provider, method, message string, err error) *AuthenticationError {
	return &AuthenticationError{
		Provider: provider,
		Method:   method,
		Message:  message,
		Err:      err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsCredentialMissing checks if an error is a missing credential error.
func IsCredentialMissing(err error) bool {
	return errors.Is(err, ErrCredentialMissing)
}

// IsDestinationMissing checks if an error is a missing destination error.
func IsDestinationMissing(err error) bool {
	return errors.Is(err, ErrDestinationMissing)
}

// IsRateLimited checks if an error is a rate limit error.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsCanceled checks if an error is a cancellation error.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// NotFoundKindOf returns the kind of the first NotFoundError in err's chain.
func NotFoundKindOf(err error) NotFoundKind {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Kind
	}
	return KindUnknown
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps an error as a ResourceError.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapAPI wraps an error as an APIError.
func WrapAPI(provider string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{
		Provider:   provider,
		StatusCode: statusCode,
		Message:    err.Error(),
		Err:        err,
	}
}
