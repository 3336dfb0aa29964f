// Package errors holds the typed errors returned across fiwdb.
//
// Every type answers errors.Is for one of the sentinels below, so callers
// branch on the category (missing input, bad argument, cancellation) and
// read the concrete type only when they need the offending file, family or
// row.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Aliases of the standard library so callers import a single errors package.
var (
	New = errors.New
	Is  = errors.Is
	As  = errors.As
)

// Sentinels matched with errors.Is.
var (
	// ErrNotFound: a family, file, lookup row or stored object does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists: a create-only write hit an existing object.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput: a caller broke a precondition (InvalidArgument).
	ErrInvalidInput = errors.New("invalid input")

	// ErrCanceled: the run was interrupted.
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundError names the missing resource.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " " + e.ID + " not found"
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFoundError reports that resource id does not exist.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError is a precondition violation on caller-supplied input,
// e.g. unequal coordinate lists or a missing fold column.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid argument: " + e.Message
	}
	return "invalid argument " + e.Field + ": " + e.Message
}

// Is matches ErrInvalidInput.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError reports that value is not acceptable for field.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError is a failed request to a photo host. StatusCode is zero when no
// response arrived.
type APIError struct {
	URL        string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("GET %s: %s", e.URL, e.Message)
	}
	return fmt.Sprintf("GET %s: status %d: %s", e.URL, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Is treats a 404 as ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// NewAPIError records a non-2xx response.
func NewAPIError(url string, statusCode int, message string) *APIError {
	return &APIError{URL: url, StatusCode: statusCode, Message: message}
}

// ConfigError is a bad or unreadable setting.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Component == "" {
		return "config: " + e.Message
	}
	return "config " + e.Component + ": " + e.Message
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError reports a problem with one configuration component.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError points at a malformed cell or record of a delimited file.
// Line is the 1-based line in the file, header included; zero when unknown.
type ParseError struct {
	Format  string
	File    string
	Line    int
	Column  string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	where := e.Format
	if e.File != "" {
		where += " " + e.File
		if e.Line > 0 {
			where += fmt.Sprintf(":%d", e.Line)
		}
	}
	if e.Column != "" {
		where += " column " + e.Column
	}
	return where + ": " + e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError reports a malformed file without a known position.
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError is a failed filesystem operation on Path.
type IOError struct {
	Operation string
	Path      string
	Err       error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return e.Operation + ": " + errText(e.Err)
	}
	return e.Operation + " " + e.Path + ": " + errText(e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NewIOError records a failed operation on path.
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// ResourceError adds the dataset object being worked on (a family, a lookup
// table, a fold directory) to an underlying error.
type ResourceError struct {
	Operation string
	Resource  string
	ID        string
	Err       error
}

func (e *ResourceError) Error() string {
	subject := e.Resource
	if e.ID != "" {
		subject += " " + e.ID
	}
	return "failed to " + e.Operation + " " + subject + ": " + errText(e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// NewResourceError records that operation on resource id failed with err.
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Err: err}
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsAlreadyExists reports whether err is or wraps ErrAlreadyExists.
func IsAlreadyExists(err error) bool { return errors.Is(err, ErrAlreadyExists) }

// IsValidationError reports whether err is or wraps ErrInvalidInput.
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsCanceled reports whether err is or wraps ErrCanceled.
func IsCanceled(err error) bool { return errors.Is(err, ErrCanceled) }

// The Wrap helpers return nil for a nil err so they can wrap a call's
// result directly.

// WrapValidation turns err into a ValidationError on field.
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO turns err into an IOError.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource turns err into a ResourceError.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse turns err into a ParseError on file.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
