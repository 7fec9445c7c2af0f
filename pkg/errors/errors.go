// Package errors provides custom error types for the rollup system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the rollup system
var (
	// ErrInvalidName indicates that a provider name could not be normalized
	ErrInvalidName = errors.New("invalid provider name")

	// ErrInvalidDuration indicates that a duration string could not be parsed
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrEncoding indicates that source bytes could not be decoded as text
	ErrEncoding = errors.New("undecodable encoding")

	// ErrEmptySource indicates that a source contained no usable records
	ErrEmptySource = errors.New("empty source")

	// ErrMissingColumn indicates that a required column is absent from a source
	ErrMissingColumn = errors.New("missing column")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// InvalidNameError represents a provider name that has no normalizable content
type InvalidNameError struct {
	Name   string
	Reason string
}

// Error implements the error interface
func (e *InvalidNameError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("invalid provider name %q: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("invalid provider name: %s", e.Reason)
}

// Is implements errors.Is support
func (e *InvalidNameError) Is(target error) bool {
	return target == ErrInvalidName || target == ErrInvalidInput
}

// NewInvalidNameError creates a new InvalidNameError
func NewInvalidNameError(name, reason string) *InvalidNameError {
	return &InvalidNameError{Name: name, Reason: reason}
}

// InvalidDurationError represents a duration value that matched no accepted form
type InvalidDurationError struct {
	Text   string
	Reason string
}

// Error implements the error interface
func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("invalid duration %q: %s", e.Text, e.Reason)
}

// Is implements errors.Is support
func (e *InvalidDurationError) Is(target error) bool {
	return target == ErrInvalidDuration || target == ErrInvalidInput
}

// NewInvalidDurationError creates a new InvalidDurationError
func NewInvalidDurationError(text, reason string) *InvalidDurationError {
	return &InvalidDurationError{Text: text, Reason: reason}
}

// EncodingError represents source bytes that no supported decoding made usable
type EncodingError struct {
	Source string
	Tried  []string
}

// Error implements the error interface
func (e *EncodingError) Error() string {
	if len(e.Tried) > 0 {
		return fmt.Sprintf("cannot decode %s: tried %s", e.Source, strings.Join(e.Tried, ", "))
	}
	return fmt.Sprintf("cannot decode %s", e.Source)
}

// Is implements errors.Is support
func (e *EncodingError) Is(target error) bool {
	return target == ErrEncoding
}

// NewEncodingError creates a new EncodingError
func NewEncodingError(source string, tried ...string) *EncodingError {
	return &EncodingError{Source: source, Tried: tried}
}

// EmptySourceError represents a source file that yielded no usable records,
// either because it had no data rows or because every row was skipped
type EmptySourceError struct {
	Source  string
	Rows    int
	Skipped int
}

// Error implements the error interface
func (e *EmptySourceError) Error() string {
	if e.Skipped > 0 {
		return fmt.Sprintf("%s contains no usable records (%d rows, %d skipped)", e.Source, e.Rows, e.Skipped)
	}
	return fmt.Sprintf("%s contains no records", e.Source)
}

// Is implements errors.Is support
func (e *EmptySourceError) Is(target error) bool {
	return target == ErrEmptySource
}

// NewEmptySourceError creates a new EmptySourceError
func NewEmptySourceError(source string, rows, skipped int) *EmptySourceError {
	return &EmptySourceError{Source: source, Rows: rows, Skipped: skipped}
}

// MissingColumnError represents a required column absent from a source header
type MissingColumnError struct {
	Source string
	Column string
}

// Error implements the error interface
func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s is missing required column %q", e.Source, e.Column)
}

// Is implements errors.Is support
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// NewMissingColumnError creates a new MissingColumnError
func NewMissingColumnError(source, column string) *MissingColumnError {
	return &MissingColumnError{Source: source, Column: column}
}

// SourceError wraps a failure with the source file it came from, so a report
// covering four uploads can say which one failed
type SourceError struct {
	Source string
	Err    error
}

// Error implements the error interface
func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a new SourceError
func NewSourceError(source string, err error) *SourceError {
	return &SourceError{Source: source, Err: err}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "csv", "html", "yaml", etc.
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
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

// Helper functions for error checking

// IsInvalidName checks if an error is a provider name error
func IsInvalidName(err error) bool {
	return errors.Is(err, ErrInvalidName)
}

// IsInvalidDuration checks if an error is a duration parse error
func IsInvalidDuration(err error) bool {
	return errors.Is(err, ErrInvalidDuration)
}

// IsEncoding checks if an error is an encoding detection error
func IsEncoding(err error) bool {
	return errors.Is(err, ErrEncoding)
}

// IsEmptySource checks if an error indicates a source with no usable records
func IsEmptySource(err error) bool {
	return errors.Is(err, ErrEmptySource)
}

// IsMissingColumn checks if an error indicates a missing required column
func IsMissingColumn(err error) bool {
	return errors.Is(err, ErrMissingColumn)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled) || errors.Is(err, context.Canceled)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapSource wraps an error with the source file it belongs to
func WrapSource(source string, err error) error {
	if err == nil {
		return nil
	}
	return NewSourceError(source, err)
}
