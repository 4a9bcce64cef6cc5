// Package derrors provides the error taxonomy of the input core.
// Every error carries a stable code for programmatic handling.
package derrors

import (
	"fmt"
	"strings"
)

// CodedError is implemented by all promptline errors
type CodedError interface {
	error
	// Code returns a unique error code
	Code() string
}

type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// ConfigurationError reports an unreadable or invalid configuration file
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{code: "CONFIG_ERROR", message: message, cause: cause},
		Path:      path,
	}
}

// DuplicateCompleterError reports a second registration under the same name
type DuplicateCompleterError struct {
	baseError
	Name string
}

// NewDuplicateCompleterError creates a duplicate registration error
func NewDuplicateCompleterError(name string) *DuplicateCompleterError {
	return &DuplicateCompleterError{
		baseError: baseError{
			code:    "DUPLICATE_COMPLETER",
			message: fmt.Sprintf("completer %q is already registered", name),
		},
		Name: name,
	}
}

// CompleterError wraps a failure of a single completer. The manager logs it
// and drops that completer's contribution.
type CompleterError struct {
	baseError
	Completer string
}

// NewCompleterError creates a completer error
func NewCompleterError(completer string, cause error) *CompleterError {
	return &CompleterError{
		baseError: baseError{code: "COMPLETER_ERROR", message: "completer " + completer + " failed", cause: cause},
		Completer: completer,
	}
}

// OracleError wraps a failed command lookup. It is logged, never returned to the UI.
type OracleError struct {
	baseError
	Command string
}

// NewOracleError creates an oracle error
func NewOracleError(command string, cause error) *OracleError {
	return &OracleError{
		baseError: baseError{code: "ORACLE_ERROR", message: "lookup of " + command + " failed", cause: cause},
		Command:   command,
	}
}

// UnknownCommandError reports a slash command that is not registered
type UnknownCommandError struct {
	baseError
	Name        string
	Suggestions []string
}

// NewUnknownCommandError creates an unknown command error with optional suggestions
func NewUnknownCommandError(name string, suggestions []string) *UnknownCommandError {
	msg := fmt.Sprintf("unknown command /%s", name)
	if len(suggestions) > 0 {
		msg += " (did you mean /" + strings.Join(suggestions, ", /") + "?)"
	}
	return &UnknownCommandError{
		baseError:   baseError{code: "UNKNOWN_COMMAND", message: msg},
		Name:        name,
		Suggestions: suggestions,
	}
}

// ValidationError reports a configuration value that fails validation
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a validation error
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{code: "VALIDATION_ERROR", message: message, cause: cause},
		Field:     field,
	}
}
