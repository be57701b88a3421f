// Package errors defines stable error codes for apicov failure modes.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ConfigInvalid indicates a required path argument is missing or empty
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// DeclFileMissing indicates a declaration file or directory was not found
	DeclFileMissing ErrorCode = "DECL_FILE_MISSING"
	// TypeNotFound indicates a mapped type name could not be resolved
	TypeNotFound ErrorCode = "TYPE_NOT_FOUND"
	// AnnotationInvalid indicates the annotation file could not be parsed
	AnnotationInvalid ErrorCode = "ANNOTATION_INVALID"
	// StoreUnavailable indicates the history database could not be opened
	StoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// Error represents an apicov error with code, message, and suggestions
type Error struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new Error
func New(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: SuggestedFixes(code),
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// actions maps error codes to suggested fix actions
var actions = map[ErrorCode][]FixAction{
	DeclFileMissing: {
		{
			Type:        RunCommand,
			Command:     "apicov compare --reference-types <dir> --polyfill-types <file>",
			Safe:        true,
			Description: "Point apicov at existing declaration files",
		},
	},
	AnnotationInvalid: {
		{
			Type:        OpenDocs,
			URL:         "https://github.com/apicov/apicov#annotations",
			Description: "Annotation files must be a JSON array of objects with a fullPath field",
		},
	},
	StoreUnavailable: {
		{
			Type:        RunCommand,
			Command:     "apicov compare --no-store",
			Safe:        true,
			Description: "Skip run-history persistence for this comparison",
		},
	},
}

// SuggestedFixes returns suggested fixes for an error code
func SuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := actions[code]; ok {
		return fixes
	}
	return nil
}
