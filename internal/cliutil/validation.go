// Package cliutil holds small CLI-facing helpers shared by the cobra
// commands in cmd/bpmn2dcr. It is adapted from the teacher's
// internal/cli.ValidationChain; the command-dispatch machinery that
// surrounded it (Command, Manager, SubcommandHandler) is gone now that
// cobra owns dispatch.
package cliutil

import (
	"fmt"

	"github.com/mattbarlow-sg/bpmn2dcr/internal/errors"
	"github.com/mattbarlow-sg/bpmn2dcr/internal/validation"
)

// ValidationChain provides a fluent interface for chaining argument validations.
type ValidationChain struct {
	err error
}

// NewValidationChain creates a new validation chain.
func NewValidationChain() *ValidationChain {
	return &ValidationChain{}
}

// ValidateFilePath validates a file path.
func (v *ValidationChain) ValidateFilePath(path string, fieldName string) *ValidationChain {
	if v.err != nil {
		return v
	}

	if err := validation.ValidateFilePath(path); err != nil {
		v.err = errors.NewValidationError(fmt.Sprintf("invalid %s", fieldName), err)
	}
	return v
}

// ValidateFileExtension validates a file's extension.
func (v *ValidationChain) ValidateFileExtension(path string, extensions []string, fieldName string) *ValidationChain {
	if v.err != nil {
		return v
	}

	if err := validation.ValidateFileExtension(path, extensions); err != nil {
		v.err = errors.NewValidationError(fmt.Sprintf("invalid %s", fieldName), err)
	}
	return v
}

// ValidateRequired validates that a value is not empty.
func (v *ValidationChain) ValidateRequired(value string, fieldName string) *ValidationChain {
	if v.err != nil {
		return v
	}

	if value == "" {
		v.err = errors.NewValidationError(fmt.Sprintf("%s is required", fieldName), nil)
	}
	return v
}

// Error returns the first error encountered in the chain, if any.
func (v *ValidationChain) Error() error {
	return v.err
}

// Valid reports whether no errors were encountered.
func (v *ValidationChain) Valid() bool {
	return v.err == nil
}
