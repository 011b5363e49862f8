/*
 * Copyright © 2025 Draftbase Software, All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a handle is absent from the entity
	// database, or a key is absent from a space registry.
	ErrNotFound = errors.New("not found")

	// ErrNotPresent is returned when a handle is not a member of an
	// entity space's own sequence. It is distinct from ErrNotFound so
	// callers can tell "not in this space" apart from "not in the
	// database".
	ErrNotPresent = errors.New("handle not present in space")

	// ErrStructure is returned on a document-level inconsistency, such
	// as a record missing a required subclass or an owner reference
	// that matches no known space.
	ErrStructure = errors.New("document structure error")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError represents an error when a handle or key is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotPresentError represents an error when a handle is not a member of
// an entity space
type NotPresentError struct {
	Handle string
}

func (e *NotPresentError) Error() string {
	return fmt.Sprintf("handle %q not present in entity space", e.Handle)
}

func (e *NotPresentError) Is(target error) bool {
	return target == ErrNotPresent
}

// StructureError represents a document-level structural inconsistency
type StructureError struct {
	Message string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("structure error: %s", e.Message)
}

func (e *StructureError) Is(target error) bool {
	return target == ErrStructure
}

// InvalidOwnerError represents an owner reference that matches neither
// expected destination space. It is a structural error.
type InvalidOwnerError struct {
	Handle string
	Owner  string
}

func (e *InvalidOwnerError) Error() string {
	return fmt.Sprintf("invalid owner %q on entity %q", e.Owner, e.Handle)
}

func (e *InvalidOwnerError) Is(target error) bool {
	return target == ErrStructure
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(kind, key string) error {
	return &NotFoundError{Type: kind, Key: key}
}

// NewNotPresentError creates a new NotPresentError
func NewNotPresentError(handle string) error {
	return &NotPresentError{Handle: handle}
}

// NewStructureError creates a new StructureError
func NewStructureError(message string) error {
	return &StructureError{Message: message}
}

// NewInvalidOwnerError creates a new InvalidOwnerError
func NewInvalidOwnerError(handle, owner string) error {
	return &InvalidOwnerError{Handle: handle, Owner: owner}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNotPresent checks if an error is a not present error
func IsNotPresent(err error) bool {
	return errors.Is(err, ErrNotPresent)
}

// IsStructure checks if an error is a structural error
func IsStructure(err error) bool {
	return errors.Is(err, ErrStructure)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
