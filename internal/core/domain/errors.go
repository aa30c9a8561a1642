package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent curation failures.
// Typed errors below wrap them so callers can match with errors.Is.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration indicates a bad or missing input path, or a
	// malformed filter configuration document.
	ErrConfiguration = errors.New("configuration error")

	// ErrSchemaValidation indicates a record is missing a mandatory field.
	ErrSchemaValidation = errors.New("schema validation failed")

	// ErrReferentialIntegrity indicates a chant refers to a source that
	// is not present in the loaded sources.
	ErrReferentialIntegrity = errors.New("referential integrity violated")

	// ErrInvalidField indicates a filter was configured with a field name
	// outside the recognised chant and source fields.
	ErrInvalidField = errors.New("invalid field")

	// ErrPermission indicates a mutation was attempted on a locked entity
	// or on a collection of a non-editable corpus.
	ErrPermission = errors.New("permission denied")
)

// SchemaValidationError reports the first missing mandatory field of a record.
// Row is the line number in the input file, the header being line 1.
type SchemaValidationError struct {
	Kind  EntityKind
	Row   int
	Field string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("missing mandatory field %q in %s row %d", e.Field, e.Kind, e.Row)
}

// Is reports whether target is ErrSchemaValidation.
func (e *SchemaValidationError) Is(target error) bool {
	return target == ErrSchemaValidation
}

// ReferentialIntegrityError reports a chant source reference with no matching source.
type ReferentialIntegrityError struct {
	SrcLink string
	Siglum  string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("source '%s : %s' from chants does not have a record in provided sources", e.SrcLink, e.Siglum)
}

// Is reports whether target is ErrReferentialIntegrity.
func (e *ReferentialIntegrityError) Is(target error) bool {
	return target == ErrReferentialIntegrity
}

// InvalidFieldError reports a field name that is neither a chant nor a source field.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("field %q is not a valid chant or source field", e.Field)
}

// Is reports whether target is ErrInvalidField.
func (e *InvalidFieldError) Is(target error) bool {
	return target == ErrInvalidField
}

// lockedError builds the error returned when a locked entity is modified.
func lockedError(what, field string) error {
	return fmt.Errorf("%w: cannot modify %q because the %s is locked", ErrPermission, field, what)
}
