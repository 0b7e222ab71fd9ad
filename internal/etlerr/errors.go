//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package etlerr defines the pipeline's error taxonomy. Every stage fails
// fast with one of these types; there is no automatic retry and no partial
// recovery. Recovery is a full-refresh re-run.
package etlerr

import "fmt"

// NotFoundError indicates the source file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("source file not found: %s", e.Path)
}

// SchemaError indicates a structural mismatch: required source columns are
// missing, or column-name normalization produced a collision.
type SchemaError struct {
	Missing    []string // required columns absent from the source
	Collisions []string // normalized names claimed by more than one column
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing required columns: %v", e.Missing)
	}
	return fmt.Sprintf("column name collisions after normalization: %v", e.Collisions)
}

// TypeError indicates a value could not be coerced to its target type.
type TypeError struct {
	Row    int // 1-based data row number
	Column string
	Value  string
	Err    error
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("row %d: cannot coerce %s value %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *TypeError) Unwrap() error { return e.Err }

// ValidationError indicates one or more rows violated a hard data-quality
// rule. The run is aborted; nothing is loaded.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("data validation failed: %v", e.Violations)
}

// IntegrityError indicates a natural-key uniqueness violation during
// dimension load.
type IntegrityError struct {
	Dimension string
	Key       string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: duplicate natural key %q", e.Dimension, e.Key)
}

// ReferenceError indicates a dimension lookup missed during fact load.
// This points at a dimension-load bug, not a data problem.
type ReferenceError struct {
	Dimension string
	Key       string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("fact load: no %s row for natural key %q", e.Dimension, e.Key)
}

// VerificationError indicates the post-load row counts did not reconcile
// with the staged row count.
type VerificationError struct {
	Staged int
	Fact   int
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("row count mismatch after load: staged %d, fact %d", e.Staged, e.Fact)
}
