package errors

import (
	"fmt"
	"strings"
)

// ValidationError is returned before any write happens when input is out of contract.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Is enables errors.Is() comparison against any *ValidationError
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// RowProcessingError describes a single import row that was skipped.
type RowProcessingError struct {
	Line  int
	Label string
	Err   error
}

func (e *RowProcessingError) Error() string {
	return fmt.Sprintf("row %d (%s): %v", e.Line, e.Label, e.Err)
}

func (e *RowProcessingError) Unwrap() error {
	return e.Err
}

// Drift is one person whose cached assigned hours disagree with their assignments.
type Drift struct {
	PersonID int64
	Cached   int
	Actual   int
}

// ConsistencyError reports cached workload values that no longer match the source rows.
type ConsistencyError struct {
	Drifts []Drift
}

func (e *ConsistencyError) Error() string {
	parts := make([]string, 0, len(e.Drifts))
	for _, d := range e.Drifts {
		parts = append(parts, fmt.Sprintf("person %d cached %d actual %d", d.PersonID, d.Cached, d.Actual))
	}
	return fmt.Sprintf("assigned hours out of sync for %d person(s): %s", len(e.Drifts), strings.Join(parts, "; "))
}

// Is enables errors.Is() comparison against any *ConsistencyError
func (e *ConsistencyError) Is(target error) bool {
	_, ok := target.(*ConsistencyError)
	return ok
}

// ReferentialIntegrityError is raised when a row is deleted while others still point at it.
type ReferentialIntegrityError struct {
	Entity     string
	ID         int64
	References int
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s %d is still referenced by %d assignment(s)", e.Entity, e.ID, e.References)
}

// Is enables errors.Is() comparison against any *ReferentialIntegrityError
func (e *ReferentialIntegrityError) Is(target error) bool {
	_, ok := target.(*ReferentialIntegrityError)
	return ok
}

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return t.Entity == "" || e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return t.Entity == "" || e.Entity == t.Entity
}
