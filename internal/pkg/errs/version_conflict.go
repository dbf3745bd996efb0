package errs

import "fmt"

// VersionConflictError reports a compare-and-swap update that matched no row because
// another writer bumped the version first.
type VersionConflictError struct {
	Entity  string
	ID      any
	Version int64
}

// NewVersionConflictError reports that entity id moved past version.
func NewVersionConflictError(entity string, id any, version int64) *VersionConflictError {
	return &VersionConflictError{Entity: entity, ID: id, Version: version}
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s is no longer at version %d", ErrVersionConflict, e.Entity, sanitize(e.ID), e.Version)
}

// Unwrap returns ErrVersionConflict.
func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}
