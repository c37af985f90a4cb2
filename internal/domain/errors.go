package domain

import "errors"

// Error kinds surfaced to callers. Messages are shown to users verbatim, so
// they are written as sentences rather than as driver diagnostics.
var (
	ErrInvalidName        = errors.New("name cannot be empty")
	ErrReservedName       = errors.New("that name is reserved for internal use")
	ErrDuplicateCard      = errors.New("a card with this question and answer already exists in this sub-collection")
	ErrDuplicateName      = errors.New("that name is already in use")
	ErrNotFound           = errors.New("not found")
	ErrInvalidDestination = errors.New("specify an existing collection or a new collection name")
	ErrIO                 = errors.New("i/o failure")
)
