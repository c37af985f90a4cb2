package main

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/conorfennell/cardstore/internal/domain"
)

// Exit codes
const (
	ExitSuccess    = 0 // Success
	ExitError      = 1 // General error (invalid arguments, storage failure)
	ExitInputError = 2 // Invalid, reserved or duplicate names and cards; bad import destination
	ExitNotFound   = 3 // Collection, sub-collection or card does not exist
	ExitIOError    = 4 // File or database could not be read or written
)

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is returned by commands with nothing else to report.
type StatusResponse struct {
	Status string `json:"status"`
	ID     int64  `json:"id,omitempty"`
	Path   string `json:"path,omitempty"`
	Commit string `json:"commit,omitempty"`
}

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, domain.ErrIO):
		return ExitIOError
	case errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrReservedName),
		errors.Is(err, domain.ErrDuplicateCard),
		errors.Is(err, domain.ErrDuplicateName),
		errors.Is(err, domain.ErrInvalidDestination):
		return ExitInputError
	}
	return ExitError
}
