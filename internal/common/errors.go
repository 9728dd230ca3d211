// Package common defines shared sentinel errors used across pourlog
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound   = errors.New("record not found")
	ErrValidation = errors.New("validation failed")

	// Image pipeline errors.
	ErrDerivation = errors.New("photo derivation failed")

	// Sync bridge errors.
	ErrUpload       = errors.New("photo upload failed")
	ErrPrecondition = errors.New("unsynced photos exist")
	ErrAuthRequired = errors.New("authentication required")
)
