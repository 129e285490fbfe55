package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrMissingColumn    = errors.New("missing required column")
	ErrMissingArtifact  = errors.New("artifact missing")
	ErrInsufficientData = errors.New("insufficient label diversity")
	ErrEmptyVocabulary  = errors.New("empty vocabulary after filtering")
)
