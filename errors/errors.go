// Package errors defines all exported error sentinels for the dawgdex library.
//
// This is the single source of truth for error values. The top-level
// dawgdex package imports from here, so errors.Is checks work across
// package boundaries.
package errors

import "errors"

// Load errors
var (
	ErrTruncatedFile       = errors.New("dawgdex: file is truncated")
	ErrCorruptedDictionary = errors.New("dawgdex: dictionary data is corrupted")
	ErrCorruptedGuide      = errors.New("dawgdex: guide data is corrupted")
	ErrTrailingData        = errors.New("dawgdex: unexpected trailing bytes after structure")
)

// Configuration errors
var (
	ErrGuideMismatch = errors.New("dawgdex: guide size does not match dictionary size")
	ErrNegativeCost  = errors.New("dawgdex: edit cost must be non-negative")
	ErrBadCostKey    = errors.New("dawgdex: cost key has wrong length for operation")
)
