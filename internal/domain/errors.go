package domain

import "errors"

var (
	// ErrFoodNotFound is returned when the nutrition provider has no match
	// for a food name.
	ErrFoodNotFound = errors.New("food not found in nutrition database")

	// ErrProviderFailure is returned when the nutrition provider request
	// itself fails (network, non-2xx status).
	ErrProviderFailure = errors.New("nutrition provider request failed")

	// ErrWrongFileType is returned when an uploaded file's header belongs to
	// a different dataset than a meal-plan import.
	ErrWrongFileType = errors.New("wrong file type")

	// ErrEmptyFile is returned when a file parses but contains no data rows.
	ErrEmptyFile = errors.New("file contains no data rows")

	// ErrUnreadableFile is returned when neither delimiter attempt produced
	// parseable rows.
	ErrUnreadableFile = errors.New("file could not be parsed as CSV")

	// ErrInvalidRequest is returned when request parameters are invalid.
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when a profile is not found in the lookup cache.
	ErrCacheMiss = errors.New("cache miss")
)
