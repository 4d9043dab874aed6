package session

import "errors"

var (
	// ErrUnknownLanguage is returned for language codes outside the catalog.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrInvalidLevel is returned for levels outside the supported range.
	ErrInvalidLevel = errors.New("invalid level")
)
