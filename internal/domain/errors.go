package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

var (
	ErrMissingKeywords  = errors.New("at least one keyword is required")
	ErrTooManyKeywords  = errors.New("too many keywords")
	ErrInvalidTimeframe = errors.New("invalid timeframe")
	ErrInvalidGeo       = errors.New("invalid geo code")
	ErrInvalidRes       = errors.New("invalid resolution")
	ErrInvalidYear      = errors.New("invalid year")
	ErrEmptyQuery       = errors.New("empty query")
)

var (
	ErrUnsupportedCountry = errors.New("unsupported country")
)

var (
	ErrMissingVideoID = errors.New("video id is required")
	ErrInvalidFormat  = errors.New("invalid transcript format")
)
