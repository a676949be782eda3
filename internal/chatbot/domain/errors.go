package domain

import "errors"

var (
	// ErrUpstream marks a failed call to the completion provider.
	ErrUpstream = errors.New("upstream completion failed")
	// ErrEmptyQuery rejects blank chat input.
	ErrEmptyQuery = errors.New("query must not be empty")
)
