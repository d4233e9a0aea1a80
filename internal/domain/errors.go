package domain

import "errors"

// Sentinel errors for the domain layer.
var (
	ErrNotFound       = errors.New("domain: not found")
	ErrAccessDenied   = errors.New("domain: access denied")
	ErrInvalidChannel = errors.New("domain: invalid channel")
)
