package providers

import "errors"

var (
	// ErrAuthTokenIsRequired is returned if you are trying to use a
	// provider which requires some token to work.
	ErrAuthTokenIsRequired = errors.New("auth token is required")
)
