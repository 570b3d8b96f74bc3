package domain

import "errors"

// Business rule violations. Each failure surfaces with its specific kind;
// nothing is collapsed into a generic error before the HTTP boundary.
var (
	ErrDuplicateAccount = errors.New("account with this phone and email already exists")
	ErrBadParameter     = errors.New("missing or invalid parameter")
	ErrForbiddenAccess  = errors.New("forbidden access")
	ErrNotFound         = errors.New("user not found")
	ErrInvalidCode      = errors.New("invalid activation code")
	ErrInternal         = errors.New("internal error")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)
