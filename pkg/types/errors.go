package types

import "errors"

// Repository lifecycle errors.
var (
	ErrRepositoryClosed = errors.New("repository is closed")
	ErrAlreadyOpen      = errors.New("repository is already open")
)

// Validation errors surfaced synchronously before any write.
var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidData       = errors.New("invalid record data")
	ErrNameRequired      = errors.New("name must not be empty")
	ErrStoreNameRequired = errors.New("store name must not be empty")
	ErrContactRequired   = errors.New("contact channel must not be empty")
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrEmailTaken        = errors.New("email is already registered")
	ErrPasswordTooShort  = errors.New("password must be at least 4 characters")
	ErrBadCredentials    = errors.New("email or password does not match")
	ErrStoreCodeUnknown  = errors.New("no storefront matches that code")
	ErrEmptyOrder        = errors.New("order has no line items")
	ErrNotSignedIn       = errors.New("no account is signed in")
)
