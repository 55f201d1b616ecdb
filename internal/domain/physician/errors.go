package physician

import "errors"

var (
	ErrNotFound         = errors.New("physician not found")
	ErrDuplicateLicense = errors.New("license number already registered")
	ErrDuplicateUser    = errors.New("user already bound to a physician")
	ErrValidation       = errors.New("invalid physician data")
)
