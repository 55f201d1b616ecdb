package patient

import "errors"

var (
	ErrNotFound            = errors.New("patient not found")
	ErrDuplicateHealthCard = errors.New("health card number already registered")
	ErrValidation          = errors.New("invalid patient data")
)
