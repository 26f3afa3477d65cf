package models

import "errors"

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTime     = errors.New("invalid time")
	ErrInvalidStatus   = errors.New("invalid ingredient status")
	ErrInvalidMealType = errors.New("invalid meal type")
	ErrMissingField    = errors.New("missing required field")
)
