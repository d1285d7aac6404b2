package domain

import (
	"errors"
)

var (
	MessageFailedBodyRequest    = "failed to parse body request"
	MessageFailedProcessRequest = "failed to process request"

	ErrItemNotFound    = errors.New("food item not found")
	ErrInvalidCategory = errors.New("invalid category")
)
