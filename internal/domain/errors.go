package domain

import "errors"

var (
	ErrInvalidID         = errors.New("invalid id")
	ErrInvalidTitle      = errors.New("invalid title")
	ErrInvalidOwner      = errors.New("invalid owner")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidDueDate    = errors.New("invalid due date")
	ErrInvalidCost       = errors.New("invalid cost")
	ErrInvalidRatingBump = errors.New("invalid rating bump")
)
