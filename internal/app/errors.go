package app

import "errors"

// ErrNotFound and related errors describe validation and runtime failures.
var (
	ErrNotFound        = errors.New("not found")
	ErrListNotPermuted = errors.New("replacement list is not a permutation of the current list")
)
