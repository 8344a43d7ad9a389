package repository

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicate    = errors.New("duplicate resource")
	ErrInvalidInput = errors.New("invalid input data")
	ErrUnavailable  = errors.New("food is not available")
	ErrInUse        = errors.New("resource is still referenced")
)
