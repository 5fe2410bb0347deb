package domain

import "errors"

var (
	ErrPointSetNotFound = errors.New("point set not found")
	ErrDuplicateName    = errors.New("point set name already exists")
	ErrInvalidPointSet  = errors.New("invalid point set")
)
