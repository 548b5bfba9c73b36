package tasks

import "errors"

var (
	ErrObjectNotFound = errors.New("referenced object not found")
	ErrFieldNotFound  = errors.New("referenced field not found")
	ErrEmptyResponse  = errors.New("approval response is empty")
)
