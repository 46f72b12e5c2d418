package usecase

import "errors"

var (
	ErrInternal   = errors.New("internal error")
	ErrCompletion = errors.New("completion service failed")
)
