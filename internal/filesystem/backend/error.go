package backend

import "errors"

var (
	ErrSchemeNotRegistered = errors.New("scheme was not registered")
	ErrMissingParameter    = errors.New("missing parameter")
	ErrInvalidParameter    = errors.New("invalid parameter")
)
