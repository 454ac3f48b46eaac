package vpath

import "errors"

var ErrInvalidPath = errors.New("invalid path")
