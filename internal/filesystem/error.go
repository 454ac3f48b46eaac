package filesystem

import "errors"

var (
	ErrNotMounted = errors.New("backend is not mounted")
)
