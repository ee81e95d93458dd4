package invite

import "errors"

var (
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")
)

func IsErrForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

func IsErrNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
