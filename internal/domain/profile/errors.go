package profile

import "errors"

var (
	ErrBadRequest         = errors.New("bad request")
	ErrAlreadyExists      = errors.New("profile already exists")
	ErrInvitationRequired = errors.New("invitation required")
	ErrInvalidInvite      = errors.New("invalid invite")
)

func IsErrBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

func IsErrAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsErrInvitationRequired(err error) bool {
	return errors.Is(err, ErrInvitationRequired)
}

func IsErrInvalidInvite(err error) bool {
	return errors.Is(err, ErrInvalidInvite)
}
