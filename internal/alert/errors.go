package alert

import "github.com/friendsofgo/errors"

var (
	// ErrInvalidVisit is returned when a visit event is missing its id,
	// campaign id or session id.
	ErrInvalidVisit = errors.New("alert: invalid visit event")
)
