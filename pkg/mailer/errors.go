package mailer

import "github.com/friendsofgo/errors"

var (
	errAPIKeyRequired = errors.New("mailer: API key is required")
	errFromRequired   = errors.New("mailer: from address is required")
)
