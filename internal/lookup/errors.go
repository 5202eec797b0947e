package lookup

import "github.com/friendsofgo/errors"

// ErrNotFound is returned when a campaign, company, recipient or
// settings row cannot be resolved.
var ErrNotFound = errors.New("lookup: not found")
