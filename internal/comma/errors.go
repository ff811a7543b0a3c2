package comma

import "errors"

// ErrInvalidRecord is returned for catalog entries that do not describe a usable comma.
var ErrInvalidRecord = errors.New("comma: invalid record")
