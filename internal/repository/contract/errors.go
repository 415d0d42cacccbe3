package contract

import "errors"

// ErrStaleVersion is returned by conditional updates that matched no row:
// the record changed (or left the expected status) since it was read.
var ErrStaleVersion = errors.New("stale record version")
