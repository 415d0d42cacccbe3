// Package publicid generates the opaque identifiers exposed across entity
// boundaries. Internal numeric keys never leave the storage layer.
package publicid

import (
	"github.com/oklog/ulid/v2"
)

const Length = ulid.EncodedSize

func New() string {
	return ulid.Make().String()
}

func Valid(id string) bool {
	if len(id) != Length {
		return false
	}
	_, err := ulid.ParseStrict(id)
	return err == nil
}
