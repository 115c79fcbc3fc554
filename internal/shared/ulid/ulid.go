package ulid

import (
	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string. Used for the per-process run ID and
// per-request IDs on the ops server.
var NewULID = func() string {
	return ulid.Make().String()
}
