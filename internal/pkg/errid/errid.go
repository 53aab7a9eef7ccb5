// Package errid issues short correlation identifiers that link a
// client-visible error envelope to the matching server log line.
package errid

import (
	"strconv"
	"time"
)

// New returns an opaque correlation id derived from the current wall clock,
// base-36 encoded. It is a debugging aid, not a uniqueness or security token.
func New() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36)
}
