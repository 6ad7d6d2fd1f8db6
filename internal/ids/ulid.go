// Package ids generates the run identifiers attached to scheduled job
// executions.
package ids

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// source guards a single monotonic entropy reader so IDs generated within
// the same millisecond still sort in creation order.
var source = struct {
	sync.Mutex
	entropy *ulid.MonotonicEntropy
}{entropy: ulid.Monotonic(rand.Reader, 0)}

// CreateULID returns a new lexicographically sortable run ID. Safe for
// concurrent use.
func CreateULID() string {
	source.Lock()
	defer source.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), source.entropy).String()
}
