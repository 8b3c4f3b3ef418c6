package model

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0) //nolint:gosec // ids, not secrets
)

// NewID returns a prefixed, lexicographically sortable identifier, e.g.
// "tx-01J9W9K9ZQ...". Prefixes keep exported CSVs and logs readable.
func NewID(prefix string) string {
	entropyMu.Lock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	entropyMu.Unlock()
	if prefix == "" {
		return id.String()
	}
	return prefix + "-" + strings.ToLower(id.String())
}
