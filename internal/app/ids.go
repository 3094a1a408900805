package app

import (
	"strconv"
	"sync/atomic"
)

// IDGenerator returns unique identifiers for new entities.
// Ids are never reused, including after the owning entity is deleted.
type IDGenerator func() string

// SequenceIDs returns a monotonic counter generator producing prefix1, prefix2, ...
func SequenceIDs(prefix string) IDGenerator {
	var n atomic.Uint64
	return func() string {
		return prefix + strconv.FormatUint(n.Add(1), 10)
	}
}
