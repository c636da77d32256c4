package litle

import (
	"fmt"
	"hash/fnv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// maxCorrelationIDLen is the processor's cap on the id attribute
const maxCorrelationIDLen = 25

// idGenerator produces the correlation ids that tag every submitted
// transaction. Caller-supplied ids are used as-is (truncated); generated
// ids combine a monotonic sequence with a coarse timestamp, which keeps
// them unique within any one batch. Cross-batch collisions are
// tolerated since correlation is batch-scoped.
type idGenerator struct {
	seq atomic.Uint64
	now func() time.Time
}

func newIDGenerator() *idGenerator {
	return &idGenerator{now: time.Now}
}

func (g *idGenerator) next(callerID string) string {
	if callerID != "" {
		return truncate(callerID, maxCorrelationIDLen)
	}
	n := g.seq.Add(1)
	return truncate(fmt.Sprintf("%d%d", n, g.now().Unix()), maxCorrelationIDLen)
}

// submissionID derives the envelope-level id attributes from a random
// UUID folded through FNV-1a, so they stay numeric and well under the
// attribute cap
func (g *idGenerator) submissionID() string {
	u := uuid.New()
	h := fnv.New32a()
	h.Write(u[:])
	return truncate(fmt.Sprintf("%d%d", h.Sum32(), g.now().Unix()), maxCorrelationIDLen)
}
