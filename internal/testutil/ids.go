package testutil

import (
	"fmt"
	"sync"
)

// SeqGenerator produces "prefix-1", "prefix-2", ... identities. Unlike
// domain.FixedGenerator it never exhausts, which suits tests that do not
// care about every individual identity.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SeqGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSeqGenerator creates a generator with the given prefix.
func NewSeqGenerator(prefix string) *SeqGenerator {
	return &SeqGenerator{prefix: prefix}
}

// NewID returns the next sequential identity.
func (g *SeqGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
