// Package memory provides map-backed implementations of the domain store
// contracts. They back unit tests and local development; Postgres is the
// production backing.
package memory

import "sync/atomic"

// idGenerator hands out sequential int64 ids.
type idGenerator struct {
	last atomic.Int64
}

func (g *idGenerator) next() int64 {
	return g.last.Add(1)
}
