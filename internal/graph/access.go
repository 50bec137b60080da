// Package graph defines the Graph Access Contract: the read-only boundary
// between the symbolic core and the knowledge graph store (§4.5). The
// contract is described here as a Go interface; MemoryGraph is the only
// concrete adapter in this repository, generalized from the teacher's
// KnowledgeLink edge-row shape (internal/store/local_graph.go) into an
// in-memory adjacency structure since no real graph-DB client exists
// anywhere in the example pack for this domain.
package graph

import (
	"context"

	"github.com/pietrocfn02/neXSim-latest/internal/model"
)

// Edge is one labeled, directed relation returned by the graph store. It
// mirrors the teacher's KnowledgeLink (EntityA, Relation, EntityB) trimmed
// to what the core consumes: weight and metadata never reach the symbolic
// pipeline.
type Edge struct {
	Source    model.EntityId
	Predicate string
	Target    model.EntityId
}

// Access is the Graph Access Contract of §4.5. Implementations answer every
// query using whichever predicate spelling (upper/lower) the process was
// configured with at startup; the core never re-cases a predicate string it
// receives from Access.
type Access interface {
	// DirectInstances returns edges (e, t, p) for each e in unit where p is
	// one of instance_of, is_a, subclass_of.
	DirectInstances(ctx context.Context, unit []model.EntityId) ([]Edge, error)

	// DirectPartOf returns edges (e, t, part_of) for each e in unit.
	DirectPartOf(ctx context.Context, unit []model.EntityId) ([]Edge, error)

	// HypernymSubgraph returns every edge reachable from any seed following
	// subclass_of outgoing, de-duplicated.
	HypernymSubgraph(ctx context.Context, seeds []model.EntityId) ([]Edge, error)

	// MeronymSubgraph is the part_of analogue of HypernymSubgraph.
	MeronymSubgraph(ctx context.Context, seeds []model.EntityId) ([]Edge, error)

	// FullSummary returns, for each e in unit, the five-union of edges
	// described in §4.1, already assembled if the store can do so more
	// efficiently than the primitives above; MemoryGraph composes it from
	// the primitives.
	FullSummary(ctx context.Context, unit []model.EntityId) (map[model.EntityId][]Edge, error)
}
