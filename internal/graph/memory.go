package graph

import (
	"context"

	"github.com/pietrocfn02/neXSim-latest/internal/model"
)

// MemoryGraph is an in-memory Access adapter over a fixed edge set, grounded
// on the teacher's KnowledgeLink rows (internal/store/local_graph.go)
// generalized from SQLite-backed storage to a plain adjacency map: no real
// graph-DB driver appears anywhere in the example pack for this domain, so
// the contract is exercised against a deterministic fixture instead of a
// fabricated client.
type MemoryGraph struct {
	spelling model.Spelling
	bySource map[model.EntityId][]Edge
}

// NewMemoryGraph indexes edges by source for traversal. spelling identifies
// which case the edges' predicate strings use, so DirectInstances and the
// taxonomic closures can recognize them.
func NewMemoryGraph(edges []Edge, spelling model.Spelling) *MemoryGraph {
	g := &MemoryGraph{
		spelling: spelling,
		bySource: make(map[model.EntityId][]Edge),
	}
	for _, e := range edges {
		g.bySource[e.Source] = append(g.bySource[e.Source], e)
	}
	return g
}

func (g *MemoryGraph) outgoing(e model.EntityId) []Edge {
	return g.bySource[e]
}

// DirectInstances implements Access.
func (g *MemoryGraph) DirectInstances(ctx context.Context, unit []model.EntityId) ([]Edge, error) {
	var out []Edge
	for _, e := range unit {
		for _, edge := range g.outgoing(e) {
			if edge.Predicate == g.spelling.InstanceOf() || edge.Predicate == g.spelling.IsA() || edge.Predicate == g.spelling.SubclassOf() {
				out = append(out, edge)
			}
		}
	}
	return out, nil
}

// DirectPartOf implements Access.
func (g *MemoryGraph) DirectPartOf(ctx context.Context, unit []model.EntityId) ([]Edge, error) {
	var out []Edge
	for _, e := range unit {
		for _, edge := range g.outgoing(e) {
			if edge.Predicate == g.spelling.PartOf() {
				out = append(out, edge)
			}
		}
	}
	return out, nil
}

// HypernymSubgraph implements Access: the subclass_of closure from seeds.
func (g *MemoryGraph) HypernymSubgraph(ctx context.Context, seeds []model.EntityId) ([]Edge, error) {
	return g.closure(seeds, g.spelling.SubclassOf()), nil
}

// MeronymSubgraph implements Access: the part_of closure from seeds.
func (g *MemoryGraph) MeronymSubgraph(ctx context.Context, seeds []model.EntityId) ([]Edge, error) {
	return g.closure(seeds, g.spelling.PartOf()), nil
}

// closure performs a BFS along predicate-labeled edges from seeds,
// collecting every traversed edge exactly once.
func (g *MemoryGraph) closure(seeds []model.EntityId, predicate string) []Edge {
	seen := make(map[Edge]struct{})
	visited := make(map[model.EntityId]bool)
	queue := append([]model.EntityId{}, seeds...)
	var out []Edge

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true

		for _, edge := range g.outgoing(cur) {
			if edge.Predicate != predicate {
				continue
			}
			if _, ok := seen[edge]; !ok {
				seen[edge] = struct{}{}
				out = append(out, edge)
			}
			if !visited[edge.Target] {
				queue = append(queue, edge.Target)
			}
		}
	}
	return out
}

// reachableTargets returns every entity reached from seed by one or more
// predicate-labeled hops (length >= 1), each listed once.
func (g *MemoryGraph) reachableTargets(seed model.EntityId, predicate string) []model.EntityId {
	visited := make(map[model.EntityId]bool)
	seenTarget := make(map[model.EntityId]bool)
	queue := []model.EntityId{seed}
	var targets []model.EntityId

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true

		for _, edge := range g.outgoing(cur) {
			if edge.Predicate != predicate {
				continue
			}
			if !seenTarget[edge.Target] {
				seenTarget[edge.Target] = true
				targets = append(targets, edge.Target)
			}
			if !visited[edge.Target] {
				queue = append(queue, edge.Target)
			}
		}
	}
	return targets
}

// FullSummary implements Access by composing the five-union of §4.1 from
// the primitives above. Every returned edge is sourced at e itself (multi-hop
// closures are flattened to direct e->ancestor edges); the Summary Engine
// performs predicate collapsing to the chosen taxonomy label and final Atom
// construction.
func (g *MemoryGraph) FullSummary(ctx context.Context, unit []model.EntityId) (map[model.EntityId][]Edge, error) {
	out := make(map[model.EntityId][]Edge, len(unit))

	for _, e := range unit {
		var edges []Edge
		seen := make(map[Edge]struct{})
		add := func(target model.EntityId, predicate string) {
			edge := Edge{Source: e, Predicate: predicate, Target: target}
			if _, ok := seen[edge]; ok {
				return
			}
			seen[edge] = struct{}{}
			edges = append(edges, edge)
		}

		// 1. one-hop is_a / instance_of.
		for _, edge := range g.outgoing(e) {
			if edge.Predicate == g.spelling.IsA() || edge.Predicate == g.spelling.InstanceOf() {
				add(edge.Target, edge.Predicate)
			}
		}

		// 2. transitive subclass_of closure from e.
		for _, target := range g.reachableTargets(e, g.spelling.SubclassOf()) {
			add(target, g.spelling.SubclassOf())
		}

		// 3. one instance_of hop composed with transitive subclass_of.
		for _, edge := range g.outgoing(e) {
			if edge.Predicate != g.spelling.InstanceOf() {
				continue
			}
			for _, target := range g.reachableTargets(edge.Target, g.spelling.SubclassOf()) {
				add(target, g.spelling.SubclassOf())
			}
		}

		// 4. transitive part_of closure from e.
		for _, target := range g.reachableTargets(e, g.spelling.PartOf()) {
			add(target, g.spelling.PartOf())
		}

		// 5. all other outgoing edges with non-taxonomic predicates.
		for _, edge := range g.outgoing(e) {
			if !g.spelling.IsTaxonomic(edge.Predicate) {
				add(edge.Target, edge.Predicate)
			}
		}

		out[e] = edges
	}

	return out, nil
}
