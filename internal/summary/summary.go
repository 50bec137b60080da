// Package summary implements the Summary Engine of §4.1: for each entity in
// a unit, the union of taxonomic and non-taxonomic outgoing edges collapsed
// to the response's final Atom shape.
package summary

import (
	"context"
	"fmt"

	"github.com/pietrocfn02/neXSim-latest/internal/graph"
	"github.com/pietrocfn02/neXSim-latest/internal/model"
	"github.com/pietrocfn02/neXSim-latest/internal/nexerr"
)

// Engine produces a Summary per entity in a unit by querying a graph.Access
// and relabeling taxonomic edges to the configured predicate spelling.
type Engine struct {
	access   graph.Access
	spelling model.Spelling
}

// New builds a Summary Engine over access, using spelling for the chosen
// taxonomic predicate case (§4.5: read once at process startup).
func New(access graph.Access, spelling model.Spelling) *Engine {
	return &Engine{access: access, spelling: spelling}
}

// FullSummary implements §4.1's full_summary(unit) -> {entity -> Summary}.
func (e *Engine) FullSummary(ctx context.Context, unit []model.EntityId) (map[model.EntityId]model.Summary, error) {
	raw, err := e.access.FullSummary(ctx, unit)
	if err != nil {
		return nil, nexerr.New(nexerr.UpstreamUnavailable, fmt.Errorf("summary: full_summary: %w", err))
	}

	out := make(map[model.EntityId]model.Summary, len(unit))
	for _, entity := range unit {
		edges := raw[entity]
		atoms := make([]model.Atom, 0, len(edges))
		for _, edge := range edges {
			atoms = append(atoms, model.NewAtom(entity, edge.Target, e.relabel(edge.Predicate)))
		}
		out[entity] = model.NewSummary(entity, atoms)
	}
	return out, nil
}

// relabel collapses instance_of and subclass_of to is_a, and leaves is_a,
// part_of, and every other predicate as-is. §9's open question resolves the
// part_of* closure to stay labeled part_of rather than collapse into is_a.
func (e *Engine) relabel(predicate string) string {
	switch predicate {
	case e.spelling.InstanceOf(), e.spelling.SubclassOf():
		return e.spelling.IsA()
	default:
		return predicate
	}
}
