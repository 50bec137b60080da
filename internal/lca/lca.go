// Package lca implements the LCA Engine of §4.2: least common ancestors of
// a unit under the hypernym (is_a) and meronym (part_of) relations, computed
// by rendering a stratified Datalog program and solving it with
// internal/mangle.
package lca

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pietrocfn02/neXSim-latest/internal/graph"
	"github.com/pietrocfn02/neXSim-latest/internal/logging"
	"github.com/pietrocfn02/neXSim-latest/internal/mangle"
	"github.com/pietrocfn02/neXSim-latest/internal/model"
	"github.com/pietrocfn02/neXSim-latest/internal/nexerr"
)

// Engine computes LCA atoms for a unit.
type Engine struct {
	access   graph.Access
	spelling model.Spelling
}

// New builds an LCA Engine over access using the configured predicate spelling.
func New(access graph.Access, spelling model.Spelling) *Engine {
	return &Engine{access: access, spelling: spelling}
}

// LCA implements §4.2's lca(unit) -> list of Atom. The hypernym and meronym
// subproblems are independent (disjoint by predicate label per §5) and run
// concurrently via errgroup; a failure or cancellation in either aborts both.
func (e *Engine) LCA(ctx context.Context, unit []model.EntityId) ([]model.Atom, error) {
	timer := logging.StartTimer(logging.CategoryLCA, "lca")
	defer timer.Stop()

	var hyper, mero []model.Atom
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		atoms, err := e.hypernymLCA(gctx, unit)
		hyper = atoms
		return err
	})
	g.Go(func() error {
		atoms, err := e.meronymLCA(gctx, unit)
		mero = atoms
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	atoms := make([]model.Atom, 0, len(hyper)+len(mero))
	atoms = append(atoms, hyper...)
	atoms = append(atoms, mero...)
	model.SortAtoms(atoms)
	return atoms, nil
}

func (e *Engine) hypernymLCA(ctx context.Context, unit []model.EntityId) ([]model.Atom, error) {
	direct, err := e.access.DirectInstances(ctx, unit)
	if err != nil {
		return nil, nexerr.New(nexerr.UpstreamUnavailable, fmt.Errorf("lca: direct_instances: %w", err))
	}

	seeds := append([]model.EntityId{}, unit...)
	seen := make(map[model.EntityId]bool, len(unit))
	for _, s := range unit {
		seen[s] = true
	}
	for _, edge := range direct {
		if edge.Predicate != e.spelling.InstanceOf() {
			continue
		}
		if !seen[edge.Target] {
			seen[edge.Target] = true
			seeds = append(seeds, edge.Target)
		}
	}

	subclass, err := e.access.HypernymSubgraph(ctx, seeds)
	if err != nil {
		return nil, nexerr.New(nexerr.UpstreamUnavailable, fmt.Errorf("lca: hypernym_subgraph: %w", err))
	}

	program := renderHypernymProgram(unit, direct, subclass, e.spelling)
	return e.solve(ctx, program, unit, e.spelling.IsA())
}

func (e *Engine) meronymLCA(ctx context.Context, unit []model.EntityId) ([]model.Atom, error) {
	partOf, err := e.access.MeronymSubgraph(ctx, unit)
	if err != nil {
		return nil, nexerr.New(nexerr.UpstreamUnavailable, fmt.Errorf("lca: meronym_subgraph: %w", err))
	}
	if len(partOf) == 0 {
		// Empty direct_part_of/meronym subgraph: skip the meronym solve
		// rather than ground an empty program (§7's documented local-recovery
		// exception for empty meronym input).
		return nil, nil
	}

	program := renderMeronymProgram(unit, partOf)
	return e.solve(ctx, program, unit, e.spelling.PartOf())
}

// solve runs program and turns leastCommon/1 atoms into Atom(X_0, target, predicate).
func (e *Engine) solve(ctx context.Context, program string, unit []model.EntityId, predicate string) ([]model.Atom, error) {
	results, err := mangle.Solve(ctx, program, "leastCommon", 1)
	if err != nil {
		return nil, nexerr.New(nexerr.Internal, fmt.Errorf("lca: solve: %w", err))
	}

	free := model.NewFreeVariable(unit)
	atoms := make([]model.Atom, 0, len(results))
	for _, atom := range results {
		raw, err := mangle.AtomArg(atom.Args[0])
		if err != nil {
			return nil, nexerr.New(nexerr.Internal, fmt.Errorf("lca: leastCommon arg: %w", err))
		}
		atoms = append(atoms, model.NewAtom(free, model.EntityId(raw), predicate))
	}
	return atoms, nil
}

func quote(s string) string {
	return strconv.Quote(s)
}

// renderHypernymProgram renders the ASP program of §4.2's hypernym case. is_a
// is defined as the union of instance_of, the transitively closed
// subclass_of relation, and their one-hop-instance/closed-subclass
// composition — matching original_source/neXSim/lca.py's
// HYPERNYM_TRANSITIVE_CLOSURE exactly: instance_of itself is not composed
// with instance_of, only with subclass_of.
func renderHypernymProgram(unit []model.EntityId, direct, subclass []graph.Edge, spelling model.Spelling) string {
	var b strings.Builder
	b.WriteString("Decl seed(X).\n")
	b.WriteString("Decl entity(X).\n")
	b.WriteString("Decl instance_of(X, Y).\n")
	b.WriteString("Decl subclass_of(X, Y).\n")
	b.WriteString("Decl is_a(X, Y).\n")
	b.WriteString("Decl notAncestor(X).\n")
	b.WriteString("Decl common(X).\n")
	b.WriteString("Decl equiv(X, Y).\n")
	b.WriteString("Decl noLeastCommon(X).\n")
	b.WriteString("Decl leastCommon(X).\n\n")

	for _, s := range unit {
		fmt.Fprintf(&b, "seed(%s).\n", quote(string(s)))
	}
	for _, edge := range direct {
		switch edge.Predicate {
		case spelling.InstanceOf():
			fmt.Fprintf(&b, "instance_of(%s, %s).\n", quote(string(edge.Source)), quote(string(edge.Target)))
		case spelling.SubclassOf():
			fmt.Fprintf(&b, "subclass_of(%s, %s).\n", quote(string(edge.Source)), quote(string(edge.Target)))
		case spelling.IsA():
			fmt.Fprintf(&b, "is_a(%s, %s).\n", quote(string(edge.Source)), quote(string(edge.Target)))
		}
	}
	for _, edge := range subclass {
		fmt.Fprintf(&b, "subclass_of(%s, %s).\n", quote(string(edge.Source)), quote(string(edge.Target)))
	}

	b.WriteString(`
subclass_of(X, Z) :- subclass_of(X, Y), subclass_of(Y, Z).
is_a(X, Y) :- instance_of(X, Y).
is_a(X, Y) :- subclass_of(X, Y).
is_a(X, Z) :- instance_of(X, Y), subclass_of(Y, Z).
entity(X) :- is_a(X, _).
entity(X) :- is_a(_, X).
notAncestor(E) :- seed(S), entity(E), !is_a(S, E).
common(E) :- entity(E), !notAncestor(E).
equiv(X, Y) :- is_a(X, Y), is_a(Y, X).
noLeastCommon(E) :- common(E), is_a(C, E), common(C), !equiv(C, E).
leastCommon(X) :- common(X), !noLeastCommon(X).
`)
	return b.String()
}

// renderMeronymProgram renders §4.2's meronym case: r = part_of, no
// instance_of composition.
func renderMeronymProgram(unit []model.EntityId, partOf []graph.Edge) string {
	var b strings.Builder
	b.WriteString("Decl seed(X).\n")
	b.WriteString("Decl entity(X).\n")
	b.WriteString("Decl part_of(X, Y).\n")
	b.WriteString("Decl notAncestor(X).\n")
	b.WriteString("Decl common(X).\n")
	b.WriteString("Decl equiv(X, Y).\n")
	b.WriteString("Decl noLeastCommon(X).\n")
	b.WriteString("Decl leastCommon(X).\n\n")

	for _, s := range unit {
		fmt.Fprintf(&b, "seed(%s).\n", quote(string(s)))
	}
	for _, edge := range partOf {
		fmt.Fprintf(&b, "part_of(%s, %s).\n", quote(string(edge.Source)), quote(string(edge.Target)))
	}

	b.WriteString(`
part_of(X, Z) :- part_of(X, Y), part_of(Y, Z).
entity(X) :- part_of(X, _).
entity(X) :- part_of(_, X).
notAncestor(E) :- seed(S), entity(E), !part_of(S, E).
common(E) :- entity(E), !notAncestor(E).
equiv(X, Y) :- part_of(X, Y), part_of(Y, X).
noLeastCommon(E) :- common(E), part_of(C, E), common(C), !equiv(C, E).
leastCommon(X) :- common(X), !noLeastCommon(X).
`)
	return b.String()
}
