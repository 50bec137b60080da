// Package mangle wraps google/mangle to evaluate one stratified Datalog
// program per call. Each request to the pipeline builds its own program
// text, hands it to Solve, and reads back an unordered fact set; no store,
// schema, or predicate index is retained across calls, matching §5's "no
// cross-request state except connections and immutable configuration."
package mangle

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	_ "github.com/google/mangle/builtin"
	mengine "github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	_ "github.com/google/mangle/packages"
	"github.com/google/mangle/parse"
)

// Solve parses programText, analyzes and evaluates it to a fixpoint over a
// fresh in-memory fact store, then returns every derived atom for
// targetPredicate/arity in no particular order (callers sort via
// model.SortAtoms). Evaluation runs on a goroutine so that ctx cancellation
// and deadlines (§5) return control to the caller promptly; the evaluation
// itself is not interrupted and runs to completion in the background, its
// result discarded.
func Solve(ctx context.Context, programText string, targetPredicate string, arity int) ([]ast.Atom, error) {
	unit, err := parse.Unit(bytes.NewReader([]byte(programText)))
	if err != nil {
		return nil, fmt.Errorf("mangle: parse program: %w", err)
	}

	programInfo, err := analysis.AnalyzeOneUnit(parse.SourceUnit{Clauses: unit.Clauses, Decls: unit.Decls}, nil)
	if err != nil {
		return nil, fmt.Errorf("mangle: analyze program: %w", err)
	}

	store := factstore.NewSimpleInMemoryStore()

	type result struct {
		atoms []ast.Atom
		err   error
	}
	done := make(chan result, 1)

	go func() {
		if _, err := mengine.EvalProgramWithStats(programInfo, store); err != nil {
			done <- result{err: fmt.Errorf("mangle: evaluate program: %w", err)}
			return
		}

		sym := ast.PredicateSym{Symbol: targetPredicate, Arity: arity}
		var atoms []ast.Atom
		err := store.GetFacts(ast.NewQuery(sym), func(atom ast.Atom) error {
			atoms = append(atoms, atom)
			return nil
		})
		if err != nil {
			done <- result{err: fmt.Errorf("mangle: read results for %s/%d: %w", targetPredicate, arity, err)}
			return
		}
		done <- result{atoms: atoms}
	}()

	select {
	case r := <-done:
		return r.atoms, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("mangle: %w", ctx.Err())
	}
}

// AtomArg extracts the raw constant value held by a BaseTerm as a string.
// internal/lca renders entity identifiers as quoted string constants, whose
// value comes back without quotes; a /name constant comes back with its
// leading slash.
func AtomArg(term ast.BaseTerm) (string, error) {
	c, ok := term.(ast.Constant)
	if !ok {
		return "", fmt.Errorf("mangle: expected constant, got %T", term)
	}
	return c.Symbol, nil
}
