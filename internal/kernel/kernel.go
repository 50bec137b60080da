// Package kernel implements the Kernel Rewriter of §4.4: it rewrites each
// summary into a "summary-tilde" with taxonomic edges replaced by the
// unit's LCA edges, then characterizes the rewritten summaries.
package kernel

import (
	"fmt"

	"github.com/pietrocfn02/neXSim-latest/internal/characterize"
	"github.com/pietrocfn02/neXSim-latest/internal/model"
	"github.com/pietrocfn02/neXSim-latest/internal/nexerr"
)

// KernelExplanation implements §4.4's kernel_explanation(response). It
// requires both summaries and lca to already be populated.
func KernelExplanation(unit []model.EntityId, summaries map[model.EntityId]model.Summary, lca []model.Atom, spelling model.Spelling) ([]model.Atom, error) {
	if len(summaries) == 0 {
		return nil, nexerr.New(nexerr.Internal, fmt.Errorf("kernel: summaries must be populated before kernel rewriting"))
	}
	if lca == nil {
		return nil, nexerr.New(nexerr.Internal, fmt.Errorf("kernel: lca must be populated before kernel rewriting"))
	}

	tildes := make([]model.Summary, 0, len(unit))
	for _, e := range unit {
		s, ok := summaries[e]
		if !ok {
			return nil, nexerr.New(nexerr.Internal, fmt.Errorf("kernel: no summary for unit member %s", e))
		}
		tildes = append(tildes, summaryTilde(e, s, lca, spelling))
	}

	return characterize.Characterize(unit, tildes)
}

// summaryTilde builds the summary-tilde of §4.4 for one unit member.
func summaryTilde(e model.EntityId, s model.Summary, lca []model.Atom, spelling model.Spelling) model.Summary {
	var kept []model.Atom
	names := make(map[string]map[string]struct{})
	targets := make(map[string]model.Term)

	for _, a := range s.Atoms {
		if !spelling.IsTaxonomic(a.Predicate) {
			kept = append(kept, a)
			continue
		}
		key := a.Target.String()
		if names[key] == nil {
			names[key] = make(map[string]struct{})
		}
		names[key][a.Predicate] = struct{}{}
		targets[key] = a.Target
	}

	for key, preds := range names {
		if len(preds) <= 1 {
			continue
		}
		if hasPredicate(preds, model.PredIsA, model.PredIsAUpper) {
			kept = append(kept, model.NewAtom(e, targets[key], spelling.IsA()))
		}
		if hasPredicate(preds, model.PredPartOf, model.PredPartOfUpper) {
			kept = append(kept, model.NewAtom(e, targets[key], spelling.PartOf()))
		}
	}

	for _, atom := range lca {
		kept = append(kept, model.NewAtom(e, atom.Target, atom.Predicate))
	}

	return model.NewSummary(e, kept)
}

func hasPredicate(preds map[string]struct{}, lower, upper string) bool {
	_, l := preds[lower]
	_, u := preds[upper]
	return l || u
}
