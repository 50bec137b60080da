// Package characterize implements the Characterization Engine of §4.3: a
// pairwise anti-unification fold over a unit's summaries, producing shared
// atoms verbatim and abstracting recurrent predicate sets into fresh bound
// variables.
package characterize

import (
	"sort"
	"strings"

	"github.com/pietrocfn02/neXSim-latest/internal/model"
	"github.com/pietrocfn02/neXSim-latest/internal/nexerr"
)

// Characterize implements §4.3's characterize(summaries) -> list of Atom.
// unit provides the Origin for the free variable X_0 substituted for every
// summarized entity.
func Characterize(unit []model.EntityId, summaries []model.Summary) ([]model.Atom, error) {
	if len(summaries) < 2 {
		return nil, nexerr.New(nexerr.InsufficientUnit, errInsufficientUnit(len(summaries)))
	}

	ordered := append([]model.Summary{}, summaries...)
	model.ByAtomCount(ordered)

	free := model.NewFreeVariable(unit)
	normalized := make([][]model.Atom, len(ordered))
	for i, s := range ordered {
		normalized[i] = normalize(s, free)
	}

	nominal := 0
	acc := normalized[0]
	for i := 1; i < len(normalized); i++ {
		acc = pairwiseChar(acc, normalized[i], free, &nominal)
	}

	model.SortAtoms(acc)
	return acc, nil
}

func errInsufficientUnit(n int) error {
	return &insufficientUnitErr{n: n}
}

type insufficientUnitErr struct{ n int }

func (e *insufficientUnitErr) Error() string {
	if e.n == 1 {
		return "characterize requires at least 2 summaries, got 1"
	}
	return "characterize requires at least 2 summaries, got 0"
}

// normalize substitutes every occurrence of s.Entity in source/target
// positions with the shared free variable, leaving other constants alone.
func normalize(s model.Summary, free *model.Variable) []model.Atom {
	out := make([]model.Atom, len(s.Atoms))
	for i, a := range s.Atoms {
		out[i] = model.NewAtom(substitute(a.Source, s.Entity, free), substitute(a.Target, s.Entity, free), a.Predicate)
	}
	return out
}

func substitute(t model.Term, entity model.EntityId, free *model.Variable) model.Term {
	if id, ok := t.(model.EntityId); ok && id == entity {
		return free
	}
	return t
}

// signature is a set of predicate strings, the value type of the §4.3
// step-3 mapping from target constant to predicates reaching it.
type signature map[string]struct{}

func newSignature(predicates ...string) signature {
	s := make(signature, len(predicates))
	for _, p := range predicates {
		s[p] = struct{}{}
	}
	return s
}

func (s signature) key() string {
	ps := s.sorted()
	return strings.Join(ps, "\x00")
}

func (s signature) sorted() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (s signature) isStrictSubsetOf(other signature) bool {
	if len(s) >= len(other) {
		return false
	}
	for p := range s {
		if _, ok := other[p]; !ok {
			return false
		}
	}
	return true
}

func (s signature) intersect(other signature) signature {
	out := make(signature)
	for p := range s {
		if _, ok := other[p]; ok {
			out[p] = struct{}{}
		}
	}
	return out
}

// stripStrictSubsets removes any signature that is a strict subset of
// another signature in sets, and collapses exact duplicates. §9 notes that
// sorting by cardinality descending first keeps this O(n^2 * avg-set-size)
// and deterministic.
func stripStrictSubsets(sets []signature) []signature {
	uniqueByKey := make(map[string]signature, len(sets))
	for _, s := range sets {
		if len(s) == 0 {
			continue
		}
		uniqueByKey[s.key()] = s
	}

	unique := make([]signature, 0, len(uniqueByKey))
	for _, s := range uniqueByKey {
		unique = append(unique, s)
	}
	sort.Slice(unique, func(i, j int) bool {
		if len(unique[i]) != len(unique[j]) {
			return len(unique[i]) > len(unique[j])
		}
		return unique[i].key() < unique[j].key()
	})

	var kept []signature
	for _, s := range unique {
		strict := false
		for _, k := range kept {
			if s.isStrictSubsetOf(k) {
				strict = true
				break
			}
		}
		if !strict {
			kept = append(kept, s)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].key() < kept[j].key() })
	return kept
}

// predicateSet collects the distinct predicates occurring in atoms.
func predicateSet(atoms []model.Atom) map[string]struct{} {
	out := make(map[string]struct{})
	for _, a := range atoms {
		out[a.Predicate] = struct{}{}
	}
	return out
}

// intersectAtoms returns atoms present in both l and r under structural
// equality (§4.3 step 2: "common := L ∩ R").
func intersectAtoms(l, r []model.Atom) []model.Atom {
	var out []model.Atom
	for _, a := range l {
		for _, b := range r {
			if a.Equal(b) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// groupByTarget builds M_S: for atoms whose predicate is in allowed, groups
// by printed target into the set of predicates reaching that target.
func groupByTarget(atoms []model.Atom, allowed map[string]struct{}) map[string]signature {
	out := make(map[string]signature)
	for _, a := range atoms {
		if _, ok := allowed[a.Predicate]; !ok {
			continue
		}
		key := a.Target.String()
		if out[key] == nil {
			out[key] = make(signature)
		}
		out[key][a.Predicate] = struct{}{}
	}
	return out
}

func values(m map[string]signature) []signature {
	out := make([]signature, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

// pairwiseIntersections computes a ∩ b for every (a,b) in l x r, collapsing
// duplicates and dropping empties (§4.3 step 7).
func pairwiseIntersections(l, r []signature) []signature {
	seen := make(map[string]signature)
	for _, a := range l {
		for _, b := range r {
			inter := a.intersect(b)
			if len(inter) == 0 {
				continue
			}
			seen[inter.key()] = inter
		}
	}
	out := make([]signature, 0, len(seen))
	for _, v := range seen {
		out = append(out, v)
	}
	return out
}

// pairwiseChar implements §4.3's pairwise_char(L, R, X) operator.
func pairwiseChar(l, r []model.Atom, free *model.Variable, nominal *int) []model.Atom {
	predL := predicateSet(l)
	predR := predicateSet(r)
	p := make(map[string]struct{})
	for pred := range predL {
		if _, ok := predR[pred]; ok {
			p[pred] = struct{}{}
		}
	}

	common := intersectAtoms(l, r)

	mL := groupByTarget(l, p)
	mR := groupByTarget(r, p)
	mC := groupByTarget(common, p)

	vL := values(mL)
	vR := values(mR)
	vC := stripStrictSubsets(values(mC))

	i := stripStrictSubsets(pairwiseIntersections(vL, vR))

	vCKeys := make(map[string]struct{}, len(vC))
	for _, s := range vC {
		vCKeys[s.key()] = struct{}{}
	}

	var v []signature
	for _, s := range i {
		if _, ok := vCKeys[s.key()]; !ok {
			v = append(v, s)
		}
	}
	sort.Slice(v, func(a, b int) bool { return v[a].key() < v[b].key() })

	nonCommon := make([]model.Atom, 0)
	for _, sigma := range v {
		y := model.NewBoundVariable(*nominal, free.Origin)
		*nominal++
		for _, pred := range sigma.sorted() {
			nonCommon = append(nonCommon, model.NewAtom(free, y, pred))
		}
	}

	out := make([]model.Atom, 0, len(common)+len(nonCommon))
	out = append(out, common...)
	out = append(out, nonCommon...)
	return out
}
