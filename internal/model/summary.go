package model

import "sort"

// Summary is the set of outgoing atoms for one unit member, with
// taxonomic predicates collapsed per the Summary Engine's contract.
type Summary struct {
	Entity EntityId   `json:"entity"`
	Atoms  []Atom     `json:"atoms"`
	Tops   []EntityId `json:"tops"`
}

// NewSummary builds a Summary from a deduplicated, canonically-sorted atom
// set and derives Tops from it (§3 invariant: tops is derivable from atoms).
func NewSummary(entity EntityId, atoms []Atom) Summary {
	deduped := DedupeAtoms(atoms)
	return Summary{Entity: entity, Atoms: deduped, Tops: topsOf(deduped)}
}

// topsOf collects every distinct non-variable endpoint occurring in atoms.
func topsOf(atoms []Atom) []EntityId {
	seen := make(map[EntityId]bool)
	var out []EntityId
	add := func(t Term) {
		if id, ok := t.(EntityId); ok {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	for _, a := range atoms {
		add(a.Source)
		add(a.Target)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ByAtomCount sorts summaries by |atoms| ascending, the order the
// Characterization Engine's preprocessing step requires.
func ByAtomCount(summaries []Summary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return len(summaries[i].Atoms) < len(summaries[j].Atoms)
	})
}
