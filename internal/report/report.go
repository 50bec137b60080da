// Package report renders a populated model.NeXSimResponse into a
// human-readable text report with one "predicate(source,target)" line per
// atom, in the section layout of the original Python implementation's
// report.py. Rendering is a pure formatting pass: it
// performs no entity lookup or enrichment, printing raw EntityId and
// variable strings the way the original does when no entity metadata
// store is wired in.
package report

import (
	"fmt"
	"strings"

	"github.com/pietrocfn02/neXSim-latest/internal/model"
)

// EmptyUnit is returned verbatim for a response with no unit members, the
// one local-recovery short-circuit the original router performs before
// ever invoking the pipeline.
const EmptyUnit = "Empty unit!"

// Render produces the full text-mode report for resp, matching the
// section order of the original report.py: unit header, per-entity
// summaries, LCA, characterization, kernel explanation, and (when
// present) a computation-times footer.
func Render(resp *model.NeXSimResponse) string {
	if resp == nil || len(resp.Unit) == 0 {
		return EmptyUnit
	}

	var b strings.Builder

	b.WriteString("Unit: ")
	writeJoined(&b, resp.Unit)
	b.WriteString("\n\n")

	for _, s := range resp.SummaryList() {
		fmt.Fprintf(&b, "Summary for %s: \n", s.Entity)
		for _, atom := range s.Atoms {
			writeAtomLine(&b, atom)
		}
		b.WriteString("\n")
	}

	b.WriteString("LCA: \n")
	for _, atom := range resp.LCA {
		writeAtomLine(&b, atom)
	}
	b.WriteString("\n")

	b.WriteString("Characterization: \n")
	for _, atom := range resp.Characterization {
		writeAtomLine(&b, atom)
	}
	b.WriteString("\n")

	b.WriteString("Kernel Explanation: \n")
	for _, atom := range resp.KernelExplanation {
		writeAtomLine(&b, atom)
	}
	b.WriteString("\n")

	if len(resp.ComputationTimes) > 0 {
		b.WriteString("###############################\n")
		b.WriteString("Computation Times: \n")
		var total float64
		for _, t := range resp.ComputationTimes {
			seconds := t.Duration.Seconds()
			total += seconds
			fmt.Fprintf(&b, "%s: %gs\n", t.Stage, seconds)
		}
		fmt.Fprintf(&b, "Total Computation Time: %gs\n", total)
		b.WriteString("###############################")
	}

	return b.String()
}

func writeAtomLine(b *strings.Builder, atom model.Atom) {
	fmt.Fprintf(b, "%s(%s,%s)\n", atom.Predicate, atom.Source, atom.Target)
}

func writeJoined(b *strings.Builder, ids []model.EntityId) {
	for i, id := range ids {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(id))
	}
}
