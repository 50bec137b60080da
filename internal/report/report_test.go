package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pietrocfn02/neXSim-latest/internal/model"
)

var (
	fido = model.MustEntityId("bn:00000001n")
	dog  = model.MustEntityId("bn:00000002n")
)

func TestRenderEmptyUnitShortCircuits(t *testing.T) {
	assert.Equal(t, EmptyUnit, Render(nil))
	assert.Equal(t, EmptyUnit, Render(model.NewResponse(nil)))
}

func TestRenderIncludesAllSections(t *testing.T) {
	resp := model.NewResponse([]model.EntityId{fido})
	resp.Summaries = map[model.EntityId]model.Summary{
		fido: model.NewSummary(fido, []model.Atom{model.NewAtom(fido, dog, model.PredIsA)}),
	}
	free := model.NewFreeVariable(resp.Unit)
	resp.LCA = []model.Atom{model.NewAtom(free, dog, model.PredIsA)}
	resp.Characterization = []model.Atom{model.NewAtom(free, dog, model.PredIsA)}
	resp.KernelExplanation = []model.Atom{model.NewAtom(free, dog, model.PredIsA)}
	resp.RecordTiming("summary", 2*time.Millisecond)

	out := Render(resp)
	require.Contains(t, out, "Unit: bn:00000001n")
	require.Contains(t, out, "Summary for bn:00000001n")
	require.Contains(t, out, "LCA:")
	require.Contains(t, out, "Characterization:")
	require.Contains(t, out, "Kernel Explanation:")
	require.Contains(t, out, "Computation Times:")
	require.Contains(t, out, "is_a(bn:00000001n,bn:00000002n)")
}

func TestRenderOmitsComputationTimesFooterWhenAbsent(t *testing.T) {
	resp := model.NewResponse([]model.EntityId{fido})
	out := Render(resp)
	assert.NotContains(t, out, "Computation Times")
}
