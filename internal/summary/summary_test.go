package summary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pietrocfn02/neXSim-latest/internal/graph"
	"github.com/pietrocfn02/neXSim-latest/internal/model"
)

var (
	fido   = model.MustEntityId("bn:00000001n")
	dog    = model.MustEntityId("bn:00000002n")
	mammal = model.MustEntityId("bn:00000003n")
	tail   = model.MustEntityId("bn:00000004n")
)

func TestFullSummaryRelabelsTaxonomicEdges(t *testing.T) {
	edges := []graph.Edge{
		{Source: fido, Predicate: model.PredInstanceOf, Target: dog},
		{Source: dog, Predicate: model.PredSubclassOf, Target: mammal},
		{Source: fido, Predicate: model.PredPartOf, Target: tail},
		{Source: fido, Predicate: "color", Target: mammal},
	}
	g := graph.NewMemoryGraph(edges, model.Spelling{})
	eng := New(g, model.Spelling{})

	summaries, err := eng.FullSummary(context.Background(), []model.EntityId{fido})
	require.NoError(t, err)

	s := summaries[fido]
	predicates := map[string]bool{}
	for _, a := range s.Atoms {
		predicates[a.Predicate] = true
	}
	assert.True(t, predicates[model.PredIsA], "instance_of should relabel to is_a")
	assert.True(t, predicates[model.PredPartOf], "part_of should be preserved, not collapsed")
	assert.True(t, predicates["color"], "non-taxonomic predicates keep their label")
	assert.False(t, predicates[model.PredInstanceOf])
	assert.False(t, predicates[model.PredSubclassOf])
}

func TestFullSummaryEmptyWhenGraphHasNoEdges(t *testing.T) {
	g := graph.NewMemoryGraph(nil, model.Spelling{})
	eng := New(g, model.Spelling{})

	summaries, err := eng.FullSummary(context.Background(), []model.EntityId{fido})
	require.NoError(t, err)
	s := summaries[fido]
	assert.Empty(t, s.Atoms)
	assert.Empty(t, s.Tops)
}

func TestFullSummaryHonorsUpperSpelling(t *testing.T) {
	edges := []graph.Edge{
		{Source: fido, Predicate: model.PredInstanceOfUpper, Target: dog},
	}
	g := graph.NewMemoryGraph(edges, model.Spelling{Upper: true})
	eng := New(g, model.Spelling{Upper: true})

	summaries, err := eng.FullSummary(context.Background(), []model.EntityId{fido})
	require.NoError(t, err)
	require.Len(t, summaries[fido].Atoms, 1)
	assert.Equal(t, model.PredIsAUpper, summaries[fido].Atoms[0].Predicate)
}
