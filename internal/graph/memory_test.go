package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pietrocfn02/neXSim-latest/internal/model"
)

var (
	dog  = model.MustEntityId("bn:00000001n")
	mammal = model.MustEntityId("bn:00000002n")
	animal = model.MustEntityId("bn:00000003n")
	tail = model.MustEntityId("bn:00000004n")
	fido = model.MustEntityId("bn:00000005n")
)

func fixture() *MemoryGraph {
	edges := []Edge{
		{Source: fido, Predicate: model.PredInstanceOf, Target: dog},
		{Source: dog, Predicate: model.PredSubclassOf, Target: mammal},
		{Source: mammal, Predicate: model.PredSubclassOf, Target: animal},
		{Source: dog, Predicate: model.PredPartOf, Target: tail}, // not a real-world fact, just exercises traversal
		{Source: dog, Predicate: "lives_in", Target: animal},
	}
	return NewMemoryGraph(edges, model.Spelling{Upper: false})
}

func TestDirectInstancesFiltersToTaxonomicPredicates(t *testing.T) {
	g := fixture()
	edges, err := g.DirectInstances(context.Background(), []model.EntityId{fido, dog})
	require.NoError(t, err)
	assert.Len(t, edges, 2) // fido->dog instance_of, dog->mammal subclass_of
}

func TestHypernymSubgraphClosesTransitively(t *testing.T) {
	g := fixture()
	edges, err := g.HypernymSubgraph(context.Background(), []model.EntityId{dog})
	require.NoError(t, err)
	require.Len(t, edges, 2)
	targets := []model.EntityId{edges[0].Target, edges[1].Target}
	assert.ElementsMatch(t, []model.EntityId{mammal, animal}, targets)
}

func TestFullSummaryComposesFiveUnion(t *testing.T) {
	g := fixture()
	summaries, err := g.FullSummary(context.Background(), []model.EntityId{dog})
	require.NoError(t, err)

	edges := summaries[dog]
	var predicates []string
	for _, e := range edges {
		predicates = append(predicates, e.Predicate)
	}
	assert.Contains(t, predicates, model.PredSubclassOf)
	assert.Contains(t, predicates, model.PredPartOf)
	assert.Contains(t, predicates, "lives_in")
}

func TestFullSummaryDeduplicatesEdges(t *testing.T) {
	g := fixture()
	summaries, err := g.FullSummary(context.Background(), []model.EntityId{dog})
	require.NoError(t, err)

	seen := make(map[Edge]int)
	for _, e := range summaries[dog] {
		seen[e]++
	}
	for edge, count := range seen {
		assert.Equal(t, 1, count, "edge %+v should appear once", edge)
	}
}
