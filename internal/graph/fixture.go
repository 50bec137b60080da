package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pietrocfn02/neXSim-latest/internal/model"
)

// edgeFixture is the on-disk JSON shape for one Edge, used to seed
// MemoryGraph in the absence of a real graph-DB driver in the example
// pack (the original's Neo4j client has no Go equivalent here).
type edgeFixture struct {
	Source    string `json:"source"`
	Predicate string `json:"predicate"`
	Target    string `json:"target"`
}

// LoadFixtureFile reads a JSON array of edges from path and validates
// every entity id against the wire format, returning them ready for
// NewMemoryGraph.
func LoadFixtureFile(path string) ([]Edge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("graph: read fixture %s: %w", path, err)
	}

	var raw []edgeFixture
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("graph: parse fixture %s: %w", path, err)
	}

	edges := make([]Edge, 0, len(raw))
	for i, r := range raw {
		source, err := model.NewEntityId(r.Source)
		if err != nil {
			return nil, fmt.Errorf("graph: fixture %s edge[%d].source: %w", path, i, err)
		}
		target, err := model.NewEntityId(r.Target)
		if err != nil {
			return nil, fmt.Errorf("graph: fixture %s edge[%d].target: %w", path, i, err)
		}
		edges = append(edges, Edge{Source: source, Predicate: r.Predicate, Target: target})
	}
	return edges, nil
}
