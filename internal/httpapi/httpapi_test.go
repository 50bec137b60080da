package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pietrocfn02/neXSim-latest/internal/graph"
	"github.com/pietrocfn02/neXSim-latest/internal/model"
	"github.com/pietrocfn02/neXSim-latest/internal/pipeline"
)

var (
	fido   = model.MustEntityId("bn:00000001n")
	rex    = model.MustEntityId("bn:00000002n")
	dog    = model.MustEntityId("bn:00000003n")
	mammal = model.MustEntityId("bn:00000004n")
	animal = model.MustEntityId("bn:00000005n")
)

func testServer(t *testing.T) *Server {
	t.Helper()
	spelling := model.Spelling{}
	edges := []graph.Edge{
		{Source: fido, Predicate: spelling.InstanceOf(), Target: dog},
		{Source: rex, Predicate: spelling.InstanceOf(), Target: dog},
		{Source: dog, Predicate: spelling.SubclassOf(), Target: mammal},
		{Source: mammal, Predicate: spelling.SubclassOf(), Target: animal},
	}
	access := graph.NewMemoryGraph(edges, spelling)
	p := pipeline.New(access, spelling, 5*time.Second, nil)
	return NewServer(p)
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestSummaryEndpointReturnsPopulatedSummaries(t *testing.T) {
	handler := testServer(t).Handler()
	rr := doRequest(t, handler, "POST", "/summary", map[string]interface{}{
		"unit": []string{"bn:00000001n", "bn:00000002n"},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var summaries map[model.EntityId]model.Summary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summaries))
	assert.Len(t, summaries, 2)
}

func TestSummaryEndpointRejectsInvalidIdentifier(t *testing.T) {
	handler := testServer(t).Handler()
	rr := doRequest(t, handler, "POST", "/summary", map[string]interface{}{
		"unit": []string{"not-an-id"},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCharacterizeEndpointRequiresTwoSummaries(t *testing.T) {
	handler := testServer(t).Handler()
	rr := doRequest(t, handler, "POST", "/characterize", map[string]interface{}{
		"unit":      []string{"bn:00000001n", "bn:00000002n"},
		"summaries": map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLCAEndpointRejectsMissingSummaries(t *testing.T) {
	handler := testServer(t).Handler()
	rr := doRequest(t, handler, "POST", "/lca", map[string]interface{}{
		"unit": []string{"bn:00000001n", "bn:00000002n"},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "summaries", body.Field)
}

func TestLCAEndpointRejectsIncompleteSummaries(t *testing.T) {
	server := testServer(t)
	handler := server.Handler()

	summaries, err := server.pipeline.Summary(context.Background(), []model.EntityId{fido})
	require.NoError(t, err)
	encoded, err := json.Marshal(summaries)
	require.NoError(t, err)
	var asMap map[string]interface{}
	require.NoError(t, json.Unmarshal(encoded, &asMap))

	rr := doRequest(t, handler, "POST", "/lca", map[string]interface{}{
		"unit":      []string{"bn:00000001n", "bn:00000002n"},
		"summaries": asMap,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLCAEndpointAcceptsCompleteSummaries(t *testing.T) {
	server := testServer(t)
	handler := server.Handler()
	unit := []model.EntityId{fido, rex}

	summaries, err := server.pipeline.Summary(context.Background(), unit)
	require.NoError(t, err)
	encoded, err := json.Marshal(summaries)
	require.NoError(t, err)
	var asMap map[string]interface{}
	require.NoError(t, json.Unmarshal(encoded, &asMap))

	rr := doRequest(t, handler, "POST", "/lca", map[string]interface{}{
		"unit":      []string{"bn:00000001n", "bn:00000002n"},
		"summaries": asMap,
	})
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestReportEndpointShortCircuitsOnEmptyUnit(t *testing.T) {
	handler := testServer(t).Handler()
	rr := doRequest(t, handler, "POST", "/report", map[string]interface{}{
		"unit": []string{},
	})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Empty unit!")
}

func TestReportEndpointJSONModeReturnsFullResponse(t *testing.T) {
	handler := testServer(t).Handler()
	rr := doRequest(t, handler, "POST", "/report", map[string]interface{}{
		"unit": []string{"bn:00000001n", "bn:00000002n"},
		"mode": "json",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp model.NeXSimResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Summaries)
	assert.NotEmpty(t, resp.KernelExplanation)
}
