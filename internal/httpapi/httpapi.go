// Package httpapi implements the five endpoints of spec §6 as thin
// net/http handlers: decode the request shape, call the matching
// pipeline stage, encode the result. No HTTP framework is used — see
// DESIGN.md for why the stdlib is the correct choice here.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pietrocfn02/neXSim-latest/internal/logging"
	"github.com/pietrocfn02/neXSim-latest/internal/model"
	"github.com/pietrocfn02/neXSim-latest/internal/nexerr"
	"github.com/pietrocfn02/neXSim-latest/internal/pipeline"
	"github.com/pietrocfn02/neXSim-latest/internal/report"

	"go.uber.org/zap"
)

// request is the inbound JSON shape of §6: unit plus the nullable,
// pre-populatable stage outputs a caller may already hold from a prior
// call in the same chain.
type request struct {
	Unit             []string                    `json:"unit"`
	Summaries        map[model.EntityId]model.Summary `json:"summaries"`
	LCA              []model.Atom                 `json:"lca"`
	Characterization []model.Atom                 `json:"characterization"`
	Mode             string                       `json:"mode"`
}

// Server wires the five endpoints over a pipeline.Pipeline.
type Server struct {
	pipeline *pipeline.Pipeline
}

// NewServer builds a Server. Its Handler() mux is ready to pass to
// http.ListenAndServe.
func NewServer(p *pipeline.Pipeline) *Server {
	return &Server{pipeline: p}
}

// Handler returns the routed mux for all five endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /summary", s.handleSummary)
	mux.HandleFunc("POST /lca", s.handleLCA)
	mux.HandleFunc("POST /characterize", s.handleCharacterize)
	mux.HandleFunc("POST /kernel", s.handleKernel)
	mux.HandleFunc("POST /report", s.handleReport)
	return mux
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	req, ok := decode(w, r)
	if !ok {
		return
	}
	unit, err := pipeline.ValidateUnit(req.Unit)
	if !writeOnErr(w, err) {
		return
	}
	summaries, err := s.pipeline.Summary(r.Context(), unit)
	if !writeOnErr(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleLCA(w http.ResponseWriter, r *http.Request) {
	req, ok := decode(w, r)
	if !ok {
		return
	}
	unit, err := pipeline.ValidateUnit(req.Unit)
	if !writeOnErr(w, err) {
		return
	}
	if !summariesCoverUnit(req.Summaries, unit) {
		writeErr(w, nexerr.WithField(nexerr.InvalidInput, "summaries", errSummariesIncomplete))
		return
	}
	atoms, err := s.pipeline.LCA(r.Context(), unit)
	if !writeOnErr(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, atoms)
}

func (s *Server) handleCharacterize(w http.ResponseWriter, r *http.Request) {
	req, ok := decode(w, r)
	if !ok {
		return
	}
	unit, err := pipeline.ValidateUnit(req.Unit)
	if !writeOnErr(w, err) {
		return
	}
	if len(req.Summaries) < 2 {
		writeErr(w, nexerr.WithField(nexerr.InsufficientUnit, "summaries", errInsufficientSummaries))
		return
	}
	atoms, err := s.pipeline.Characterize(r.Context(), unit, req.Summaries)
	if !writeOnErr(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, atoms)
}

func (s *Server) handleKernel(w http.ResponseWriter, r *http.Request) {
	req, ok := decode(w, r)
	if !ok {
		return
	}
	unit, err := pipeline.ValidateUnit(req.Unit)
	if !writeOnErr(w, err) {
		return
	}
	if len(req.Summaries) == 0 {
		writeErr(w, nexerr.WithField(nexerr.InvalidInput, "summaries", errMissingSummaries))
		return
	}
	if req.LCA == nil {
		writeErr(w, nexerr.WithField(nexerr.InvalidInput, "lca", errMissingLCA))
		return
	}
	atoms, err := s.pipeline.Kernel(r.Context(), unit, req.Summaries, req.LCA)
	if !writeOnErr(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, atoms)
}

// handleReport runs the full pipeline and emits either a pretty-printed
// text report or the complete populated response, per §6's "text or json
// mode" contract. An empty unit short-circuits to report.EmptyUnit without
// entering the pipeline at all, per §7's documented local-recovery case.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	req, ok := decode(w, r)
	if !ok {
		return
	}
	if len(req.Unit) == 0 {
		writeText(w, http.StatusOK, report.EmptyUnit)
		return
	}

	resp, err := s.pipeline.RunFull(r.Context(), req.Unit)
	if !writeOnErr(w, err) {
		return
	}

	if req.Mode == "json" {
		writeJSON(w, http.StatusOK, resp)
		return
	}
	writeText(w, http.StatusOK, report.Render(resp))
}

var (
	errInsufficientSummaries = errors.New("characterize requires at least two summaries")
	errSummariesIncomplete   = errors.New("lca requires summaries present and complete for the unit")
	errMissingSummaries      = errors.New("kernel requires summaries to be populated")
	errMissingLCA            = errors.New("kernel requires lca to be populated")
)

// summariesCoverUnit reports whether summaries is populated and holds an
// entry for every entity in unit, per §6's "/lca requires summaries present
// and complete for the unit" precondition.
func summariesCoverUnit(summaries map[model.EntityId]model.Summary, unit []model.EntityId) bool {
	if summaries == nil {
		return false
	}
	for _, id := range unit {
		if _, ok := summaries[id]; !ok {
			return false
		}
	}
	return true
}

func decode(w http.ResponseWriter, r *http.Request) (request, bool) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, nexerr.WithField(nexerr.InvalidInput, "body", err))
		return request{}, false
	}
	return req, true
}

// writeOnErr writes the mapped error response if err is non-nil and
// reports whether the caller should continue handling the request.
func writeOnErr(w http.ResponseWriter, err error) bool {
	if err == nil {
		return true
	}
	writeErr(w, err)
	return false
}

// errorBody is the §7 "offending field enumerated" error shape.
type errorBody struct {
	Kind  string `json:"kind"`
	Field string `json:"field,omitempty"`
	Error string `json:"error"`
}

func writeErr(w http.ResponseWriter, err error) {
	kind := nexerr.KindOf(err)
	field := ""
	var nerr *nexerr.Error
	if errors.As(err, &nerr) {
		field = nerr.Field
	}

	status := statusFor(kind)
	logging.For(logging.CategoryHTTP).Debug("request failed", zap.String("kind", string(kind)), zap.Error(err))
	writeJSON(w, status, errorBody{Kind: string(kind), Field: field, Error: err.Error()})
}

// statusFor maps a nexerr.Kind to an HTTP status per §7's table.
func statusFor(kind nexerr.Kind) int {
	switch kind {
	case nexerr.InvalidInput, nexerr.InsufficientUnit:
		return http.StatusBadRequest
	case nexerr.UpstreamUnavailable:
		return http.StatusBadGateway
	case nexerr.Timeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
