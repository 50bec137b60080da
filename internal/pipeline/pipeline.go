// Package pipeline orchestrates the four symbolic engines into the
// sequential request flow of §5: summary -> LCA -> characterization ->
// kernel, enforcing a per-request deadline and mapping engine failures to
// the error taxonomy of §7.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pietrocfn02/neXSim-latest/internal/characterize"
	"github.com/pietrocfn02/neXSim-latest/internal/graph"
	"github.com/pietrocfn02/neXSim-latest/internal/kernel"
	"github.com/pietrocfn02/neXSim-latest/internal/lca"
	"github.com/pietrocfn02/neXSim-latest/internal/logging"
	"github.com/pietrocfn02/neXSim-latest/internal/model"
	"github.com/pietrocfn02/neXSim-latest/internal/nexerr"
	"github.com/pietrocfn02/neXSim-latest/internal/relational"
	"github.com/pietrocfn02/neXSim-latest/internal/summary"

	"go.uber.org/zap"
)

// Pipeline wires the four engines over one graph.Access and a shared
// predicate spelling, matching §9's "explicit dependency injection" in
// place of global driver singletons.
type Pipeline struct {
	summary  *summary.Engine
	lca      *lca.Engine
	spelling model.Spelling
	recorder relational.Recorder
	timeout  time.Duration
}

// New constructs a Pipeline. recorder may be nil to disable computation-time
// auditing.
func New(access graph.Access, spelling model.Spelling, timeout time.Duration, recorder relational.Recorder) *Pipeline {
	return &Pipeline{
		summary:  summary.New(access, spelling),
		lca:      lca.New(access, spelling),
		spelling: spelling,
		recorder: recorder,
		timeout:  timeout,
	}
}

// ValidateUnit parses and validates raw identifiers, wrapping failures as
// nexerr.InvalidInput (§7: "identifier fails regex; unit missing").
func ValidateUnit(raw []string) ([]model.EntityId, error) {
	unit, err := model.ValidateUnit(raw)
	if err != nil {
		return nil, nexerr.WithField(nexerr.InvalidInput, "unit", err)
	}
	return unit, nil
}

// Summary runs the Summary Engine stage (populates NeXSimResponse.Summaries).
func (p *Pipeline) Summary(ctx context.Context, unit []model.EntityId) (map[model.EntityId]model.Summary, error) {
	timer := logging.StartTimer(logging.CategorySummary, "summary")
	defer timer.Stop()
	return p.summary.FullSummary(ctx, unit)
}

// LCA runs the LCA Engine stage.
func (p *Pipeline) LCA(ctx context.Context, unit []model.EntityId) ([]model.Atom, error) {
	return p.lca.LCA(ctx, unit)
}

// Characterize runs the Characterization Engine over a response's populated
// summaries, in unit order.
func (p *Pipeline) Characterize(ctx context.Context, unit []model.EntityId, summaries map[model.EntityId]model.Summary) ([]model.Atom, error) {
	timer := logging.StartTimer(logging.CategoryCharacterize, "characterize")
	defer timer.Stop()

	ordered := make([]model.Summary, 0, len(unit))
	for _, e := range unit {
		s, ok := summaries[e]
		if !ok {
			return nil, nexerr.New(nexerr.InvalidInput, fmt.Errorf("pipeline: no summary for unit member %s", e))
		}
		ordered = append(ordered, s)
	}
	return characterize.Characterize(unit, ordered)
}

// Kernel runs the Kernel Rewriter stage, requiring populated summaries and lca.
func (p *Pipeline) Kernel(ctx context.Context, unit []model.EntityId, summaries map[model.EntityId]model.Summary, lcaAtoms []model.Atom) ([]model.Atom, error) {
	timer := logging.StartTimer(logging.CategoryKernel, "kernel")
	defer timer.Stop()
	return kernel.KernelExplanation(unit, summaries, lcaAtoms, p.spelling)
}

// RunFull executes the complete sequential pipeline of §5 for rawUnit and
// returns a fully populated response. An empty rawUnit is not valid input
// here; callers wanting the §7 "Empty unit!" short circuit should check
// len(rawUnit) == 0 themselves before calling RunFull (the report subcommand
// and the /report handler do).
func (p *Pipeline) RunFull(ctx context.Context, rawUnit []string) (*model.NeXSimResponse, error) {
	requestID := uuid.New().String()
	log := logging.For(logging.CategoryBoot).With(zap.String("request_id", requestID))

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	unit, err := ValidateUnit(rawUnit)
	if err != nil {
		log.Debug("invalid unit", zap.Error(err))
		return nil, err
	}

	resp := model.NewResponse(unit)
	start := time.Now()

	summaries, err := p.stageSummary(ctx, resp)
	if err != nil {
		return nil, p.finish(ctx, resp, start, err)
	}

	lcaAtoms, err := p.stageLCA(ctx, resp, unit)
	if err != nil {
		return nil, p.finish(ctx, resp, start, err)
	}

	charAtoms, err := p.stageCharacterize(ctx, resp, unit, summaries)
	if err != nil {
		return nil, p.finish(ctx, resp, start, err)
	}

	kernelAtoms, err := p.stageKernel(ctx, resp, unit, summaries, lcaAtoms)
	if err != nil {
		return nil, p.finish(ctx, resp, start, err)
	}

	resp.Characterization = charAtoms
	resp.KernelExplanation = kernelAtoms
	return resp, p.finish(ctx, resp, start, nil)
}

func (p *Pipeline) stageSummary(ctx context.Context, resp *model.NeXSimResponse) (map[model.EntityId]model.Summary, error) {
	stageStart := time.Now()
	summaries, err := p.Summary(ctx, resp.Unit)
	resp.RecordTiming("summary", time.Since(stageStart))
	if err != nil {
		return nil, mapStageErr(ctx, err)
	}
	resp.Summaries = summaries
	return summaries, nil
}

func (p *Pipeline) stageLCA(ctx context.Context, resp *model.NeXSimResponse, unit []model.EntityId) ([]model.Atom, error) {
	stageStart := time.Now()
	atoms, err := p.LCA(ctx, unit)
	resp.RecordTiming("lca", time.Since(stageStart))
	if err != nil {
		return nil, mapStageErr(ctx, err)
	}
	resp.LCA = atoms
	return atoms, nil
}

func (p *Pipeline) stageCharacterize(ctx context.Context, resp *model.NeXSimResponse, unit []model.EntityId, summaries map[model.EntityId]model.Summary) ([]model.Atom, error) {
	stageStart := time.Now()
	atoms, err := p.Characterize(ctx, unit, summaries)
	resp.RecordTiming("characterize", time.Since(stageStart))
	if err != nil {
		return nil, mapStageErr(ctx, err)
	}
	return atoms, nil
}

func (p *Pipeline) stageKernel(ctx context.Context, resp *model.NeXSimResponse, unit []model.EntityId, summaries map[model.EntityId]model.Summary, lcaAtoms []model.Atom) ([]model.Atom, error) {
	stageStart := time.Now()
	atoms, err := p.Kernel(ctx, unit, summaries, lcaAtoms)
	resp.RecordTiming("kernel", time.Since(stageStart))
	if err != nil {
		return nil, mapStageErr(ctx, err)
	}
	return atoms, nil
}

// mapStageErr surfaces a Timeout if the request deadline fired during the
// stage, even when the stage's own error doesn't say so (§5's cancellation
// contract: a deadline firing mid-stage always reads as Timeout).
func mapStageErr(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nexerr.New(nexerr.Timeout, ctx.Err())
	}
	return err
}

// finish records computation times to the relational recorder, if any, and
// returns err unchanged (a convenience for the RunFull return chain).
func (p *Pipeline) finish(ctx context.Context, resp *model.NeXSimResponse, start time.Time, err error) error {
	if p.recorder == nil {
		return err
	}
	kind := ""
	if err != nil {
		kind = string(nexerr.KindOf(err))
	}
	// The request ctx may already be past its deadline; detach from it so
	// timed-out runs are still recorded.
	recErr := p.recorder.RecordComputation(context.WithoutCancel(ctx), relational.Computation{
		Unit:       resp.Unit,
		Duration:   time.Since(start),
		ErrorKind:  kind,
		StageTimes: resp.ComputationTimes,
	})
	if recErr != nil {
		logging.For(logging.CategoryRelational).Warn("failed to record computation", zap.Error(recErr))
	}
	return err
}
