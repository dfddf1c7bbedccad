// Package estimator drives the per-diem estimate lifecycle: an advisory
// preview computed locally plus the authoritative server calculation,
// with idle/loading/done/stale states and cancel-then-replace semantics
// for the in-flight request.
package estimator

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/centralviagens/viagens/internal/diarias"
	"github.com/centralviagens/viagens/internal/domain/workflow"
)

// Inputs are the contributing inputs of an estimate: the valid
// destinations, the trip interval and the traveler count.
type Inputs struct {
	Destinos   []diarias.Destino
	Markers    []diarias.PeriodMarker
	Saida      time.Time
	Chegada    time.Time
	Servidores int
}

// Calculator performs the authoritative periodized calculation.
type Calculator interface {
	Calcular(ctx context.Context, in Inputs) (*diarias.ResultadoPeriodizado, error)
}

// Estimator holds the estimate state of one form.
type Estimator struct {
	mu      sync.Mutex
	machine workflow.StateMachine
	calc    Calculator
	logger  *zap.Logger

	inputs Inputs
	// version counts input changes; a settle compares it against the
	// version captured at launch to detect drift during loading.
	version  uint64
	inflight context.CancelFunc

	result  *diarias.ResultadoPeriodizado
	lastErr error
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithLogger sets the estimator's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Estimator) { e.logger = logger }
}

// New creates an estimator in the idle state.
func New(calc Calculator, opts ...Option) *Estimator {
	e := &Estimator{calc: calc, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}

	b := workflow.NewBuilder()
	b.Configure(workflow.StateIdle).
		Permit(workflow.TriggerCalculate, workflow.StateLoading).
		Permit(workflow.TriggerInputChanged, workflow.StateIdle)
	b.Configure(workflow.StateLoading).
		Permit(workflow.TriggerSucceed, workflow.StateDone).
		PermitIf(workflow.TriggerFail, workflow.StateStale, func(ctx context.Context) bool {
			return e.result != nil
		}).
		PermitIf(workflow.TriggerFail, workflow.StateIdle, func(ctx context.Context) bool {
			return e.result == nil
		}).
		Permit(workflow.TriggerCalculate, workflow.StateLoading).
		Permit(workflow.TriggerInputChanged, workflow.StateLoading)
	b.Configure(workflow.StateDone).
		Permit(workflow.TriggerInputChanged, workflow.StateStale).
		Permit(workflow.TriggerCalculate, workflow.StateLoading)
	b.Configure(workflow.StateStale).
		Permit(workflow.TriggerCalculate, workflow.StateLoading).
		Permit(workflow.TriggerInputChanged, workflow.StateStale)
	e.machine = b.Build(workflow.StateIdle)

	return e
}

// State returns the current lifecycle state.
func (e *Estimator) State() workflow.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.machine.State()
}

// SetInputs replaces the contributing inputs. Any previously shown result
// becomes stale.
func (e *Estimator) SetInputs(in Inputs) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inputs = in
	e.bumpLocked()
}

// InputChanged marks the current inputs as drifted without replacing
// them. The itinerary pipeline calls this after every leg regeneration.
func (e *Estimator) InputChanged(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bumpLocked()
}

func (e *Estimator) bumpLocked() {
	e.version++
	if err := e.machine.Fire(context.Background(), workflow.TriggerInputChanged); err != nil {
		e.logger.Error("input-changed transition failed", zap.Error(err))
	}
}

// Preview computes the advisory local estimate from the current inputs.
// It never touches the lifecycle state.
func (e *Estimator) Preview() diarias.Resultado {
	e.mu.Lock()
	in := e.inputs
	e.mu.Unlock()

	tipo := diarias.ClassifyAll(in.Destinos)
	return diarias.Calcular(tipo, in.Saida, in.Chegada, in.Servidores)
}

// Result returns the last authoritative result and the last error. The
// result survives failures; State distinguishes fresh (done) from
// outdated (stale).
func (e *Estimator) Result() (*diarias.ResultadoPeriodizado, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result, e.lastErr
}

// Calculate starts the authoritative calculation with the current inputs.
// At most one request is in flight: starting a new one cancels the
// previous, and a superseded response is never applied.
func (e *Estimator) Calculate(ctx context.Context) {
	e.mu.Lock()
	if e.inflight != nil {
		e.inflight()
	}
	cctx, cancel := context.WithCancel(ctx)
	e.inflight = cancel
	launched := e.version
	in := e.inputs
	if err := e.machine.Fire(context.Background(), workflow.TriggerCalculate); err != nil {
		e.logger.Error("calculate transition failed", zap.Error(err))
	}
	e.mu.Unlock()

	go func() {
		res, err := e.calc.Calcular(cctx, in)
		e.settle(cctx, launched, res, err)
	}()
}

func (e *Estimator) settle(ctx context.Context, launched uint64, res *diarias.ResultadoPeriodizado, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Cancelled means a newer request replaced this one; drop it.
	if ctx.Err() != nil {
		return
	}
	e.inflight = nil

	if err != nil {
		e.lastErr = err
		if ferr := e.machine.Fire(context.Background(), workflow.TriggerFail); ferr != nil {
			e.logger.Error("fail transition failed", zap.Error(ferr))
		}
		return
	}

	e.result = res
	e.lastErr = nil
	if ferr := e.machine.Fire(context.Background(), workflow.TriggerSucceed); ferr != nil {
		e.logger.Error("succeed transition failed", zap.Error(ferr))
	}

	// Inputs drifted while this request was in flight: the result is
	// applied but immediately marked outdated.
	if e.version != launched {
		if ferr := e.machine.Fire(context.Background(), workflow.TriggerInputChanged); ferr != nil {
			e.logger.Error("stale transition failed", zap.Error(ferr))
		}
	}
}
