package estimator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centralviagens/viagens/internal/diarias"
	"github.com/centralviagens/viagens/internal/domain/workflow"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

type stubCalc struct {
	fn func(ctx context.Context, in Inputs) (*diarias.ResultadoPeriodizado, error)
}

func (s *stubCalc) Calcular(ctx context.Context, in Inputs) (*diarias.ResultadoPeriodizado, error) {
	return s.fn(ctx, in)
}

// blockingCalc parks every call until the test releases it, echoing the
// traveler count back so the test can tell which request produced a
// result.
type blockingCalc struct {
	started chan context.Context
	release chan error
}

func newBlockingCalc() *blockingCalc {
	return &blockingCalc{
		started: make(chan context.Context, 4),
		release: make(chan error, 4),
	}
}

func (b *blockingCalc) Calcular(ctx context.Context, in Inputs) (*diarias.ResultadoPeriodizado, error) {
	b.started <- ctx
	if err := <-b.release; err != nil {
		return nil, err
	}
	return &diarias.ResultadoPeriodizado{
		Totais: diarias.Totais{QuantidadeServidores: in.Servidores},
	}, nil
}

func tripInputs(servidores int) Inputs {
	saida, _ := time.Parse("2006-01-02 15:04", "2024-03-01 08:00")
	return Inputs{
		Destinos:   []diarias.Destino{{Cidade: "Brasília", UF: "DF"}},
		Saida:      saida,
		Chegada:    saida.Add(25 * time.Hour),
		Servidores: servidores,
	}
}

func TestEstimator_StartsIdle(t *testing.T) {
	e := New(&stubCalc{})
	assert.Equal(t, workflow.StateIdle, e.State())

	e.SetInputs(tripInputs(1))
	assert.Equal(t, workflow.StateIdle, e.State(), "input changes in idle stay idle")
}

func TestPreview(t *testing.T) {
	e := New(&stubCalc{})
	e.SetInputs(tripInputs(2))

	preview := e.Preview()
	assert.Equal(t, 1, preview.Dias100)
	assert.Equal(t, "936,24", diarias.FormatValor(preview.ValorTotal))
	assert.Equal(t, workflow.StateIdle, e.State(), "preview never touches the lifecycle")
}

func TestCalculate_Success(t *testing.T) {
	e := New(&stubCalc{fn: func(ctx context.Context, in Inputs) (*diarias.ResultadoPeriodizado, error) {
		return &diarias.ResultadoPeriodizado{Totais: diarias.Totais{TotalValor: "936,24"}}, nil
	}})
	e.SetInputs(tripInputs(2))

	e.Calculate(context.Background())

	require.Eventually(t, func() bool {
		return e.State() == workflow.StateDone
	}, waitFor, tick)

	res, err := e.Result()
	require.NoError(t, err)
	assert.Equal(t, "936,24", res.Totais.TotalValor)
}

func TestInputChangeAfterDone_MarksStale(t *testing.T) {
	e := New(&stubCalc{fn: func(ctx context.Context, in Inputs) (*diarias.ResultadoPeriodizado, error) {
		return &diarias.ResultadoPeriodizado{}, nil
	}})

	e.Calculate(context.Background())
	require.Eventually(t, func() bool { return e.State() == workflow.StateDone }, waitFor, tick)

	e.InputChanged(context.Background())
	assert.Equal(t, workflow.StateStale, e.State())

	res, err := e.Result()
	require.NoError(t, err)
	assert.NotNil(t, res, "stale keeps the last good result visible")
}

func TestCalculate_FailureWithoutPriorResult_RevertsToIdle(t *testing.T) {
	e := New(&stubCalc{fn: func(ctx context.Context, in Inputs) (*diarias.ResultadoPeriodizado, error) {
		return nil, errors.New("boom")
	}})

	e.Calculate(context.Background())

	require.Eventually(t, func() bool {
		return e.State() == workflow.StateIdle
	}, waitFor, tick)

	res, err := e.Result()
	assert.Nil(t, res)
	assert.Error(t, err)
}

func TestCalculate_FailureWithPriorResult_LandsStale(t *testing.T) {
	fail := false
	e := New(&stubCalc{fn: func(ctx context.Context, in Inputs) (*diarias.ResultadoPeriodizado, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return &diarias.ResultadoPeriodizado{Totais: diarias.Totais{TotalValor: "290,55"}}, nil
	}})

	e.Calculate(context.Background())
	require.Eventually(t, func() bool { return e.State() == workflow.StateDone }, waitFor, tick)

	fail = true
	e.Calculate(context.Background())

	require.Eventually(t, func() bool {
		return e.State() == workflow.StateStale
	}, waitFor, tick)

	res, err := e.Result()
	assert.Error(t, err)
	require.NotNil(t, res, "failure preserves the last good result")
	assert.Equal(t, "290,55", res.Totais.TotalValor)
}

func TestCalculate_CancelThenReplace(t *testing.T) {
	calc := newBlockingCalc()
	e := New(calc)

	e.SetInputs(tripInputs(1))
	e.Calculate(context.Background())
	ctx1 := <-calc.started

	e.SetInputs(tripInputs(2))
	e.Calculate(context.Background())
	<-calc.started

	assert.Error(t, ctx1.Err(), "starting a new request cancels the previous one")

	calc.release <- nil
	calc.release <- nil

	require.Eventually(t, func() bool {
		res, _ := e.Result()
		return res != nil && res.Totais.QuantidadeServidores == 2
	}, waitFor, tick)
	assert.Equal(t, workflow.StateDone, e.State(), "only the replacement settle is applied")
}

func TestCalculate_DriftDuringLoading_SettlesStale(t *testing.T) {
	calc := newBlockingCalc()
	e := New(calc)

	e.SetInputs(tripInputs(1))
	e.Calculate(context.Background())
	<-calc.started

	// Inputs change while the request is in flight; the request is not
	// interrupted but its settle must land as stale.
	e.InputChanged(context.Background())
	assert.Equal(t, workflow.StateLoading, e.State())

	calc.release <- nil

	require.Eventually(t, func() bool {
		return e.State() == workflow.StateStale
	}, waitFor, tick)

	res, err := e.Result()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Totais.QuantidadeServidores, "the drifted settle is still applied")
}
