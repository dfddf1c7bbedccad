package workflow

import (
	"context"
	"errors"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		expected bool
	}{
		{"idle", StateIdle, true},
		{"loading", StateLoading, true},
		{"done", StateDone, true},
		{"stale", StateStale, true},
		{"invalid state", State("INVALID"), false},
		{"empty state", State(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.expected {
				t.Errorf("State.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestState_String(t *testing.T) {
	if got := StateLoading.String(); got != "LOADING" {
		t.Errorf("State.String() = %v, want %v", got, "LOADING")
	}
}

func TestTrigger_String(t *testing.T) {
	if got := TriggerCalculate.String(); got != "CALCULATE" {
		t.Errorf("Trigger.String() = %v, want %v", got, "CALCULATE")
	}
}

func TestBuilder_Configure(t *testing.T) {
	builder := NewBuilder()

	config := builder.Configure(StateIdle)
	if config == nil {
		t.Fatal("Configure() returned nil")
	}

	// Configuring the same state again returns the same config.
	config2 := builder.Configure(StateIdle)
	if config != config2 {
		t.Error("Configure() should return same config for same state")
	}
}

func TestBuilder_ConfigurePanicsOnInvalidState(t *testing.T) {
	builder := NewBuilder()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Configure() should panic on invalid state")
		}
	}()

	builder.Configure(State("INVALID"))
}

func TestBuilder_BuildPanicsOnInvalidInitialState(t *testing.T) {
	builder := NewBuilder()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Build() should panic on invalid initial state")
		}
	}()

	builder.Build(State("INVALID"))
}

func TestStateConfiguration_Permit(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StateIdle).
		Permit(TriggerCalculate, StateLoading)

	machine := builder.Build(StateIdle)

	if !machine.CanFire(TriggerCalculate) {
		t.Error("CanFire() should return true for permitted trigger")
	}

	if err := machine.Fire(context.Background(), TriggerCalculate); err != nil {
		t.Errorf("Fire() failed: %v", err)
	}

	if machine.State() != StateLoading {
		t.Errorf("State after Fire() = %v, want %v", machine.State(), StateLoading)
	}
}

func TestStateConfiguration_PermitIf_GuardFails(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StateIdle).
		PermitIf(TriggerCalculate, StateLoading, func(ctx context.Context) bool {
			return false
		})

	machine := builder.Build(StateIdle)

	err := machine.Fire(context.Background(), TriggerCalculate)
	if err == nil {
		t.Fatal("Fire() should fail when guard fails")
	}

	if !errors.Is(err, ErrGuardFailed) {
		t.Errorf("Fire() error = %v, want %v", err, ErrGuardFailed)
	}

	if machine.State() != StateIdle {
		t.Errorf("State should remain %v after failed Fire(), got %v", StateIdle, machine.State())
	}
}

func TestStateMachine_Fire_InvalidTransition(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StateIdle).
		Permit(TriggerCalculate, StateLoading)

	machine := builder.Build(StateIdle)

	err := machine.Fire(context.Background(), TriggerSucceed)
	if err == nil {
		t.Fatal("Fire() should fail for invalid transition")
	}

	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Fire() error = %v, want %v", err, ErrInvalidTransition)
	}

	if machine.State() != StateIdle {
		t.Errorf("State should remain %v after failed Fire(), got %v", StateIdle, machine.State())
	}
}

func TestStateMachine_PermittedTriggers(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StateLoading).
		Permit(TriggerSucceed, StateDone).
		Permit(TriggerFail, StateIdle)

	machine := builder.Build(StateLoading)

	triggers := machine.PermittedTriggers()
	if len(triggers) != 2 {
		t.Errorf("PermittedTriggers() returned %d triggers, want 2", len(triggers))
	}
}

func TestStateMachine_PermittedTriggers_NoConfiguration(t *testing.T) {
	builder := NewBuilder()
	machine := builder.Build(StateIdle)

	triggers := machine.PermittedTriggers()
	if len(triggers) != 0 {
		t.Errorf("PermittedTriggers() returned %d triggers, want 0", len(triggers))
	}
}

func TestStateMachine_Immutability(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StateIdle).
		Permit(TriggerCalculate, StateLoading)

	machine1 := builder.Build(StateIdle)
	machine2 := builder.Build(StateIdle)

	if err := machine1.Fire(context.Background(), TriggerCalculate); err != nil {
		t.Errorf("Fire() failed: %v", err)
	}

	if machine2.State() != StateIdle {
		t.Errorf("machine2 state = %v, want %v (machines should be independent)", machine2.State(), StateIdle)
	}
}

func TestStateMachine_EstimateLifecycle(t *testing.T) {
	// Full lifecycle: idle, calculation, result shown, inputs drift,
	// recalculation.
	builder := NewBuilder()

	builder.Configure(StateIdle).
		Permit(TriggerCalculate, StateLoading)

	builder.Configure(StateLoading).
		Permit(TriggerSucceed, StateDone).
		Permit(TriggerFail, StateIdle).
		Permit(TriggerInputChanged, StateLoading)

	builder.Configure(StateDone).
		Permit(TriggerInputChanged, StateStale).
		Permit(TriggerCalculate, StateLoading)

	builder.Configure(StateStale).
		Permit(TriggerCalculate, StateLoading).
		Permit(TriggerInputChanged, StateStale)

	machine := builder.Build(StateIdle)

	steps := []struct {
		trigger       Trigger
		expectedState State
	}{
		{TriggerCalculate, StateLoading},
		{TriggerSucceed, StateDone},
		{TriggerInputChanged, StateStale},
		{TriggerCalculate, StateLoading},
		{TriggerFail, StateIdle},
	}

	for i, step := range steps {
		if err := machine.Fire(context.Background(), step.trigger); err != nil {
			t.Errorf("Step %d: Fire(%v) failed: %v", i, step.trigger, err)
		}

		if machine.State() != step.expectedState {
			t.Errorf("Step %d: State after Fire(%v) = %v, want %v", i, step.trigger, machine.State(), step.expectedState)
		}
	}
}
