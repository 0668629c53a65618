package safety

import (
	"testing"

	"github.com/evo-automation/evo/internal/axis"
)

func TestEvaluatePeripheralsAllOK(t *testing.T) {
	f := EvaluatePeripherals(PeripheralInputs{
		TailstockOK: true, LockPinOK: true, BrakeOK: true, GuardOK: true,
		LimitSwitchOK: true, GearboxOK: true,
		Position: 0, Referenced: false,
	})
	if !f.OK() {
		t.Fatalf("expected all flags OK, got %08b", f)
	}
}

func TestEvaluatePeripheralsSoftLimitIgnoredUntilReferenced(t *testing.T) {
	f := EvaluatePeripherals(PeripheralInputs{
		TailstockOK: true, LockPinOK: true, BrakeOK: true, GuardOK: true,
		LimitSwitchOK: true, GearboxOK: true,
		Position: 1000, SoftLimitMin: -1, SoftLimitMax: 1, Referenced: false,
	})
	if !f.Has(axis.FlagSoftLimitOK) {
		t.Fatal("soft limit must read OK when axis is not yet referenced")
	}
}

func TestEvaluatePeripheralsSoftLimitTripsOnceReferenced(t *testing.T) {
	f := EvaluatePeripherals(PeripheralInputs{
		TailstockOK: true, LockPinOK: true, BrakeOK: true, GuardOK: true,
		LimitSwitchOK: true, GearboxOK: true,
		Position: 1000, SoftLimitMin: -1, SoftLimitMax: 1, Referenced: true,
	})
	if f.Has(axis.FlagSoftLimitOK) {
		t.Fatal("soft limit must trip once referenced and out of range")
	}
}

func TestEvaluatePeripheralsMotionEnableOnlyRequiredIfConfigured(t *testing.T) {
	f := EvaluatePeripherals(PeripheralInputs{
		TailstockOK: true, LockPinOK: true, BrakeOK: true, GuardOK: true,
		LimitSwitchOK: true, GearboxOK: true,
		HasEnableInput: false, MotionEnableOK: false,
	})
	if !f.Has(axis.FlagMotionEnableOK) {
		t.Fatal("motion-enable flag must default OK when no enable input is configured")
	}

	f = EvaluatePeripherals(PeripheralInputs{
		TailstockOK: true, LockPinOK: true, BrakeOK: true, GuardOK: true,
		LimitSwitchOK: true, GearboxOK: true,
		HasEnableInput: true, MotionEnableOK: false,
	})
	if f.Has(axis.FlagMotionEnableOK) {
		t.Fatal("motion-enable flag must reflect the DI once an enable input is configured")
	}
}

func TestStopExecutorSTO(t *testing.T) {
	e := NewStopExecutor(3, 0, 0, 0)
	e.Start(STO)
	if e.Phase() != StopWaitingBrake {
		t.Fatalf("STO must enter WaitingBrake immediately, got %v", e.Phase())
	}
	for i := 0; i < 2; i++ {
		a := e.Tick(0)
		if a.Kind != ActionDisableAndBrake {
			t.Fatalf("tick %d: expected DisableAndBrake, got %v", i, a.Kind)
		}
		if e.Done() {
			t.Fatalf("tick %d: should not be done before brake delay elapses", i)
		}
	}
	a := e.Tick(0)
	if a.Kind != ActionDisableAndBrake || !e.Done() {
		t.Fatalf("expected Done after brake delay, got action=%v done=%v", a.Kind, e.Done())
	}
}

func TestStopExecutorSS1(t *testing.T) {
	e := NewStopExecutor(2, 5.0, 0, 0)
	e.Start(SS1)
	if e.Phase() != StopDecelerating {
		t.Fatalf("SS1 must enter Decelerating, got %v", e.Phase())
	}

	a := e.Tick(2.0)
	if a.Kind != ActionDecelerate || a.Rate != 5.0 {
		t.Fatalf("expected Decelerate(5.0) while moving, got %v", a)
	}

	a = e.Tick(0.001)
	if a.Kind != ActionDisableAndBrake || e.Phase() != StopWaitingBrake {
		t.Fatalf("expected transition to WaitingBrake once stopped, got action=%v phase=%v", a.Kind, e.Phase())
	}

	e.Tick(0)
	a = e.Tick(0)
	if !e.Done() {
		t.Fatal("expected SS1 to complete after brake delay")
	}
}

func TestStopExecutorSS2HoldsTorque(t *testing.T) {
	e := NewStopExecutor(10, 3.0, 42.0, 0)
	e.Start(SS2)

	a := e.Tick(1.0)
	if a.Kind != ActionDecelerate {
		t.Fatalf("expected Decelerate while moving, got %v", a.Kind)
	}

	a = e.Tick(0)
	if a.Kind != ActionHoldTorque || a.Torque != 42.0 {
		t.Fatalf("expected HoldTorque(42.0) once stopped, got %v", a)
	}
	if !e.Done() {
		t.Fatal("SS2 must complete as soon as it holds torque")
	}
}

func TestStopExecutorGlobalTimeoutForcesComplete(t *testing.T) {
	e := NewStopExecutor(1000, 1.0, 0, 3)
	e.Start(SS1)

	e.Tick(10.0)
	e.Tick(10.0)
	a := e.Tick(10.0)
	if a.Kind != ActionDisableAndBrake || !e.Done() {
		t.Fatalf("expected timeout to force Complete with DisableAndBrake, got action=%v done=%v", a.Kind, e.Done())
	}
}

func TestStopExecutorIdleIsNoop(t *testing.T) {
	e := NewStopExecutor(5, 1.0, 0, 0)
	a := e.Tick(10.0)
	if a.Kind != ActionNone {
		t.Fatalf("expected no-op before Start, got %v", a.Kind)
	}
}

func TestRecoveryManagerFullSequenceWithAuthorization(t *testing.T) {
	m := NewRecoveryManager(true)

	if s := m.Tick(RecoveryInputs{}); s != RecoveryIdle {
		t.Fatalf("expected to stay Idle with no safety stop active, got %v", s)
	}
	if s := m.Tick(RecoveryInputs{SafetyStopActive: true}); s != RecoveryWaitingReset {
		t.Fatalf("expected WaitingReset, got %v", s)
	}
	if s := m.Tick(RecoveryInputs{SafetyStopActive: true, ResetPressed: true}); s != RecoveryWaitingFlagsClear {
		t.Fatalf("expected WaitingFlagsClear, got %v", s)
	}
	if s := m.Tick(RecoveryInputs{AllAxisFlagsOK: true}); s != RecoveryWaitingAuthorization {
		t.Fatalf("expected WaitingAuthorization since manager requires auth, got %v", s)
	}
	if s := m.Tick(RecoveryInputs{AllAxisFlagsOK: true, OperatorAuthorize: false}); s != RecoveryWaitingAuthorization {
		t.Fatalf("expected to stay WaitingAuthorization without operator authorization, got %v", s)
	}
	if s := m.Tick(RecoveryInputs{AllAxisFlagsOK: true, OperatorAuthorize: true}); s != RecoveryComplete {
		t.Fatalf("expected Complete once authorized, got %v", s)
	}

	m.Reset()
	if m.Step() != RecoveryIdle {
		t.Fatal("expected Reset to re-arm to Idle")
	}
}

func TestRecoveryManagerSkipsAuthorizationWhenNotRequired(t *testing.T) {
	m := NewRecoveryManager(false)
	m.Tick(RecoveryInputs{SafetyStopActive: true})
	m.Tick(RecoveryInputs{SafetyStopActive: true, ResetPressed: true})
	s := m.Tick(RecoveryInputs{AllAxisFlagsOK: true})
	if s != RecoveryComplete {
		t.Fatalf("expected Complete without authorization step, got %v", s)
	}
}

func TestClampVelocity(t *testing.T) {
	if v := ClampVelocity(5.0, 2.0); v != 2.0 {
		t.Errorf("ClampVelocity(5.0, 2.0) = %v, want 2.0", v)
	}
	if v := ClampVelocity(-5.0, 2.0); v != -2.0 {
		t.Errorf("ClampVelocity(-5.0, 2.0) = %v, want -2.0", v)
	}
	if v := ClampVelocity(1.0, 2.0); v != 1.0 {
		t.Errorf("ClampVelocity(1.0, 2.0) = %v, want 1.0 unchanged", v)
	}
	if v := ClampVelocity(100.0, 0); v != 100.0 {
		t.Errorf("ClampVelocity with zero limit must disable clamping, got %v", v)
	}
}
