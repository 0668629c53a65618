package axis

import "testing"

func TestTransitionMachineHappyPath(t *testing.T) {
	s, err := TransitionMachine(Stopped, PowerOn)
	if err != nil || s != Starting {
		t.Fatalf("PowerOn from Stopped = %s, %v, want Starting, nil", s, err)
	}
	s, err = TransitionMachine(s, InitComplete)
	if err != nil || s != Idle {
		t.Fatalf("InitComplete from Starting = %s, %v, want Idle, nil", s, err)
	}
}

func TestTransitionMachineCriticalFaultUnconditional(t *testing.T) {
	for _, from := range []MachineState{Stopped, Starting, Idle, Manual, Active, Service} {
		s, err := TransitionMachine(from, CriticalFault)
		if err != nil || s != SystemError {
			t.Errorf("CriticalFault from %s = %s, %v, want SystemError, nil", from, s, err)
		}
	}
}

func TestTransitionMachineServiceAuthorizeRejectedFromSystemError(t *testing.T) {
	_, err := TransitionMachine(SystemError, ServiceAuthorize)
	if err == nil {
		t.Fatal("expected ServiceAuthorize to be rejected from SystemError")
	}
}

func TestTransitionMachineRejectsIllegalEdge(t *testing.T) {
	_, err := TransitionMachine(Stopped, RecipeStart)
	if err == nil {
		t.Fatal("expected RecipeStart from Stopped to be rejected")
	}
}

func TestMotionPermitted(t *testing.T) {
	for _, s := range []MachineState{Manual, Active, Service} {
		if !MotionPermitted(s) {
			t.Errorf("MotionPermitted(%s) = false, want true", s)
		}
	}
	for _, s := range []MachineState{Stopped, Starting, Idle, SystemError} {
		if MotionPermitted(s) {
			t.Errorf("MotionPermitted(%s) = true, want false", s)
		}
	}
}

func TestTransitionSafetyTripUnconditional(t *testing.T) {
	for _, from := range []SafetyState{Safe, SafeReducedSpeed, SafetyStop} {
		s, err := TransitionSafety(from, Trip)
		if err != nil || s != SafetyStop {
			t.Errorf("Trip from %s = %s, %v, want SafetyStop, nil", from, s, err)
		}
	}
}

func TestTransitionSafetyRecoveryFromStop(t *testing.T) {
	s, err := TransitionSafety(SafetyStop, Recovery)
	if err != nil || s != Safe {
		t.Fatalf("Recovery from SafetyStop = %s, %v, want Safe, nil", s, err)
	}
}

func TestTransitionPowerNoBrakeRequiresService(t *testing.T) {
	_, err := TransitionPower(Standby, PowerEnterNoBrake, Idle)
	if err == nil {
		t.Fatal("expected NoBrake rejected outside machine state Service")
	}
	s, err := TransitionPower(Standby, PowerEnterNoBrake, Service)
	if err != nil || s != NoBrake {
		t.Fatalf("NoBrake from Standby+Service = %s, %v, want NoBrake, nil", s, err)
	}
}

func TestTransitionPowerHappyPath(t *testing.T) {
	s, err := TransitionPower(PowerOff, PowerEnable, Idle)
	if err != nil || s != Standby {
		t.Fatalf("PowerEnable = %s, %v, want Standby, nil", s, err)
	}
	s, err = TransitionPower(s, PowerMotionStart, Idle)
	if err != nil || s != MotionPower {
		t.Fatalf("PowerMotionStart = %s, %v, want Motion, nil", s, err)
	}
}

func TestTransitionMotionHappyPath(t *testing.T) {
	s, err := TransitionMotion(Standstill, MotionStartAccel)
	if err != nil || s != Accelerating {
		t.Fatalf("MotionStartAccel = %s, %v, want Accelerating, nil", s, err)
	}
	s, err = TransitionMotion(s, MotionReachedTarget)
	if err != nil || s != ConstantVelocity {
		t.Fatalf("MotionReachedTarget = %s, %v, want ConstantVelocity, nil", s, err)
	}
}

func TestTransitionMotionFaultUnconditional(t *testing.T) {
	for _, from := range []MotionState{Standstill, Accelerating, ConstantVelocity, Decelerating} {
		s, err := TransitionMotion(from, MotionFault)
		if err != nil || s != MotionErrorState {
			t.Errorf("MotionFault from %s = %s, %v, want MotionError, nil", from, s, err)
		}
	}
}

func TestTransitionOperationalRequiresStandstillAndStandby(t *testing.T) {
	_, err := TransitionOperational(OpPosition, OpVelocity, Accelerating, Standby, false)
	if err == nil {
		t.Error("expected rejection when Motion is not Standstill")
	}
	_, err = TransitionOperational(OpPosition, OpVelocity, Standstill, MotionPower, false)
	if err == nil {
		t.Error("expected rejection when Power is not Standby")
	}
	_, err = TransitionOperational(OpPosition, OpVelocity, Standstill, Standby, true)
	if err == nil {
		t.Error("expected rejection for a coupled slave")
	}
	s, err := TransitionOperational(OpPosition, OpVelocity, Standstill, Standby, false)
	if err != nil || s != OpVelocity {
		t.Fatalf("expected clean mode change, got %s, %v", s, err)
	}
}

func TestTransitionCouplingMasterFaultCascadesToDecoupling(t *testing.T) {
	s, err := TransitionCoupling(SlaveCoupled, CouplingMasterFault)
	if err != nil || s != Decoupling {
		t.Fatalf("CouplingMasterFault from SlaveCoupled = %s, %v, want Decoupling, nil", s, err)
	}
	s, err = TransitionCoupling(s, CouplingDecoupleComplete)
	if err != nil || s != Uncoupled {
		t.Fatalf("CouplingDecoupleComplete = %s, %v, want Uncoupled, nil", s, err)
	}
}

func TestTransitionCouplingHappyPath(t *testing.T) {
	s, err := TransitionCoupling(Uncoupled, CouplingRequestSlave)
	if err != nil || s != WaitingSync {
		t.Fatalf("CouplingRequestSlave = %s, %v, want WaitingSync, nil", s, err)
	}
	s, err = TransitionCoupling(s, CouplingSyncAchieved)
	if err != nil || s != SlaveCoupled {
		t.Fatalf("CouplingSyncAchieved = %s, %v, want SlaveCoupled, nil", s, err)
	}
}

func TestTransitionGearboxRequiresStandstill(t *testing.T) {
	_, err := TransitionGearbox(Neutral, GearboxRequestShift, Accelerating)
	if err == nil {
		t.Error("expected gear shift rejected outside Standstill")
	}
	s, err := TransitionGearbox(Neutral, GearboxRequestShift, Standstill)
	if err != nil || s != Shifting {
		t.Fatalf("gear shift request = %s, %v, want Shifting, nil", s, err)
	}
}

func TestTransitionGearboxLossDuringMotionIsCritical(t *testing.T) {
	s, err := TransitionGearbox(Gear2, GearboxLostDuringMotion, ConstantVelocity)
	if err != nil || s != GearboxErrorState {
		t.Fatalf("gear loss during motion = %s, %v, want GearboxError, nil", s, err)
	}
}

func TestParseLoadingMode(t *testing.T) {
	if ParseLoadingMode("loading_blocked") != LoadingBlocked {
		t.Error("expected loading_blocked to parse to LoadingBlocked")
	}
	if ParseLoadingMode("") != Production {
		t.Error("expected empty string to default to Production")
	}
}

func TestSafetyFlagsOK(t *testing.T) {
	var f SafetyFlags
	if f.OK() {
		t.Fatal("zero-value flags must not be OK")
	}
	f = f.Set(FlagTailstockOK, true).
		Set(FlagLockPinOK, true).
		Set(FlagBrakeOK, true).
		Set(FlagGuardOK, true).
		Set(FlagLimitSwitchOK, true).
		Set(FlagSoftLimitOK, true).
		Set(FlagMotionEnableOK, true).
		Set(FlagGearboxOK, true)
	if !f.OK() {
		t.Fatal("all eight flags set should be OK")
	}
	f = f.Set(FlagBrakeOK, false)
	if f.OK() {
		t.Fatal("clearing one flag must break OK")
	}
}

func TestErrorStateHighestSeverity(t *testing.T) {
	var e ErrorState
	if e.HighestSeverity() != SeverityDesired {
		t.Errorf("empty ErrorState severity = %v, want SeverityDesired", e.HighestSeverity())
	}
	e.Command = e.Command.Set(CommandErrOutOfRange, true)
	if e.HighestSeverity() != SeverityNeutral {
		t.Errorf("severity = %v, want SeverityNeutral", e.HighestSeverity())
	}
	e.Motion = e.Motion.Set(MotionErrOvertravel, true)
	if e.HighestSeverity() != SeverityCritical {
		t.Errorf("severity = %v, want SeverityCritical after critical bit set", e.HighestSeverity())
	}
}

func TestAxisPauseResume(t *testing.T) {
	a := NewAxis(1)
	a.Operational = OpPosition
	a.Pause(10.0, 2.0)
	if !a.Paused {
		t.Fatal("expected Paused after Pause")
	}

	pos, vel, ok := a.Resume()
	if !ok || pos != 10.0 || vel != 2.0 {
		t.Fatalf("Resume = %v %v %v, want 10.0 2.0 true", pos, vel, ok)
	}
	if a.Paused {
		t.Error("expected Paused cleared after Resume")
	}
}

func TestAxisIsCoupledSlave(t *testing.T) {
	a := NewAxis(1)
	a.Coupling = Master
	if a.IsCoupledSlave() {
		t.Error("Master should not report IsCoupledSlave")
	}
	a.Coupling = SlaveModulated
	if !a.IsCoupledSlave() {
		t.Error("SlaveModulated should report IsCoupledSlave")
	}
}
