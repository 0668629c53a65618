package safety

// RecoveryStep is the recovery sequence's step enum (§C.5), carried
// verbatim from the original implementation's RecoveryStep.
type RecoveryStep int

const (
	RecoveryIdle RecoveryStep = iota
	RecoveryWaitingReset
	RecoveryWaitingFlagsClear
	RecoveryWaitingAuthorization
	RecoveryComplete
)

// RecoveryInputs bundles the per-cycle operator/system signals the
// recovery sequence consumes (§4.5).
type RecoveryInputs struct {
	SafetyStopActive  bool
	ResetPressed      bool // reset DI, resolved through the I/O role registry
	AllAxisFlagsOK    bool // every axis's Level 4 safety flags OK (§4.3)
	OperatorAuthorize bool
}

// RecoveryManager drives the machine-wide recovery sequence: Idle ->
// WaitingReset (once a safety-stop is active) -> WaitingFlagsClear (once
// the reset DI is pressed) -> [WaitingAuthorization, if the machine
// requires operator authorization] -> Complete, once every axis's safety
// flags are OK and (if required) an operator has authorized the resume
// (§4.5). Completion is consumed by the caller via Reset, which re-arms
// the sequence and is expected to drive axis.TransitionSafety(SafetyStop,
// Recovery).
type RecoveryManager struct {
	step               RecoveryStep
	needsAuthorization bool
}

// NewRecoveryManager builds an idle manager. needsAuthorization mirrors
// MachineConfig.RecoveryNeedsAuth.
func NewRecoveryManager(needsAuthorization bool) *RecoveryManager {
	return &RecoveryManager{step: RecoveryIdle, needsAuthorization: needsAuthorization}
}

// Step reports the sequence's current step.
func (m *RecoveryManager) Step() RecoveryStep { return m.step }

// Tick advances the sequence by one cycle and returns the resulting step.
func (m *RecoveryManager) Tick(in RecoveryInputs) RecoveryStep {
	switch m.step {
	case RecoveryIdle:
		if in.SafetyStopActive {
			m.step = RecoveryWaitingReset
		}
	case RecoveryWaitingReset:
		if in.ResetPressed {
			m.step = RecoveryWaitingFlagsClear
		}
	case RecoveryWaitingFlagsClear:
		if in.AllAxisFlagsOK {
			if m.needsAuthorization {
				m.step = RecoveryWaitingAuthorization
			} else {
				m.step = RecoveryComplete
			}
		}
	case RecoveryWaitingAuthorization:
		if in.AllAxisFlagsOK && in.OperatorAuthorize {
			m.step = RecoveryComplete
		}
	case RecoveryComplete:
		// holds until the caller consumes completion via Reset.
	}
	return m.step
}

// Reset re-arms the sequence for the next safety-stop, intended to be
// called once the caller has driven axis.TransitionSafety(SafetyStop,
// Recovery) in response to RecoveryComplete.
func (m *RecoveryManager) Reset() { m.step = RecoveryIdle }
