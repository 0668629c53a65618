package axis

// Axis is the Level 3 per-axis container: the six sub-machines plus the
// Level 4 safety flags and Level 5 error bitflags for one physical axis
// (§4.3). The cycle orchestrator owns one Axis per configured axis for
// the process lifetime.
type Axis struct {
	ID uint8

	Power       PowerState
	Motion      MotionState
	Operational OperationalMode
	Coupling    CouplingState
	Gearbox     GearboxState
	Loading     LoadingMode

	SafetyFlags SafetyFlags
	Errors      ErrorState

	// PrePauseTargets holds {target_position, target_velocity,
	// operational_mode} preserved across a safety pause (§4.6 step 3),
	// restored verbatim on resume.
	PrePauseTargets PrePauseTargets
	Paused          bool
}

// PrePauseTargets is the snapshot safety preserves when it pauses an axis
// without releasing its command-source lock (§3 invariant, §4.6 step 3).
type PrePauseTargets struct {
	TargetPosition float64
	TargetVelocity float64
	Operational    OperationalMode
}

// NewAxis builds a freshly powered-down axis with default sub-machine
// states and no safety flags set — callers must run peripheral evaluation
// (§4.5) before any motion is permitted.
func NewAxis(id uint8) *Axis {
	return &Axis{ID: id}
}

// IsCoupledSlave reports whether the axis currently tracks a master
// (§4.3: operational mode changes are rejected for a coupled slave).
func (a *Axis) IsCoupledSlave() bool {
	return a.Coupling == SlaveCoupled || a.Coupling == SlaveModulated || a.Coupling == WaitingSync
}

// Pause preserves the axis's current command targets and marks it paused
// (§4.6 step 3: "Safety has unconditional override ... preserve
// pre_pause_targets").
func (a *Axis) Pause(targetPosition, targetVelocity float64) {
	if a.Paused {
		return
	}
	a.PrePauseTargets = PrePauseTargets{
		TargetPosition: targetPosition,
		TargetVelocity: targetVelocity,
		Operational:    a.Operational,
	}
	a.Paused = true
}

// Resume restores the preserved targets and clears the paused flag,
// returning the restored values for the caller to reapply to its command
// buffers.
func (a *Axis) Resume() (targetPosition, targetVelocity float64, ok bool) {
	if !a.Paused {
		return 0, 0, false
	}
	a.Paused = false
	return a.PrePauseTargets.TargetPosition, a.PrePauseTargets.TargetVelocity, true
}
