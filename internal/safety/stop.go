package safety

// StopCategory is one of the three safety-stop categories (§4.5), each a
// distinct shutdown shape a peripheral evaluation or operator request may
// demand.
type StopCategory int

const (
	STO StopCategory = iota // Safe Torque Off: immediate disable+brake
	SS1                     // Safe Stop 1: controlled decel, then disable+brake
	SS2                     // Safe Stop 2: controlled decel, then hold torque
)

// StopPhase is the safety-stop executor's step enum (§C.5), carried
// verbatim from the original implementation's StopPhase.
type StopPhase int

const (
	StopIdle StopPhase = iota
	StopDecelerating
	StopWaitingBrake
	StopComplete
)

// StopActionKind names the drive command a Tick emits.
type StopActionKind int

const (
	ActionNone StopActionKind = iota
	ActionDisableAndBrake
	ActionDecelerate
	ActionHoldTorque
)

// StopAction is the command the cycle orchestrator applies to HAL in
// place of normal control-engine output while an axis is stopping (§4.6
// step 6: "For axes in safety-stop, drive the per-axis executor instead").
type StopAction struct {
	Kind   StopActionKind
	Rate   float64 // set for ActionDecelerate
	Torque float64 // set for ActionHoldTorque
}

// StopExecutor drives one axis through its safety-stop sequence (§4.5).
// It is a per-axis, per-stop-request instance: Start begins a new stop,
// Tick advances it once per cycle, and Done reports completion.
type StopExecutor struct {
	category StopCategory
	phase    StopPhase

	cyclesInPhase    uint64
	cyclesSinceStart uint64

	brakeDelayCycles uint64
	maxDecelSafe     float64
	ss2HoldingTorque float64
	timeoutCycles    uint64
}

// NewStopExecutor builds an idle executor with the tunables a Start call
// will use; brakeDelayCycles, maxDecelSafe, ss2HoldingTorque, and
// timeoutCycles come from the axis's and machine's config.
func NewStopExecutor(brakeDelayCycles uint64, maxDecelSafe, ss2HoldingTorque float64, timeoutCycles uint64) *StopExecutor {
	return &StopExecutor{
		phase:            StopIdle,
		brakeDelayCycles: brakeDelayCycles,
		maxDecelSafe:     maxDecelSafe,
		ss2HoldingTorque: ss2HoldingTorque,
		timeoutCycles:    timeoutCycles,
	}
}

// Start begins a new stop sequence of the given category (§4.5): STO
// enters WaitingBrake directly; SS1/SS2 enter Decelerating.
func (e *StopExecutor) Start(category StopCategory) {
	e.category = category
	e.cyclesInPhase = 0
	e.cyclesSinceStart = 0
	switch category {
	case STO:
		e.phase = StopWaitingBrake
	default:
		e.phase = StopDecelerating
	}
}

// Phase reports the executor's current step.
func (e *StopExecutor) Phase() StopPhase { return e.phase }

// Done reports whether the stop sequence has completed.
func (e *StopExecutor) Done() bool { return e.phase == StopComplete }

// Reset re-arms the executor to Idle, ready for the next Start. Called
// once the machine-wide recovery sequence completes (§4.5): a stop that
// was still mid-sequence when recovery clears is not left dangling.
func (e *StopExecutor) Reset() { e.phase = StopIdle }

// Tick advances the executor by one cycle given the axis's current speed
// magnitude, and returns the action to apply this cycle. The global
// safety_stop_timeout forces Complete with DisableAndBrake regardless of
// speed (§4.5).
func (e *StopExecutor) Tick(speed float64) StopAction {
	if e.phase == StopIdle || e.phase == StopComplete {
		return StopAction{Kind: ActionNone}
	}

	e.cyclesSinceStart++
	if e.timeoutCycles > 0 && e.cyclesSinceStart >= e.timeoutCycles {
		e.phase = StopComplete
		return StopAction{Kind: ActionDisableAndBrake}
	}

	switch e.phase {
	case StopDecelerating:
		if absf(speed) > 0.01 {
			return StopAction{Kind: ActionDecelerate, Rate: e.maxDecelSafe}
		}
		if e.category == SS2 {
			e.phase = StopComplete
			return StopAction{Kind: ActionHoldTorque, Torque: e.ss2HoldingTorque}
		}
		e.phase = StopWaitingBrake
		e.cyclesInPhase = 0
		return StopAction{Kind: ActionDisableAndBrake}

	case StopWaitingBrake:
		e.cyclesInPhase++
		if e.cyclesInPhase >= e.brakeDelayCycles {
			e.phase = StopComplete
		}
		return StopAction{Kind: ActionDisableAndBrake}
	}
	return StopAction{Kind: ActionNone}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
