package control

import "math"

// Engine is one axis's complete control-engine state (§4.4): PID,
// disturbance observer, and the notch+lowpass conditioning chain. The
// orchestrator holds one Engine per axis for the process lifetime.
type Engine struct {
	cfg     Config
	pid     PID
	dob     DOB
	notch   Biquad
	lowpass Lowpass

	prevTorque       float64
	notchConfigured  bool
	lastNotchFreq    float64
	lastNotchBW      float64
}

// NewEngine builds an engine from validated config.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// SetConfig updates the engine's tuning in place (used by hot reload,
// §4.6); persistent filter state is left untouched, matching the reload
// scope's "in-place fields: PID gains, velocities" rule.
func (e *Engine) SetConfig(cfg Config) { e.cfg = cfg }

// Step runs one cycle of the control engine for the given input and
// returns the 32-byte output vector (§4.4). It never allocates.
func (e *Engine) Step(in Input) Output {
	cfg := e.cfg

	if cfg.NotchFreqHz != e.lastNotchFreq || cfg.NotchBWHz != e.lastNotchBW {
		e.notch.ConfigureNotch(cfg.NotchFreqHz, cfg.NotchBWHz, in.DT)
		e.lastNotchFreq, e.lastNotchBW = cfg.NotchFreqHz, cfg.NotchBWHz
	}
	e.lowpass.ConfigureCutoff(cfg.LowpassHz)

	positionError := in.TargetPosition - in.ActualPosition
	raw := e.pid.Step(cfg, positionError, in.DT)

	// Signal conditioning order is fixed: notch, then lowpass (FR-102).
	conditioned := e.notch.Process(raw)
	conditioned = e.lowpass.Process(conditioned, in.DT)

	var feedForward float64
	if cfg.Kvff != 0 {
		feedForward += cfg.Kvff * in.TargetVelocity
	}
	if cfg.Friction != 0 {
		feedForward += cfg.Friction * sign(in.TargetVelocity)
	}

	var kaffTerm float64
	if cfg.Kaff != 0 {
		kaffTerm = cfg.Kaff * in.TargetAcceleration
	}
	dobTerm := e.dob.Step(cfg, e.prevTorque, in.ActualVelocity, in.DT)

	torque := clampSym(conditioned+feedForward, cfg.OutMax)
	e.prevTorque = torque

	return Output{
		CalculatedTorque: torque,
		TargetVelocity:   in.TargetVelocity,
		TargetPosition:   in.TargetPosition,
		TorqueOffset:     kaffTerm + dobTerm,
	}
}

// Reset clears all persistent filter/observer state (§4.4 "state reset"):
// called on axis disable, operational-mode change, or CriticalFault.
func (e *Engine) Reset() {
	e.pid.Reset()
	e.dob.Reset()
	e.notch.Reset()
	e.lowpass.Reset()
	e.prevTorque = 0
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Finite reports whether every field of out is a real, finite number.
// Callers use this to detect the NaN/Inf control-engine fault condition
// (§7): the offending axis must be forced into MotionError and its output
// zeroed.
func (o Output) Finite() bool {
	return isFinite(o.CalculatedTorque) && isFinite(o.TargetVelocity) &&
		isFinite(o.TargetPosition) && isFinite(o.TorqueOffset)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
