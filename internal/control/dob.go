package control

// DOB is one axis's disturbance observer state (§4.4): the previous cycle's
// actual velocity (for the nominal-torque derivative term) and the
// first-order filtered disturbance estimate.
type DOB struct {
	prevVelocity float64
	filtered     float64
	started      bool
}

// Step advances the observer by one cycle. appliedTorque is the torque
// commanded on the previous cycle (the observer estimates the disturbance
// that torque was actually fighting against); it returns the compensation
// term to be added into the axis's torque offset, already negated per
// spec: "Output negates the filtered disturbance."
func (d *DOB) Step(cfg Config, appliedTorque, actualVelocity, dt float64) float64 {
	if cfg.GDOB == 0 {
		return 0
	}
	if !d.started {
		d.prevVelocity = actualVelocity
		d.started = true
	}

	var accel float64
	if dt > 0 {
		accel = (actualVelocity - d.prevVelocity) / dt
	}
	nominal := cfg.Jn*accel + cfg.Bn*actualVelocity
	rawDisturbance := appliedTorque - nominal

	alpha := cfg.GDOB * dt / (1 + cfg.GDOB*dt)
	d.filtered += alpha * (rawDisturbance - d.filtered)

	d.prevVelocity = actualVelocity
	return -d.filtered
}

// Reset clears all persistent state (§4.4 "state reset").
func (d *DOB) Reset() { *d = DOB{} }
