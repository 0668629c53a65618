package control

// PID holds one axis's backward-Euler PID state (§4.4): integral
// accumulator, previous error for the raw derivative, the filtered
// derivative, and the previous raw (pre-clamp) output feeding anti-windup
// back-calculation.
type PID struct {
	integral   float64
	prevError  float64
	dFiltered  float64
	prevRaw    float64
}

// Step advances the PID by one cycle and returns the raw (unclamped)
// control signal. Proportional, integral, and derivative terms are each
// skipped when their gain is zero, so a P-only or PD-only tuning never
// accumulates integral windup it was never meant to have.
func (p *PID) Step(cfg Config, errVal, dt float64) float64 {
	proportional := cfg.Kp * errVal

	if cfg.Ki != 0 {
		var antiWindup float64
		if cfg.Tt > 0 {
			clamped := clampSym(p.prevRaw, cfg.OutMax)
			antiWindup = (clamped - p.prevRaw) / cfg.Tt
		}
		p.integral += (cfg.Ki*errVal + antiWindup) * dt
	}

	var derivative float64
	if cfg.Kd != 0 {
		var raw float64
		if dt > 0 {
			raw = (errVal - p.prevError) / dt
		}
		if cfg.Tf > 0 {
			p.dFiltered += (dt / (cfg.Tf + dt)) * (raw - p.dFiltered)
			derivative = cfg.Kd * p.dFiltered
		} else {
			derivative = cfg.Kd * raw
		}
	}

	p.prevError = errVal
	raw := proportional + p.integral + derivative
	p.prevRaw = raw
	return raw
}

// Reset clears all persistent state (§4.4 "state reset").
func (p *PID) Reset() { *p = PID{} }

func clampSym(v, limit float64) float64 {
	if limit <= 0 {
		return v
	}
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
