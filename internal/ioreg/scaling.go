package ioreg

// ScalingPreset names a common analog curve shape (§4.7).
type ScalingPreset int

const (
	ScalingCustom ScalingPreset = iota
	ScalingLinear
	ScalingQuadratic
	ScalingCubic
)

// Scaling evaluates the cubic polynomial a*n^3 + b*n^2 + c*n + offset over
// the normalized raw reading n ∈ [0,1] (§4.7). Linear is the special case
// a=b=0, c=1; quadratic and cubic presets are convenience constructors over
// the same polynomial.
type Scaling struct {
	A, B, C, Offset float64
}

// LinearScaling maps n directly onto [offset, offset+gain].
func LinearScaling(gain, offset float64) Scaling {
	return Scaling{C: gain, Offset: offset}
}

// QuadraticScaling applies gain*n^2 + offset.
func QuadraticScaling(gain, offset float64) Scaling {
	return Scaling{B: gain, Offset: offset}
}

// CubicScaling applies gain*n^3 + offset.
func CubicScaling(gain, offset float64) Scaling {
	return Scaling{A: gain, Offset: offset}
}

// Apply evaluates the polynomial at n, clamping n to [0,1] first so a noisy
// ADC reading just outside the rail never extrapolates wildly.
func (s Scaling) Apply(n float64) float64 {
	if n < 0 {
		n = 0
	} else if n > 1 {
		n = 1
	}
	return s.A*n*n*n + s.B*n*n + s.C*n + s.Offset
}
