// Package safety implements the safety engine (§4.5): per-cycle
// peripheral flag evaluation, the per-axis three-category safety-stop
// executor (STO/SS1/SS2), the recovery sequence, and the reduced-speed
// velocity clamp. The stop executor and recovery sequence are modelled as
// explicit step enums with a tick function, in the "coroutine-like flow"
// idiom spec §9 calls for rather than goroutines.
package safety
