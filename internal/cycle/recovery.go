package cycle

import (
	"github.com/evo-automation/evo/internal/axis"
	"github.com/evo-automation/evo/internal/ioreg"
	"github.com/evo-automation/evo/internal/safety"
	"github.com/evo-automation/evo/internal/segments"
)

// driveRecovery advances the recovery sequence (§4.5, §4.6) while the
// machine is in SafetyStop: reset-DI-pressed -> all-axis-flags-OK ->
// (optional) operator-authorization -> Complete. On Complete it returns
// the Level 2 state to Safe and resumes every paused axis's preserved
// pre-pause targets (§8 scenario "safety pause preserves targets").
func (rt *Runtime) driveRecovery(feedback segments.HalFeedbackPayload) {
	if rt.safety != axis.SafetyStop {
		rt.recovery.Reset()
		return
	}

	bank := ioreg.Bank(feedback.Inputs.DI)
	allFlagsOK := true
	for _, id := range rt.axisOrder {
		if !rt.axisByID[id].State.SafetyFlags.OK() {
			allFlagsOK = false
			break
		}
	}

	step := rt.recovery.Tick(safety.RecoveryInputs{
		SafetyStopActive:  true,
		ResetPressed:      readDIOptional(rt.registry, &bank, rt.cfg.Machine.ResetDIRole),
		AllAxisFlagsOK:    allFlagsOK,
		OperatorAuthorize: readDIOptional(rt.registry, &bank, rt.cfg.Machine.AuthorizeDIRole),
	})
	if step != safety.RecoveryComplete {
		return
	}

	rt.safety, _ = axis.TransitionSafety(rt.safety, axis.Recovery)
	rt.recovery.Reset()
	for _, id := range rt.axisOrder {
		ar := rt.axisByID[id]
		ar.Stopping = false
		ar.Stop.Reset()
		if pos, vel, ok := ar.State.Resume(); ok {
			ar.TargetPosition = pos
			ar.TargetVelocity = vel
		}
	}
}
