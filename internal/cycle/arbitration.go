package cycle

import "github.com/evo-automation/evo/internal/segments"

// findRequest returns the per-axis motion request for axisID from cmd, if
// present.
func findRequest(cmd *segments.ExternalCommandPayload, axisID uint8) (segments.AxisMotionRequest, bool) {
	if cmd == nil {
		return segments.AxisMotionRequest{}, false
	}
	for _, req := range cmd.Requests {
		if req.AxisID == axisID {
			return req, true
		}
	}
	return segments.AxisMotionRequest{}, false
}

// arbitrate enforces each axis's command-source lock (§4.6 step 3): a
// source with no current holder acquires it on its first request; a
// holder's own requests are honored; a non-holder's requests are rejected
// (CommandErrSourceLocked, severity Unwanted). A source's RecipeControl.Stop
// releases any axis it holds. Safety's unconditional override (pause,
// §4.6 step 3) is applied separately in Tick, not here.
func (rt *Runtime) arbitrate(reCmd, rpcCmd *segments.ExternalCommandPayload) {
	for _, id := range rt.axisOrder {
		ar := rt.axisByID[id]
		if ar.State.Paused {
			continue // safety owns the axis until Resume
		}

		if reCmd != nil && reCmd.Control.Stop && ar.Lock == SourceRecipeExecutor {
			ar.Lock = SourceNone
		}
		if rpcCmd != nil && rpcCmd.Control.Stop && ar.Lock == SourceRPC {
			ar.Lock = SourceNone
		}

		reReq, reHas := findRequest(reCmd, id)
		rpcReq, rpcHas := findRequest(rpcCmd, id)

		switch ar.Lock {
		case SourceNone:
			switch {
			case reHas:
				ar.Lock = SourceRecipeExecutor
				rt.applyRequest(ar, reReq)
			case rpcHas:
				ar.Lock = SourceRPC
				rt.applyRequest(ar, rpcReq)
			}
		case SourceRecipeExecutor:
			if reHas {
				rt.applyRequest(ar, reReq)
			}
			if rpcHas {
				ar.State.Errors.Command = ar.State.Errors.Command.Set(
					commandErrSourceLocked, true)
			}
		case SourceRPC:
			if rpcHas {
				rt.applyRequest(ar, rpcReq)
			}
			if reHas {
				ar.State.Errors.Command = ar.State.Errors.Command.Set(
					commandErrSourceLocked, true)
			}
		}
	}
}

func (rt *Runtime) applyRequest(ar *AxisRuntime, req segments.AxisMotionRequest) {
	ar.TargetPosition = req.TargetPosition
	ar.TargetVelocity = req.TargetVelocity
}
