package cycle

import (
	"time"

	"github.com/evo-automation/evo/internal/axis"
	"github.com/evo-automation/evo/internal/control"
	"github.com/evo-automation/evo/internal/safety"
	"github.com/evo-automation/evo/internal/segments"
)

// Tick runs exactly one cycle of the §4.6 orchestrator body. It never
// allocates on the steady-state path beyond what the segment readers'
// bounded retry loops already account for.
func (rt *Runtime) Tick() error {
	start := time.Now()
	rt.cycleCount++
	dt := float64(rt.cfg.System.CycleTimeUs) / 1_000_000

	// Step 1: read feedback. A stale or failed HAL read is immediately
	// critical on this RT inbound segment (§7).
	var feedback segments.HalFeedbackPayload
	if err := rt.halFeedback.Read(&feedback); err != nil {
		rt.log.Error("hal feedback read failed, escalating to safety-stop", "err", err, "cycle", rt.cycleCount)
		rt.trip()
	} else {
		rt.lastFeedback = feedback
	}
	feedback = rt.lastFeedback

	// Step 2: read optional commands. Absent/stale non-RT peers are not
	// fatal; lazily re-attach if a peer wasn't up at startup.
	var reCmd, rpcCmd segments.ExternalCommandPayload
	var reOK, rpcOK bool
	if rt.reCommands == nil {
		rt.reCommands, _ = segments.NewREToCUReader(rt.shmDir)
	}
	if rt.reCommands != nil {
		reOK = rt.reCommands.Read(&reCmd) == nil
	}
	if rt.rpcCommands == nil {
		rt.rpcCommands, _ = segments.NewRPCToCUReader(rt.shmDir)
	}
	if rt.rpcCommands != nil {
		rpcOK = rt.rpcCommands.Read(&rpcCmd) == nil
	}

	// Step 3: arbitrate commands.
	var reCmdPtr, rpcCmdPtr *segments.ExternalCommandPayload
	if reOK {
		reCmdPtr = &reCmd
	}
	if rpcOK {
		rpcCmdPtr = &rpcCmd
	}
	rt.arbitrate(reCmdPtr, rpcCmdPtr)

	// Step 4: update state machines. Mirror master's operational mode onto
	// coupled slaves (§4.3).
	rt.mirrorCoupledSlaves()

	// Step 5: evaluate safety flags; a critical Level 5 error or a failed
	// peripheral flag on any axis trips the machine-wide safety state.
	globalCritical := false
	for i, id := range rt.axisOrder {
		ar := rt.axisByID[id]
		flags := safety.EvaluatePeripherals(rt.buildPeripheralInputs(ar, feedback, i))
		ar.State.SafetyFlags = flags

		// Loss of gear engagement while the axis is moving is critical
		// (§4.3: "Loss of gear during motion is critical -> safety stop").
		// Standstill is exempt: the gearbox is expected to report not-OK
		// mid-shift, which TransitionGearbox itself rejects outside motion.
		if !flags.Has(axis.FlagGearboxOK) && ar.State.Motion != axis.Standstill {
			if next, err := axis.TransitionGearbox(ar.State.Gearbox, axis.GearboxLostDuringMotion, ar.State.Motion); err == nil {
				ar.State.Gearbox = next
				ar.State.Errors.Gearbox = ar.State.Errors.Gearbox.Set(axis.GearboxErrLostDuringMotion, true)
			}
		}

		if !flags.OK() {
			globalCritical = true
			ar.Stopping = true
		}
		if ar.State.Errors.HighestSeverity() == axis.SeverityCritical || ar.LagCritical {
			globalCritical = true
			ar.Stopping = true
		}
	}
	if globalCritical && rt.safety != axis.SafetyStop {
		rt.trip()
	}
	rt.driveRecovery(feedback)

	// Step 6: execute control, or drive the per-axis stop executor.
	for i, id := range rt.axisOrder {
		ar := rt.axisByID[id]
		actual := segments.AxisFeedback{}
		if i < len(feedback.Axes) {
			actual = feedback.Axes[i]
		}
		delete(rt.lastStopAction, id)
		delete(rt.lastControlOutput, id)

		if rt.safety == axis.SafetyStop || ar.Stopping {
			// Safety has unconditional override: preserve the targets the
			// holding source last commanded so they can be restored verbatim
			// on recovery (§4.6 step 3, §8 scenario "safety pause preserves
			// targets").
			ar.State.Pause(ar.TargetPosition, ar.TargetVelocity)
			if ar.Stop.Phase() == safety.StopIdle {
				ar.Stop.Start(stopCategoryFrom(ar.Cfg.StopCategory))
			}
			rt.lastStopAction[id] = ar.Stop.Tick(actual.Velocity)
			if ar.Stop.Done() {
				ar.Stopping = false
			}
			continue
		}

		if ar.State.Power != axis.MotionPower {
			ar.Engine.Reset()
			continue
		}

		// Step 7: reduced-speed velocity clamp, applied to the setpoint
		// before it reaches the control engine.
		targetVelocity := ar.TargetVelocity
		if rt.safety == axis.SafeReducedSpeed {
			targetVelocity = safety.ClampVelocity(targetVelocity, ar.Cfg.ReducedSpeedLimit)
		}

		out := ar.Engine.Step(control.Input{
			TargetPosition: ar.TargetPosition,
			ActualPosition: actual.Position,
			TargetVelocity: targetVelocity,
			ActualVelocity: actual.Velocity,
			DT:             dt,
		})
		if !out.Finite() {
			ar.State.Motion = axis.MotionErrorState
			ar.State.Errors.Motion = ar.State.Errors.Motion.Set(axis.MotionErrStall, true)
			ar.Engine.Reset()
			continue
		}

		// Step 8: evaluate lag, dispatching by the axis's configured
		// policy (§4.4) rather than a fixed severity: Critical -> safety
		// stop (machine-wide, via Step 5 next cycle) + axis stop;
		// Unwanted -> axis stop only, never escalates machine-wide;
		// Neutral -> flag only, no stop of any kind; Desired never
		// reaches here (EvaluateLag never reports it Exceeded).
		lag := control.EvaluateLag(ar.TargetPosition, actual.Position, ar.Cfg.Limits.LagErrorLimit, lagPolicyFrom(ar.Cfg.Limits.LagPolicy))
		ar.State.Errors.Motion = ar.State.Errors.Motion.Set(axis.MotionErrLagExceed, lag.Exceeded)
		ar.LagCritical = false
		if lag.Exceeded {
			switch lag.Policy {
			case control.LagCritical:
				ar.LagCritical = true
				ar.Stopping = true
			case control.LagUnwanted:
				ar.Stopping = true
			case control.LagNeutral:
				// flag only, already set above.
			}
		}

		rt.lastControlOutput[id] = out
	}

	// Step 9: write commands.
	rt.writeHALCommands(feedback)

	// Step 10: populate snapshots. CU->RE acknowledgements every cycle;
	// CU->MQT/CU->RPC diagnostics every mqt_update_interval cycles.
	status := rt.buildSystemStatus()
	rt.cuToRE.Write(&status)
	if rt.cycleCount%uint64(rt.mqtInterval) == 0 {
		rt.cuToMQT.Write(&status)
		rt.cuToRPC.Write(&status)
	}

	// Step 11: cycle budget.
	elapsed := time.Since(start)
	if elapsed > rt.cycleBudget {
		rt.overrunCount++
		rt.consecutiveOverrun++
		rt.log.Warn("cycle overrun", "elapsed", elapsed, "budget", rt.cycleBudget, "cycle", rt.cycleCount)
		if rt.consecutiveOverrun >= consecutiveOverrunLimit {
			rt.log.Error("sustained cycle overruns, forcing CriticalFault", "cycle", rt.cycleCount)
			rt.machine, _ = axis.TransitionMachine(rt.machine, axis.CriticalFault)
			rt.trip()
		}
	} else {
		rt.consecutiveOverrun = 0
	}

	return nil
}

// trip drives the Level 2 global safety state to SafetyStop, a no-op if
// already there (TransitionSafety's Trip is idempotent by construction).
func (rt *Runtime) trip() {
	rt.safety, _ = axis.TransitionSafety(rt.safety, axis.Trip)
}

// mirrorCoupledSlaves runs the Level 3 Coupling sub-machine's electronic
// gearing (§4.3): a coupled slave's operational mode mirrors its master's,
// and its targets track the master's scaled by the configured ratio, with
// the configured offset added only once modulation is enabled
// (SlaveModulated, §4.8 CouplingConfig.Modulated).
func (rt *Runtime) mirrorCoupledSlaves() {
	for _, id := range rt.axisOrder {
		ar := rt.axisByID[id]
		if !ar.State.IsCoupledSlave() {
			continue
		}
		master, ok := rt.axisByID[ar.Cfg.Coupling.MasterID]
		if !ok {
			continue
		}
		ar.State.Operational = master.State.Operational

		ratio := ar.Cfg.Coupling.Ratio
		targetPosition := master.TargetPosition * ratio
		targetVelocity := master.TargetVelocity * ratio
		if ar.State.Coupling == axis.SlaveModulated {
			targetPosition += ar.Cfg.Coupling.Offset
		}
		ar.TargetPosition = targetPosition
		ar.TargetVelocity = targetVelocity
	}
}

func (rt *Runtime) writeHALCommands(feedback segments.HalFeedbackPayload) {
	var cmd segments.HalCommandsPayload
	cmd.CycleCount = rt.cycleCount
	cmd.Outputs = segments.IOOutputs{} // peripheral outputs (brake/enable relays) are driven per axis below

	for i, id := range rt.axisOrder {
		ar := rt.axisByID[id]
		if i >= len(cmd.Axes) {
			break
		}

		if action, ok := rt.lastStopAction[id]; ok {
			cmd.Axes[i] = stopActionToCommand(action)
			continue
		}

		out, ok := rt.lastControlOutput[id]
		if !ok {
			continue
		}
		cmd.Axes[i] = segments.AxisCommand{
			TargetPosition: out.TargetPosition,
			TargetVelocity: out.TargetVelocity,
			TargetTorque:   out.CalculatedTorque + out.TorqueOffset,
			Enable:         ar.State.Power == axis.MotionPower,
			BrakeRelease:   ar.State.Power == axis.MotionPower,
		}
	}

	rt.halCommands.Write(&cmd)
}

func stopActionToCommand(a safety.StopAction) segments.AxisCommand {
	switch a.Kind {
	case safety.ActionDecelerate:
		return segments.AxisCommand{Enable: true, BrakeRelease: true}
	case safety.ActionHoldTorque:
		return segments.AxisCommand{Enable: true, BrakeRelease: true, TargetTorque: a.Torque}
	default: // ActionDisableAndBrake, ActionNone
		return segments.AxisCommand{Enable: false, BrakeRelease: false}
	}
}
