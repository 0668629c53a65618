package cycle

import (
	"fmt"
	"time"

	"github.com/evo-automation/evo/internal/axis"
	"github.com/evo-automation/evo/internal/config"
	"github.com/evo-automation/evo/internal/constants"
	"github.com/evo-automation/evo/internal/control"
	"github.com/evo-automation/evo/internal/ioreg"
	"github.com/evo-automation/evo/internal/logging"
	"github.com/evo-automation/evo/internal/safety"
	"github.com/evo-automation/evo/internal/segments"
	"github.com/evo-automation/evo/internal/typed"
)

// consecutiveOverrunLimit is how many back-to-back cycle-budget overruns
// (§4.6 step 11) escalate to a machine-level CriticalFault.
const consecutiveOverrunLimit = 50

// Runtime is the Control Unit's live process state for one configured
// system: every axis's runtime, the Level 1/2 global state machines, the
// recovery sequence, and every SHM segment handle the orchestrator reads
// or writes.
type Runtime struct {
	log *logging.Logger

	registry *ioreg.Registry

	axisOrder []uint8
	axisByID  map[uint8]*AxisRuntime

	machine  axis.MachineState
	safety   axis.SafetyState
	recovery *safety.RecoveryManager

	cycleCount         uint64
	overrunCount       uint64
	consecutiveOverrun uint64
	cycleBudget        time.Duration
	mqtInterval        uint32

	cfg *config.Config

	halFeedback *typed.Reader[segments.HalFeedbackPayload]
	halCommands *typed.Writer[segments.HalCommandsPayload]

	reCommands  *typed.Reader[segments.ExternalCommandPayload]
	rpcCommands *typed.Reader[segments.ExternalCommandPayload]

	cuToMQT *typed.Writer[segments.SystemStatus]
	cuToRE  *typed.Writer[segments.SystemStatus]
	cuToRPC *typed.Writer[segments.SystemStatus]

	shmDir string

	lastFeedback       segments.HalFeedbackPayload
	lastControlOutput  map[uint8]control.Output
	lastStopAction     map[uint8]safety.StopAction
}

// NewRuntime builds a Runtime from validated config and attaches every
// segment the orchestrator needs. The HAL->CU segment must already exist
// (the CU depends on HAL being up first, per §6); the non-RT command
// segments (RE->CU, RPC->CU) are attached opportunistically and may be
// absent at startup (§4.6 step 2) — Tick retries attaching them lazily.
func NewRuntime(cfg *config.Config, shmDir string) (*Runtime, error) {
	rt := &Runtime{
		log:               logging.Default().WithModule("cu"),
		registry:          buildRegistry(cfg.IO),
		axisByID:          make(map[uint8]*AxisRuntime, len(cfg.Axes)),
		machine:           axis.Stopped,
		safety:            axis.Safe,
		recovery:          safety.NewRecoveryManager(cfg.Machine.RecoveryNeedsAuth),
		cycleBudget:       time.Duration(cfg.System.CycleTimeUs) * time.Microsecond,
		mqtInterval:       cfg.System.MqtUpdateIntervalCyc,
		cfg:               cfg,
		shmDir:            shmDir,
		lastControlOutput: make(map[uint8]control.Output),
		lastStopAction:    make(map[uint8]safety.StopAction),
	}
	if rt.mqtInterval == 0 {
		rt.mqtInterval = constants.DefaultMqtUpdateInterval
	}

	for _, ac := range cfg.Axes {
		rt.axisOrder = append(rt.axisOrder, ac.ID)
		rt.axisByID[ac.ID] = newAxisRuntime(ac, cfg.Machine)
	}

	var err error
	if rt.halFeedback, err = segments.NewHALToCUReader(shmDir); err != nil {
		return nil, fmt.Errorf("cycle: attach hal_cu: %w", err)
	}
	if rt.halCommands, err = segments.NewCUToHALWriter(shmDir); err != nil {
		return nil, fmt.Errorf("cycle: create cu_hal: %w", err)
	}
	if rt.cuToMQT, err = segments.NewCUToMQTWriter(shmDir); err != nil {
		return nil, fmt.Errorf("cycle: create cu_mqt: %w", err)
	}
	if rt.cuToRE, err = segments.NewCUToREWriter(shmDir); err != nil {
		return nil, fmt.Errorf("cycle: create cu_re: %w", err)
	}
	if rt.cuToRPC, err = segments.NewCUToRPCWriter(shmDir); err != nil {
		return nil, fmt.Errorf("cycle: create cu_rpc: %w", err)
	}
	// Optional non-RT command sources: absent at startup is not fatal.
	rt.reCommands, _ = segments.NewREToCUReader(shmDir)
	rt.rpcCommands, _ = segments.NewRPCToCUReader(shmDir)

	return rt, nil
}

func buildRegistry(io config.IOConfig) *ioreg.Registry {
	reg := ioreg.NewRegistry()
	for _, role := range io.Role {
		var iotype ioreg.IOType
		switch role.Type {
		case "di":
			iotype = ioreg.TypeDI
		case "do":
			iotype = ioreg.TypeDO
		case "ai":
			iotype = ioreg.TypeAI
		case "ao":
			iotype = ioreg.TypeAO
		}

		var scaling ioreg.Scaling
		switch role.Preset {
		case "linear":
			scaling = ioreg.LinearScaling(role.Gain, role.Offset)
		case "quadratic":
			scaling = ioreg.QuadraticScaling(role.Gain, role.Offset)
		case "cubic":
			scaling = ioreg.CubicScaling(role.Gain, role.Offset)
		default:
			scaling = ioreg.Scaling{A: role.A, B: role.B, C: role.C, Offset: role.Offset}
		}

		reg.Bind(role.Name, ioreg.Binding{Type: iotype, Pin: role.Pin, Scaling: scaling})
	}
	return reg
}

// Axis returns the runtime for axis id, or nil if unconfigured.
func (rt *Runtime) Axis(id uint8) *AxisRuntime { return rt.axisByID[id] }

// MachineState reports the Level 1 global state.
func (rt *Runtime) MachineState() axis.MachineState { return rt.machine }

// SafetyState reports the Level 2 global state.
func (rt *Runtime) SafetyState() axis.SafetyState { return rt.safety }

// CycleCount reports the number of Tick calls completed.
func (rt *Runtime) CycleCount() uint64 { return rt.cycleCount }

// OverrunCount reports how many cycles exceeded the cycle time budget.
func (rt *Runtime) OverrunCount() uint64 { return rt.overrunCount }

// Close releases every segment handle the runtime owns.
func (rt *Runtime) Close() {
	rt.halFeedback.Close()
	rt.halCommands.Close()
	rt.cuToMQT.Close()
	rt.cuToRE.Close()
	rt.cuToRPC.Close()
	if rt.reCommands != nil {
		rt.reCommands.Close()
	}
	if rt.rpcCommands != nil {
		rt.rpcCommands.Close()
	}
}

// ProcessMachineEvent applies a Level 1 machine-state event (§4.3), e.g.
// PowerOn, InitComplete, RecipeStart. Motion commands are only accepted
// afterward if axis.MotionPermitted(rt.MachineState()).
func (rt *Runtime) ProcessMachineEvent(event axis.MachineEvent) error {
	next, err := axis.TransitionMachine(rt.machine, event)
	if err != nil {
		return err
	}
	rt.machine = next
	return nil
}
