package axis

import "fmt"

// MachineState is the Level 1 global machine state (§4.3).
type MachineState int

const (
	Stopped MachineState = iota
	Starting
	Idle
	Manual
	Active
	Service
	SystemError
)

func (s MachineState) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Starting:
		return "Starting"
	case Idle:
		return "Idle"
	case Manual:
		return "Manual"
	case Active:
		return "Active"
	case Service:
		return "Service"
	case SystemError:
		return "SystemError"
	default:
		return "Unknown"
	}
}

// MachineEvent is a Level 1 transition event (§4.3).
type MachineEvent int

const (
	PowerOn MachineEvent = iota
	InitComplete
	InitFailed
	ManualCommand
	ManualStop
	RecipeStart
	RecipeComplete
	RecipeCompleteManualPending
	ServiceAuthorize
	ServiceDeauthorize
	CriticalFault
	ErrorRecovery
	FullReset
)

// machineTable enumerates every accepted (state, event) -> state edge.
// CriticalFault is handled unconditionally outside this table (§4.3: "from
// any non-SystemError state").
var machineTable = map[MachineState]map[MachineEvent]MachineState{
	Stopped: {
		PowerOn: Starting,
	},
	Starting: {
		InitComplete: Idle,
		InitFailed:   Stopped,
	},
	Idle: {
		ManualCommand:    Manual,
		RecipeStart:      Active,
		ServiceAuthorize: Service,
	},
	Manual: {
		ManualStop: Idle,
	},
	Active: {
		RecipeComplete:               Idle,
		RecipeCompleteManualPending:  Manual,
	},
	Service: {
		ServiceDeauthorize: Idle,
	},
	SystemError: {
		ErrorRecovery: Idle,
		FullReset:     Stopped,
	},
}

// MotionPermitted reports whether motion commands are allowed in state s
// (§4.3: "Motion is permitted only in Manual, Active, or Service").
func MotionPermitted(s MachineState) bool {
	return s == Manual || s == Active || s == Service
}

// TransitionMachine applies event to the current Level 1 state. CriticalFault
// always succeeds (moving to SystemError) except when already there, where
// it is a no-op rather than a rejection. ServiceAuthorize from SystemError
// is explicitly rejected even though it would otherwise be absent from the
// table (the absence alone already rejects it; this keeps the reason
// message specific, matching §4.3's explicit callout).
func TransitionMachine(current MachineState, event MachineEvent) (MachineState, error) {
	if event == CriticalFault {
		return SystemError, nil
	}
	if current == SystemError && event == ServiceAuthorize {
		return current, fmt.Errorf("axis: ServiceAuthorize rejected from SystemError")
	}
	edges, ok := machineTable[current]
	if !ok {
		return current, fmt.Errorf("axis: no transitions defined from %s", current)
	}
	next, ok := edges[event]
	if !ok {
		return current, fmt.Errorf("axis: event %d rejected in state %s", event, current)
	}
	return next, nil
}
