package axis

import "fmt"

// GearboxState is the per-axis Gearbox sub-machine (§4.3 Level 3).
type GearboxState int

const (
	NoGearbox GearboxState = iota
	GearboxUnknown
	Neutral
	Gear1
	Gear2
	Gear3
	Gear4
	Shifting
	GearboxErrorState
)

func (s GearboxState) String() string {
	switch s {
	case NoGearbox:
		return "NoGearbox"
	case GearboxUnknown:
		return "Unknown"
	case Neutral:
		return "Neutral"
	case Gear1:
		return "Gear1"
	case Gear2:
		return "Gear2"
	case Gear3:
		return "Gear3"
	case Gear4:
		return "Gear4"
	case Shifting:
		return "Shifting"
	case GearboxErrorState:
		return "GearboxError"
	default:
		return "Unknown"
	}
}

// GearboxEvent drives the Gearbox sub-machine.
type GearboxEvent int

const (
	GearboxRequestShift GearboxEvent = iota
	GearboxShiftComplete
	GearboxLostDuringMotion
	GearboxFaultClear
)

var gearStates = map[GearboxState]bool{
	Neutral: true, Gear1: true, Gear2: true, Gear3: true, Gear4: true,
}

// TransitionGearbox applies event. A shift may only be requested while the
// axis Motion sub-machine is Standstill (§4.3: "Gear changes require
// Standstill"); loss of gear engagement while in motion is critical and
// reported to the caller, which is expected to route it to safety-stop
// (§4.3: "Loss of gear during motion is critical -> safety stop").
func TransitionGearbox(current GearboxState, event GearboxEvent, motion MotionState) (GearboxState, error) {
	switch event {
	case GearboxRequestShift:
		if !gearStates[current] {
			return current, fmt.Errorf("axis: gearbox shift request invalid from state %s", current)
		}
		if motion != Standstill {
			return current, fmt.Errorf("axis: gearbox shift requires Standstill, got %s", motion)
		}
		return Shifting, nil
	case GearboxShiftComplete:
		if current != Shifting {
			return current, fmt.Errorf("axis: gearbox shift-complete rejected in state %s", current)
		}
		return Neutral, nil
	case GearboxLostDuringMotion:
		if gearStates[current] && motion != Standstill {
			return GearboxErrorState, nil
		}
		return current, fmt.Errorf("axis: gearbox loss event rejected outside engaged+motion state")
	case GearboxFaultClear:
		if current != GearboxErrorState {
			return current, fmt.Errorf("axis: gearbox fault-clear rejected in state %s", current)
		}
		return Neutral, nil
	}
	return current, fmt.Errorf("axis: unrecognized gearbox event %d", event)
}
