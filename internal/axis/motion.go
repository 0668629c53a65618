package axis

import "fmt"

// MotionState is the per-axis Motion sub-machine (§4.3 Level 3).
type MotionState int

const (
	Standstill MotionState = iota
	Accelerating
	ConstantVelocity
	Decelerating
	MotionErrorState
)

func (s MotionState) String() string {
	switch s {
	case Standstill:
		return "Standstill"
	case Accelerating:
		return "Accelerating"
	case ConstantVelocity:
		return "ConstantVelocity"
	case Decelerating:
		return "Decelerating"
	case MotionErrorState:
		return "MotionError"
	default:
		return "Unknown"
	}
}

// MotionEvent drives the Motion sub-machine.
type MotionEvent int

const (
	MotionStartAccel MotionEvent = iota
	MotionReachedTarget
	MotionStartDecel
	MotionStopped
	MotionFault
	MotionFaultClear
)

// TransitionMotion applies event to the current Motion sub-machine state.
func TransitionMotion(current MotionState, event MotionEvent) (MotionState, error) {
	if event == MotionFault {
		return MotionErrorState, nil
	}
	switch current {
	case Standstill:
		if event == MotionStartAccel {
			return Accelerating, nil
		}
	case Accelerating:
		if event == MotionReachedTarget {
			return ConstantVelocity, nil
		}
		if event == MotionStartDecel {
			return Decelerating, nil
		}
	case ConstantVelocity:
		if event == MotionStartDecel {
			return Decelerating, nil
		}
	case Decelerating:
		if event == MotionStopped {
			return Standstill, nil
		}
	case MotionErrorState:
		if event == MotionFaultClear {
			return Standstill, nil
		}
	}
	return current, fmt.Errorf("axis: motion event %d rejected in state %s", event, current)
}
