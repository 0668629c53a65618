// Package axis implements the five-level hierarchical state-machine
// lattice (§4.3): the global Machine and Safety state machines (Levels 1
// and 2), and the six per-axis sub-machines plus safety flags and error
// bitflags (Levels 3-5). Every sub-machine is a pure function of (state,
// event): Transition either returns the next state or a rejection error
// naming why, never a panic or an implicit no-op.
package axis
