// Package cycle is the Control Unit's RT cycle orchestrator (§4.6): the
// dense per-axis runtime array, the fixed 11-step per-cycle body, command
// arbitration between the recipe executor and RPC gateway, and the
// hot-reload path. It is the top of the dependency order (§2, SPEC_FULL.md
// §D): every other leaf package (shm, typed, segments, ioreg, config,
// control, axis, safety) is wired together here.
package cycle
