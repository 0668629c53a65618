// Package control implements the per-axis control engine (§4.4): a
// backward-Euler PID with anti-windup and derivative filtering, feed
// forward plus a disturbance observer, a notch+lowpass conditioning chain,
// and the lag monitor. Each Engine is one axis's persistent filter state;
// Step is called once per cycle and never allocates.
package control
