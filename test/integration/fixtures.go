// Package integration exercises internal/cycle end to end, driving a
// Runtime through real config.Load fixtures and real SHM segments the way
// the HAL, recipe executor, and RPC gateway processes would (§8).
package integration

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

const configToml = `[system]
log_level = "info"
service_name = "evo_cu"
cycle_time_us = 1000
mqt_update_interval = 10
orphan_grace_secs = 60
`

const machineToml = `[machine]
safety_stop_timeout_cycles = 2000
sto_brake_delay_cycles = 5
ss2_holding_torque = 15.0
max_decel_safe = 500.0
manual_timeout_s = 30.0
recovery_needs_authorization = false
`

const ioToml = ``

func axisToml(id uint8, name string, kp, ki, kd float64, extra string) string {
	return fmt.Sprintf(`[axis]
id = %d
name = "%s"
reduced_speed_limit = 50.0
sto_brake_delay_cycles = 5
ss2_holding_torque = 15.0

[axis.pid]
kp = %v
ki = %v
kd = %v

[axis.limits]
max_velocity = 1000.0
max_acceleration = 5000.0
position_min = -1000.0
position_max = 1000.0
out_max = 500.0
lag_error_limit = 5.0
lag_policy = "critical"
%s`, id, name, kp, ki, kd, extra)
}

// writeReferenceConfig lays out the 8-axis reference machine from §8
// scenario 1: X Y Z A B C Spindle Tailstock, with Tailstock coupled as a
// slave of master id 3 — axis 3 is Z in this 1-indexed roster (Spindle is
// axis 7), so Tailstock tracks the third configured axis.
func writeReferenceConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	mustWrite(t, dir, "config.toml", configToml)
	mustWrite(t, dir, "machine.toml", machineToml)
	mustWrite(t, dir, "io.toml", ioToml)

	names := []string{"x", "y", "z", "a", "b", "c", "spindle", "tailstock"}
	for i, name := range names {
		id := uint8(i + 1)
		extra := ""
		if name == "tailstock" {
			extra = "\n[axis.coupling]\nrole = \"slave\"\nmaster_id = 3\nratio = 1.0\n"
		}
		mustWrite(t, dir, fmt.Sprintf("axis_%02d_%s.toml", id, name), axisToml(id, name, 10, 0, 0, extra))
	}
	return dir
}

// writeSingleAxisConfig lays out a minimal one-axis machine for scenarios
// that only need one axis (command lock, safety pause, lag policy, hot
// reload, control convergence).
func writeSingleAxisConfig(t *testing.T, kp, ki, kd float64) string {
	t.Helper()
	dir := t.TempDir()

	mustWrite(t, dir, "config.toml", configToml)
	mustWrite(t, dir, "machine.toml", machineToml)
	mustWrite(t, dir, "io.toml", ioToml)
	mustWrite(t, dir, "axis_01_x.toml", axisToml(1, "x", kp, ki, kd, ""))
	return dir
}

func mustWrite(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
