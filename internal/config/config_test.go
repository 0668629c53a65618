package config

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

const sampleConfigToml = `
[system]
log_level = "info"
service_name = "evo_cu"
cycle_time_us = 1000
mqt_update_interval = 10
orphan_grace_secs = 60
shm_dir = "/dev/shm"
`

const sampleMachineToml = `
[machine]
safety_stop_timeout_cycles = 5000
sto_brake_delay_cycles = 50
ss2_holding_torque = 0.2
max_decel_safe = 500.0
manual_timeout_s = 30.0
recovery_needs_authorization = false
reset_di_role = "ResetButton"
authorize_di_role = ""
`

const sampleIOToml = `
[[role]]
name = "EStop"
type = "di"
pin = 0

[[role]]
name = "Enable1"
type = "do"
pin = 2

[[role]]
name = "Tension1"
type = "ai"
pin = 1
preset = "linear"
gain = 100.0
offset = 0.0
`

func sampleAxisToml(id int) string {
	return `
[axis]
id = ` + strconv.Itoa(id) + `
name = "x"

[axis.pid]
kp = 1.0
ki = 0.1
kd = 0.01

[axis.limits]
max_velocity = 1000.0
max_acceleration = 5000.0
position_min = -1000.0
position_max = 1000.0
out_max = 10.0
lag_error_limit = 5.0
lag_policy = "critical"

[axis.homing]
speed = 10.0
timeout_s = 30.0
safe_decel = 100.0

[axis.coupling]
role = "none"
`
}

func writeSampleDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "config.toml"), sampleConfigToml)
	mustWrite(t, filepath.Join(dir, "machine.toml"), sampleMachineToml)
	mustWrite(t, filepath.Join(dir, "io.toml"), sampleIOToml)
	mustWrite(t, filepath.Join(dir, "axis_01_x.toml"), sampleAxisToml(1))
	mustWrite(t, filepath.Join(dir, "axis_02_y.toml"), sampleAxisToml(2))
	return dir
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestLoadValidDirectory(t *testing.T) {
	dir := writeSampleDir(t)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Axes) != 2 {
		t.Fatalf("loaded %d axes, want 2", len(cfg.Axes))
	}
	if cfg.Axes[0].ID != 1 || cfg.Axes[1].ID != 2 {
		t.Errorf("axes not ordered by id: %+v", cfg.Axes)
	}
	if cfg.System.ServiceName != "evo_cu" {
		t.Errorf("ServiceName = %q, want evo_cu", cfg.System.ServiceName)
	}
	if len(cfg.IO.Role) != 3 {
		t.Errorf("loaded %d roles, want 3", len(cfg.IO.Role))
	}
}

func TestLoadRejectsAxisIDMismatch(t *testing.T) {
	dir := writeSampleDir(t)
	mustWrite(t, filepath.Join(dir, "axis_03_z.toml"), sampleAxisToml(5))

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for mismatched axis filename/id")
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	dir := writeSampleDir(t)
	mustWrite(t, filepath.Join(dir, "config.toml"), sampleConfigToml+"\nbogus_field = 1\n")

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for unknown field in config.toml")
	}
}

func TestLoadRejectsLegacyAxesArray(t *testing.T) {
	dir := writeSampleDir(t)
	mustWrite(t, filepath.Join(dir, "machine.toml"), sampleMachineToml+"\n[[axes]]\nid = 1\n")

	_, err := Load(dir)
	if err != ErrLegacyAxesArray {
		t.Errorf("err = %v, want ErrLegacyAxesArray", err)
	}
}

func TestLoadRejectsNoAxes(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "config.toml"), sampleConfigToml)
	mustWrite(t, filepath.Join(dir, "machine.toml"), sampleMachineToml)
	mustWrite(t, filepath.Join(dir, "io.toml"), sampleIOToml)

	_, err := Load(dir)
	if err != ErrNoAxesDefined {
		t.Errorf("err = %v, want ErrNoAxesDefined", err)
	}
}

func TestLoadRejectsOutOfBoundGain(t *testing.T) {
	dir := writeSampleDir(t)
	bad := `
[axis]
id = 1
name = "x"

[axis.pid]
kp = 999999.0
ki = 0.1
kd = 0.01

[axis.limits]
max_velocity = 1000.0
max_acceleration = 5000.0
position_min = -1000.0
position_max = 1000.0
out_max = 10.0
lag_error_limit = 5.0
lag_policy = "critical"

[axis.homing]
speed = 10.0
timeout_s = 30.0
safe_decel = 100.0

[axis.coupling]
role = "none"
`
	mustWrite(t, filepath.Join(dir, "axis_01_x.toml"), bad)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected validation error for out-of-bound kp")
	}
}

func TestValidateReloadScopeAcceptsGainChange(t *testing.T) {
	dir := writeSampleDir(t)
	oldCfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	newCfg := *oldCfg
	newAxes := append([]AxisConfig{}, oldCfg.Axes...)
	newAxes[0].PID.Kp = 2.0
	newCfg.Axes = newAxes

	if err := ValidateReloadScope(oldCfg, &newCfg); err != nil {
		t.Errorf("ValidateReloadScope rejected an in-place gain change: %v", err)
	}
}

func TestValidateReloadScopeRejectsAxisCountChange(t *testing.T) {
	dir := writeSampleDir(t)
	oldCfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	newCfg := *oldCfg
	newCfg.Axes = oldCfg.Axes[:1]

	if err := ValidateReloadScope(oldCfg, &newCfg); err == nil {
		t.Error("ValidateReloadScope accepted an axis count change")
	}
}

func TestValidateReloadScopeRejectsCouplingChange(t *testing.T) {
	dir := writeSampleDir(t)
	oldCfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	newCfg := *oldCfg
	newAxes := append([]AxisConfig{}, oldCfg.Axes...)
	newAxes[0].Coupling.Role = "master"
	newCfg.Axes = newAxes

	if err := ValidateReloadScope(oldCfg, &newCfg); err == nil {
		t.Error("expected error for coupling topology change")
	}
}
