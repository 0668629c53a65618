package config

// SystemConfig is config.toml's [system] table. It folds in the original
// SharedConfig fields (log_level, service_name) per §C.3.
type SystemConfig struct {
	LogLevel             string `toml:"log_level"`
	ServiceName          string `toml:"service_name"`
	CycleTimeUs          uint32 `toml:"cycle_time_us"`
	MqtUpdateIntervalCyc uint32 `toml:"mqt_update_interval"`
	OrphanGraceSecs      uint32 `toml:"orphan_grace_secs"`
	ShmDir               string `toml:"shm_dir"`
}

type systemFile struct {
	System SystemConfig `toml:"system"`
}
