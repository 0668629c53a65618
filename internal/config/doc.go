// Package config implements the config model (§4.8): TOML structs for
// config.toml, machine.toml, io.toml, and per-axis axis_NN_name.toml files,
// auto-discovery and validation, and the hot-reload scope check that gates
// which fields a live RELOAD_CONFIG may change.
package config
