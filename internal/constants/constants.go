// Package constants holds system-wide immutable invariants (§3, §4.8).
//
// Values that are TOML-configurable defaults belong in internal/config, not
// here — this package is only for bounds and bus widths fixed at compile
// time, grounded on original_source/evo_common/src/consts.rs.
package constants

import "time"

// MaxAxes is the upper bound on physical axes (§3): a 1-based axis ID lies
// in [1, MaxAxes].
const MaxAxes = 64

// Digital/analog bus widths (§3).
const (
	MaxDI = 1024
	MaxDO = 1024
	MaxAI = 1024
	MaxAO = 1024

	// BankWords is the number of uint64 words backing a 1024-bit DI/DO bank.
	BankWords = MaxDI / 64
)

// Validation bounds (§4.8), lifted from the original implementation's
// consts.rs so the Go config validator enforces the same envelope.
const (
	MinKp = 0.0
	MaxKp = 10_000.0
	MinKi = 0.0
	MaxKi = 10_000.0
	MinKd = 0.0
	MaxKd = 1_000.0

	MaxVelocity       = 100_000.0
	MaxAcceleration   = 1_000_000.0
	MaxPositionRange  = 1_000_000.0
	MaxOutMax         = 1_000.0
	MaxLagError       = 100.0
	MaxHomingSpeed    = 10_000.0
	MaxHomingTimeoutS = 300.0
	MaxSafeDecel      = 1_000_000.0

	MinCycleTimeUs = 100
	MaxCycleTimeUs = 10_000

	ManualTimeoutMinS = 1.0
	ManualTimeoutMaxS = 300.0
)

// DefaultCycleTimeUs is the Control Unit's default cycle period (§4.6).
const DefaultCycleTimeUs = 1000

// DefaultMqtUpdateInterval is the default number of cycles between CU→MQT
// diagnostic snapshot writes (§4.6 step 10).
const DefaultMqtUpdateInterval = 10

// HotReloadBudget bounds the time a hot-reload config swap may take (§4.6).
const HotReloadBudget = 120 * time.Millisecond

// DefaultOrphanGracePeriod mirrors wire.DefaultOrphanGraceSecs as a
// time.Duration for callers that want a typed value (§4.1 cleanup_orphans).
const DefaultOrphanGracePeriod = 60 * time.Second
