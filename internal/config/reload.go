package config

import "fmt"

// ValidateReloadScope enforces §4.6's hot-reload scope limit: axis count,
// axis IDs, and coupling topology may never change via RELOAD_CONFIG, and
// neither may an axis's static identity fields. Everything else (PID
// gains, velocities, peripheral timeouts) is considered in-place and is
// always accepted.
func ValidateReloadScope(oldCfg, newCfg *Config) error {
	if len(oldCfg.Axes) != len(newCfg.Axes) {
		return fmt.Errorf("%w: axis count changed from %d to %d", ErrReloadScopeDenied, len(oldCfg.Axes), len(newCfg.Axes))
	}
	for i, oldAxis := range oldCfg.Axes {
		newAxis := newCfg.Axes[i]
		if oldAxis.ID != newAxis.ID {
			return fmt.Errorf("%w: axis index %d id changed from %d to %d", ErrReloadScopeDenied, i, oldAxis.ID, newAxis.ID)
		}
		if oldAxis.Coupling != newAxis.Coupling {
			return fmt.Errorf("%w: axis %d coupling topology changed", ErrReloadScopeDenied, oldAxis.ID)
		}
	}
	return nil
}
