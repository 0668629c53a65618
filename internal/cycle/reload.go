package cycle

import (
	"fmt"
	"time"

	"github.com/evo-automation/evo/internal/axis"
	"github.com/evo-automation/evo/internal/config"
	"github.com/evo-automation/evo/internal/constants"
)

// ErrReloadRequiresSafetyStop is returned when RELOAD_CONFIG arrives while
// the machine is not in SafetyStop (§4.6 "accepted only while safety state
// = SafetyStop").
var ErrReloadRequiresSafetyStop = fmt.Errorf("cycle: RELOAD_CONFIG accepted only while safety state is SafetyStop")

// ErrReloadBudgetExceeded is returned when validating and swapping the new
// config took longer than constants.HotReloadBudget. The swap has already
// either fully applied or fully rolled back by the time this is returned;
// it is a health signal, not a partial-state warning (§3 invariant).
var ErrReloadBudgetExceeded = fmt.Errorf("cycle: hot reload exceeded budget")

// ReloadConfig validates newCfg against the running config's scope
// (§4.6: axis count, axis IDs, and coupling topology are immutable) and,
// if it passes, atomically swaps every axis's tuning in place. On any
// validation failure the running config is left completely untouched —
// partial state is impossible by construction, since SetConfig is only
// called after every axis has been validated.
func (rt *Runtime) ReloadConfig(newCfg *config.Config) error {
	if rt.safety != axis.SafetyStop {
		return ErrReloadRequiresSafetyStop
	}

	start := time.Now()

	if err := config.ValidateReloadScope(rt.cfg, newCfg); err != nil {
		return err
	}

	for _, newAxis := range newCfg.Axes {
		if _, ok := rt.axisByID[newAxis.ID]; !ok {
			return fmt.Errorf("cycle: reload scope check passed but axis %d missing from runtime", newAxis.ID)
		}
	}

	for _, newAxis := range newCfg.Axes {
		ar := rt.axisByID[newAxis.ID]
		ar.Cfg = newAxis
		ar.Engine.SetConfig(controlConfigFrom(newAxis))
	}
	rt.cfg = newCfg
	// The recovery sequence and every axis's State/Stop executor are left
	// untouched: hot reload only retunes control and peripheral-timeout
	// fields, never state-machine progress (§4.6).

	if elapsed := time.Since(start); elapsed > constants.HotReloadBudget {
		rt.log.Error("hot reload exceeded budget", "elapsed", elapsed, "budget", constants.HotReloadBudget)
		return ErrReloadBudgetExceeded
	}
	return nil
}
