package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evo-automation/evo/internal/config"
	"github.com/evo-automation/evo/internal/constants"
	"github.com/evo-automation/evo/internal/cycle"
	"github.com/evo-automation/evo/internal/logging"
	"github.com/evo-automation/evo/internal/shm"
)

func main() {
	var (
		configDir   = flag.String("config-dir", "/etc/evo", "Directory holding config.toml, machine.toml, io.toml, and axis_NN_*.toml")
		shmDir      = flag.String("shm-dir", "", "Directory for P2P shared-memory segments (defaults to config.toml's shm_dir)")
		verbose     = flag.Bool("v", false, "Verbose (debug) logging")
		cycleTimeUs = flag.Uint("cycle-time-us", 0, "Override config.toml's cycle_time_us")
	)
	flag.Parse()

	logConfig := logging.DefaultConfig()
	if *verbose {
		logConfig.Level = logging.LevelDebug
	}
	logger := logging.NewLogger(logConfig)
	logging.SetDefault(logger)
	log := logger.WithModule("cu")

	cfg, err := config.Load(*configDir)
	if err != nil {
		log.Error("failed to load config", "dir", *configDir, "err", err)
		os.Exit(1)
	}
	if *cycleTimeUs != 0 {
		cfg.System.CycleTimeUs = uint32(*cycleTimeUs)
	}

	dir := *shmDir
	if dir == "" {
		dir = cfg.System.ShmDir
	}
	if dir == "" {
		log.Error("no shm dir configured; pass --shm-dir or set shm_dir in config.toml")
		os.Exit(1)
	}

	grace := time.Duration(cfg.System.OrphanGraceSecs) * time.Second
	if grace == 0 {
		grace = constants.DefaultOrphanGracePeriod
	}
	if removed, err := shm.CleanupOrphans(dir, grace); err != nil {
		log.Warn("orphan cleanup failed", "err", err)
	} else if len(removed) > 0 {
		log.Info("removed orphaned segments", "count", len(removed), "segments", removed)
	}

	rt, err := cycle.NewRuntime(cfg, dir)
	if err != nil {
		log.Error("failed to start runtime", "err", err)
		os.Exit(1)
	}
	defer rt.Close()

	log.Info("control unit started",
		"axes", len(cfg.Axes),
		"cycle_time_us", cfg.System.CycleTimeUs,
		"shm_dir", dir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Duration(cfg.System.CycleTimeUs) * time.Microsecond)
	defer ticker.Stop()

	for {
		select {
		case <-sigCh:
			log.Info("received shutdown signal", "cycles_run", rt.CycleCount())
			return
		case <-ticker.C:
			if err := rt.Tick(); err != nil {
				log.Error("cycle tick failed", "err", err, "cycle", rt.CycleCount())
				fmt.Fprintf(os.Stderr, "evo_cu: fatal cycle error: %v\n", err)
				os.Exit(1)
			}
		}
	}
}
