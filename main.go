package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/anchorview/internal/log"
	"github.com/milk9111/anchorview/prefabs"
	"github.com/milk9111/anchorview/tracking/sim"
	"github.com/milk9111/anchorview/viewer"
)

func main() {
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	debug := flag.Bool("debug", false, "show frame and tracking details")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	simFail := flag.Bool("sim-fail", false, "simulated platform refuses surface tracking")
	simDelay := flag.Duration("sim-delay", -1, "simulated acquisition delay (overrides sim.yaml)")
	watch := flag.Bool("watch", true, "hot reload camera.yaml and placement.yaml from prefabs/")
	flag.Parse()

	log.Init(*logLevel)
	logger := log.L()

	cfg, simSpec, err := loadConfig()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}
	if *simFail {
		simSpec.Fail = true
	}
	if *simDelay >= 0 {
		simSpec.AcquireDelay = *simDelay
	}
	platform := sim.New(viewer.SimConfig(simSpec))
	cfg.Platform = platform
	cfg.Logger = logger

	var watcher *prefabs.Watcher
	if *watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			logger.Debug("prefabs hot reload off", "err", err)
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("anchorview")

	game, err := NewGame(gameOptions{
		Platform: platform,
		FloorY:   simSpec.FloorY,
		Config:   cfg,
		Watcher:  watcher,
		Debug:    *debug,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("start viewer", "err", err)
		os.Exit(1)
	}

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("run", "err", err)
		os.Exit(1)
	}
}

func loadConfig() (viewer.Config, prefabs.SimSpec, error) {
	var cfg viewer.Config
	cam, err := prefabs.LoadCameraSpec()
	if err != nil {
		return cfg, prefabs.SimSpec{}, err
	}
	pl, err := prefabs.LoadPlacementSpec()
	if err != nil {
		return cfg, prefabs.SimSpec{}, err
	}
	model, err := prefabs.LoadModelSpec()
	if err != nil {
		return cfg, prefabs.SimSpec{}, err
	}
	simSpec, err := prefabs.LoadSimSpec()
	if err != nil {
		return cfg, prefabs.SimSpec{}, err
	}
	cfg.Camera, cfg.Placement, cfg.Model = cam, pl, model
	return cfg, simSpec, nil
}
