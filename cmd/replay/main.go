// Command replay runs a scripted placement session headless and prints the
// viewer state after every tick.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/milk9111/anchorview/internal/log"
	"github.com/milk9111/anchorview/prefabs"
	"github.com/milk9111/anchorview/viewer"
)

func main() {
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: replay [flags] scenario.yaml\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	log.Init(*logLevel)

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("replay: read %s: %w", path, err)
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return err
	}
	base, err := baseConfig()
	if err != nil {
		return err
	}
	return Run(sc, base, os.Stdout)
}

func baseConfig() (viewer.Config, error) {
	var cfg viewer.Config
	cam, err := prefabs.LoadCameraSpec()
	if err != nil {
		return cfg, err
	}
	pl, err := prefabs.LoadPlacementSpec()
	if err != nil {
		return cfg, err
	}
	model, err := prefabs.LoadModelSpec()
	if err != nil {
		return cfg, err
	}
	cfg.Camera, cfg.Placement, cfg.Model = cam, pl, model
	cfg.Logger = log.L()
	return cfg, nil
}
