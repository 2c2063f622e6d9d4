// navsim animates navigation agents roaming a generated obstacle course
// in the terminal: grid BFS as the primary planner, the weighted nav
// graph as fallback, stall recovery visible as agents bounce off walls
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	configPath string
	logPath    string
	width      int
	height     int
	agents     int
	braiding   float64
	seed       int64
	mute       bool
}

func main() {
	var opts options

	root := &cobra.Command{
		Use:          "navsim",
		Short:        "Terminal navigation sandbox",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	root.Flags().StringVarP(&opts.configPath, "config", "c", "", "agent/motion YAML configuration file")
	root.Flags().StringVar(&opts.logPath, "log", "", "write debug logs to this file")
	root.Flags().IntVar(&opts.width, "width", 41, "world width in cells")
	root.Flags().IntVar(&opts.height, "height", 21, "world height in cells")
	root.Flags().IntVarP(&opts.agents, "agents", "n", 3, "number of roaming agents")
	root.Flags().Float64Var(&opts.braiding, "braiding", 0.3, "route diversity, 0 (single route) to 1 (no dead ends)")
	root.Flags().Int64Var(&opts.seed, "seed", 0, "world seed, 0 for random")
	root.Flags().BoolVar(&opts.mute, "mute", false, "disable arrival/stuck tones")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(opts options) error {
	logger, err := buildLogger(opts.logPath)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if opts.seed == 0 {
		opts.seed = time.Now().UnixNano()
	}

	sim, err := newSimulation(opts, logger)
	if err != nil {
		return fmt.Errorf("navsim: setup: %w", err)
	}
	sim.run()
	return nil
}

// buildLogger writes development-format logs to a file so they do not
// tear the tcell screen; without a path logging is off
func buildLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
