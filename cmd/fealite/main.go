// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command fealite is the command-line front-end to the module, grounded
// on the teacher's main.go (banner message, flag-driven single-shot
// run) reworked from flag.Parse/fem.Start/fem.Run onto a cobra command
// tree with a YAML config file and zerolog logging.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/OrganizationUsername/FEALiTE2D/config"
	"github.com/OrganizationUsername/FEALiTE2D/dofnum"
	"github.com/OrganizationUsername/FEALiTE2D/elements"
	"github.com/OrganizationUsername/FEALiTE2D/model"
	"github.com/OrganizationUsername/FEALiTE2D/postprocess"
	"github.com/OrganizationUsername/FEALiTE2D/solve"
)

var (
	cfgPath  string
	logLevel string
)

func main() {
	root := &cobra.Command{
		Use:   "fealite",
		Short: "2D linear finite-element analysis of frame/truss structures",
		Long: `fealite -- 2D linear finite-element analysis

Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
Use of this source code is governed by a BSD-style
license that can be found in the LICENSE file.`,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the config's log level (debug|info|warn|error)")
	root.AddCommand(solveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func solveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve",
		Short: "build and solve the built-in demonstration structure",
		RunE:  runSolve,
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)

	s, dead, live := demoCantilever()

	sv := solve.New(logger)
	if err := sv.Solve(s, dofnum.Number); err != nil {
		return err
	}

	pp, err := postprocess.New(s, postprocess.Tolerances{
		Equilibrium: cfg.Tolerances.Equilibrium,
		Dust:        cfg.Tolerances.Dust,
	})
	if err != nil {
		return err
	}

	for _, lc := range s.LoadCasesToRun {
		if err := pp.CheckEquilibrium(lc); err != nil {
			logger.Warn().Err(err).Str("load_case", lc.Name).Msg("solve: equilibrium check failed")
		}
	}

	for _, nd := range s.Nodes {
		d := pp.NodeDisplacement(nd, live)
		logger.Info().
			Int("node", nd.ID).
			Float64("ux", d.Ux).Float64("uy", d.Uy).Float64("rz", d.Rz).
			Msg("displacement")
	}
	for _, nd := range s.Nodes {
		if nd.Support == nil || !nd.Support.Restrained() {
			continue
		}
		r := pp.SupportReaction(nd, dead)
		logger.Info().
			Int("node", nd.ID).
			Float64("fx", r.Fx).Float64("fy", r.Fy).Float64("mz", r.Mz).
			Msg("reaction")
	}
	return nil
}

// demoCantilever builds a small cantilever frame (fixed base, tip point
// load) used as the CLI's built-in smoke-test structure. Returns the
// structure plus the two load cases it was given.
func demoCantilever() (*model.Structure, *model.LoadCase, *model.LoadCase) {
	s := model.NewStructure()

	n1 := model.NewNode(0, 0).SetSupport(true, true, true)
	n2 := model.NewNode(0, 3)

	mat := model.Material{E: 2e11, G: 8e10}
	sec := model.Section{A: 0.01, Izz: 8e-5}

	dead := model.NewLoadCase("dead", model.KindDead)
	live := model.NewLoadCase("live", model.KindLive)

	n2.AddNodalLoad(model.NodalLoad{Fx: 1000, Direction: model.Global, Case: live})

	e1 := elements.NewFrameElement2D(1, n1, n2, mat, sec, false, false, 10)

	_ = s.AddNode(n1)
	_ = s.AddNode(n2)
	_ = s.AddElement(e1, false)

	s.LoadCasesToRun = []*model.LoadCase{dead, live}
	return s, dead, live
}
