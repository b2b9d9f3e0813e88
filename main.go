// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/cpmech/cofem/fem"
	_ "github.com/cpmech/cofem/linsol"
	"github.com/cpmech/cofem/out"
	"github.com/cpmech/cofem/prob"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
)

var (
	verbose  bool // show messages
	plot     bool // plot norms after solving
	solution bool // print solution table
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "cofem",
		Short:         "nonlinear solver for coupled field and boundary problems",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	runCmd := &cobra.Command{
		Use:   "run [simulation.yaml]",
		Short: "run simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show messages")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot norms history")
	runCmd.Flags().BoolVar(&solution, "solution", false, "print solution table")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list problem types, linear solvers and overconstraint handlers",
		Run: func(cmd *cobra.Command, args []string) {
			io.Pf("problem types  : %v\n", prob.Types())
			io.Pf("linear solvers : %v\n", fem.LinSols())
			io.Pf("handlers       : %v\n", fem.Handlers())
		},
	}

	rootCmd.AddCommand(runCmd, listCmd)
	if err := rootCmd.Execute(); err != nil {
		io.PfRed("\nERROR: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) (err error) {

	// message
	if verbose {
		io.PfWhite("\nCofem -- nonlinear solver for coupled field and boundary problems\n")
		io.Pf("Copyright 2016 The Gofem Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")
	}

	// analysis data
	analysis, err := fem.NewMain(args[0], verbose)
	if err != nil {
		return
	}

	// run simulation
	err = analysis.Run()

	// output
	s := analysis.Solver
	if len(s.Norms) > 0 {
		io.Pf("%s", out.Norms(s))
	}
	if solution || analysis.Sim.Data.ListBcs {
		io.Pf("%s", out.Solution(s))
	}
	if plot || analysis.Sim.Data.Plot {
		io.Pf("%s\n", out.PlotNorms(s, nil))
	}
	return
}
