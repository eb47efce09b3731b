// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solve drives the assemble-factorize-solve pipeline for every
// selected load case, grounded on the teacher's fem/solver.go Run loop
// (alloc domains, loop over stages, clean up the linear solver on exit)
// reworked from a time-stepping nonlinear loop into a single linear
// multi-load-case pass, and on fem/domain.go's TimeUpdate (which calls
// d.LinSol.Fact() once then SolveR() per right-hand side) for the
// factorize-once-solve-many pattern used here across load cases.
package solve

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/OrganizationUsername/FEALiTE2D/assemble"
	"github.com/OrganizationUsername/FEALiTE2D/errs"
	"github.com/OrganizationUsername/FEALiTE2D/linalg"
	"github.com/OrganizationUsername/FEALiTE2D/model"
)

// Solver runs the linear analysis of a model.Structure.
type Solver struct {
	Log zerolog.Logger
}

// New returns a Solver logging through log. A zero Logger discards
// output, matching zerolog.Nop() semantics.
func New(log zerolog.Logger) *Solver {
	return &Solver{Log: log}
}

// Solve numbers DoFs, assembles the global stiffness matrix once,
// factorizes it once, then assembles and back-substitutes the
// equivalent-load vector for every load case in s.LoadCasesToRun. Sets
// s.Status to Successful or Failure and returns the first error
// encountered, wrapping errs.ErrNoLoadCases or errs.ErrSingular as
// appropriate (spec.md section 4.6).
func (sv *Solver) Solve(s *model.Structure, numberFn func(*model.Structure) (int, error)) error {
	if len(s.LoadCasesToRun) == 0 {
		s.Status = model.Failure
		return fmt.Errorf("solve: %w", errs.ErrNoLoadCases)
	}

	start := time.Now()

	if _, err := numberFn(s); err != nil {
		s.Status = model.Failure
		return fmt.Errorf("solve: number DoFs: %w", err)
	}

	csc, err := assemble.AssembleStiffness(s)
	if err != nil {
		s.Status = model.Failure
		return fmt.Errorf("solve: %w", err)
	}
	s.GlobalStiffness = csc

	fact, err := linalg.Factorize(csc, s.NDof)
	if err != nil {
		s.Status = model.Failure
		return fmt.Errorf("solve: factorize: %w", err)
	}

	sv.Log.Info().
		Int("equations", s.NDof).
		Int("load_cases", len(s.LoadCasesToRun)).
		Str("factorization", factKindName(fact.Kind())).
		Msg("solve: starting")

	s.FixedEndLoads = make(map[*model.LoadCase]linalg.Vec)
	s.Displacements = make(map[*model.LoadCase]linalg.Vec)

	for _, lc := range s.LoadCasesToRun {
		full, err := assemble.AssembleLoads(s, lc)
		if err != nil {
			s.Status = model.Failure
			return fmt.Errorf("solve: load case %q: %w", lc.Name, err)
		}
		s.FixedEndLoads[lc] = full

		rhs := full[:s.NDof]
		x, err := fact.Solve(rhs)
		if err != nil {
			s.Status = model.Failure
			return fmt.Errorf("solve: load case %q: %w", lc.Name, err)
		}
		s.Displacements[lc] = x
	}

	s.Status = model.Successful
	sv.Log.Info().
		Dur("elapsed", time.Since(start)).
		Msg("solve: finished")
	return nil
}

func factKindName(k linalg.FactKind) string {
	if k == linalg.FactCholesky {
		return "cholesky"
	}
	return "qr"
}
