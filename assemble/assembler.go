// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assemble scatters element and nodal contributions into the
// global sparse stiffness matrix and the per-load-case equivalent load
// vector, grounded on the teacher's fem/domain.go assembly pass
// (d.Kb.Start() followed by each element's AddToKb/AddToRhs) reworked
// from residual-based nonlinear assembly into one-shot linear assembly.
package assemble

import (
	"fmt"

	"github.com/OrganizationUsername/FEALiTE2D/errs"
	"github.com/OrganizationUsername/FEALiTE2D/linalg"
	"github.com/OrganizationUsername/FEALiTE2D/model"
)

// diagTol is the minimum acceptable diagonal value at a free DoF;
// anything at or below it is treated as a structurally singular
// contribution (spec.md section 4.2).
const diagTol = 0.0

// dofMap returns the concatenated global equation indices for an
// element's nodes, in node order (Ux, Uy, Rz per node), mirroring the
// teacher's per-element Umap built in SetEqs (fem/e_beam.go,
// fem/e_rod.go).
func dofMap(e model.Element) []int {
	nodes := e.Nodes()
	m := make([]int, 0, 3*len(nodes))
	for _, n := range nodes {
		idx := n.DofIndices()
		m = append(m, idx[0], idx[1], idx[2])
	}
	return m
}

// AssembleStiffness scatters every element's global stiffness
// (transpose(T)*Kl*T) and every node's spring stiffness into the global
// sparse matrix, compresses it to symmetric CSC keeping the upper
// triangle, and verifies that every free-DoF diagonal entry is strictly
// positive. Returns errs.ErrSingular if that invariant fails.
func AssembleStiffness(s *model.Structure) (*linalg.CSC, error) {
	n := 3 * len(s.Nodes)
	tri := linalg.NewTriplet(n, n*12)

	for _, e := range s.Elements {
		kl := e.LocalStiffness()
		t := e.Transformation()
		kg := linalg.MatTrMul3(1, t, kl)
		m := dofMap(e)
		for i := range m {
			for j := range m {
				v := kg[i][j]
				if v != 0 {
					tri.Put(m[i], m[j], v)
				}
			}
		}
	}

	for _, nd := range s.Nodes {
		if nd.Spring == nil {
			continue
		}
		idx := nd.DofIndices()
		k := nd.Spring.K
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				if k[i][j] != 0 {
					tri.Put(idx[i], idx[j], k[i][j])
				}
			}
		}
	}

	csc := tri.ToCSC()

	diag := csc.Diag()
	for i := 0; i < s.NDof; i++ {
		if diag[i] <= diagTol {
			return nil, fmt.Errorf("assemble: %w: free DoF %d has non-positive diagonal stiffness", errs.ErrSingular, i)
		}
	}

	return csc, nil
}

// AssembleLoads builds the full (3*len(Nodes)) equivalent-load vector
// for lc: element equivalent end forces (GlobalFixedEndForces, which
// act in the direction of the span loads, i.e. the negated fixed-end
// reactions) plus nodal loads rotated to global, then overwrites every
// restrained-DoF entry with the prescribed support displacement for lc,
// zero where none is given (the "prescribed-displacement extension" of
// spec.md section 4.2). The
// leading s.NDof entries are the free-partition RHS delivered to the
// solver; the trailing entries are retained on the structure for
// reaction computation.
func AssembleLoads(s *model.Structure, lc *model.LoadCase) (linalg.Vec, error) {
	n := 3 * len(s.Nodes)
	full := linalg.NewVec(n)

	for _, e := range s.Elements {
		if err := e.EvaluateGlobalFixedEndForces(lc); err != nil {
			return nil, fmt.Errorf("assemble: element %d: %w", e.ID(), err)
		}
		fg := e.GlobalFixedEndForces(lc)
		m := dofMap(e)
		for i, dof := range m {
			full[dof] += fg[i]
		}
	}

	for _, nd := range s.Nodes {
		idx := nd.DofIndices()
		t := nd.Transformation()
		for _, nl := range nd.NodalLoads {
			if nl.Case != lc {
				continue
			}
			local := linalg.Vec{nl.Fx, nl.Fy, nl.Mz}
			var g linalg.Vec
			if nl.Direction == model.Local {
				g = linalg.MatTrVecMul(1, t, local)
			} else {
				g = local
			}
			full[idx[0]] += g[0]
			full[idx[1]] += g[1]
			full[idx[2]] += g[2]
		}
	}

	for _, nd := range s.Nodes {
		if nd.Support == nil {
			continue
		}
		idx := nd.DofIndices()
		settle := nd.SettlementAt(lc)
		if nd.Support.Ux {
			full[idx[0]] = settle.Ux
		}
		if nd.Support.Uy {
			full[idx[1]] = settle.Uy
		}
		if nd.Support.Rz {
			full[idx[2]] = settle.Rz
		}
	}

	return full, nil
}

