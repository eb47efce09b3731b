// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dofnum implements the deterministic degree-of-freedom
// renumbering that places all free DoFs before all restrained ones,
// grounded on the per-stage equation-numbering loop of the teacher's
// fem/domain.go Domain.SetStage (which walks cells then nodes assigning
// one increasing equation counter), reworked here into the free/
// restrained partition spec.md section 4.1 requires.
package dofnum

import (
	"fmt"
	"sort"

	"github.com/OrganizationUsername/FEALiTE2D/model"
)

// Number assigns global equation indices to every node's three DoFs
// (Ux, Uy, Rz), placing free DoFs in [0, NDof) and restrained DoFs in
// [NDof, 3*len(Nodes)). Nodes are visited in order of descending free-
// DoF count (ties broken by original registration order) so that the
// most-restrained nodes are processed last, per spec.md section 4.1.
// Returns NDof and stores it on s.
func Number(s *model.Structure) (int, error) {
	if s == nil {
		return 0, fmt.Errorf("dofnum: structure is nil")
	}

	order := make([]*model.Node, len(s.Nodes))
	copy(order, s.Nodes)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].FreeDofCount() > order[j].FreeDofCount()
	})

	ndof := 0
	for _, n := range s.Nodes {
		ndof += n.FreeDofCount()
	}

	freeNext := 0
	restrNext := ndof
	for _, n := range order {
		var idx [3]int
		for i := 0; i < 3; i++ {
			restrained := n.Support != nil && n.Support.At(i)
			if restrained {
				idx[i] = restrNext
				restrNext++
			} else {
				idx[i] = freeNext
				freeNext++
			}
		}
		n.SetDofIndices(idx[0], idx[1], idx[2])
	}

	s.NDof = ndof
	return ndof, nil
}
