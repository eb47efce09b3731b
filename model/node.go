// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"math"

	"github.com/OrganizationUsername/FEALiTE2D/linalg"
)

// Support marks which of a node's three DoFs (Ux, Uy, Rz) are restrained.
type Support struct {
	Ux, Uy, Rz bool
}

// Restrained reports whether any DoF of s is restrained.
func (s Support) Restrained() bool {
	return s.Ux || s.Uy || s.Rz
}

// Count returns how many of the node's three DoFs are restrained.
func (s Support) Count() int {
	n := 0
	if s.Ux {
		n++
	}
	if s.Uy {
		n++
	}
	if s.Rz {
		n++
	}
	return n
}

// At returns whether the i-th DoF (0=Ux, 1=Uy, 2=Rz) is restrained.
func (s Support) At(i int) bool {
	switch i {
	case 0:
		return s.Ux
	case 1:
		return s.Uy
	default:
		return s.Rz
	}
}

// Spring is an elastic support: a 3x3 global stiffness matrix added to
// the node's diagonal block during assembly (spec.md section 4.2).
type Spring struct {
	K linalg.Mat // 3x3
}

// Node holds a point in the structure's geometry plus boundary
// conditions and applied loads, grounded on the teacher's fem/node.go
// Dof-list pattern but specialized to the fixed (Ux, Uy, Rz) DoF set of
// a 2D frame/truss node.
type Node struct {
	ID int

	X, Y float64

	Support *Support // nil => fully free
	Spring  *Spring  // nil => no elastic support

	// LocalAxisAngle orients a skewed support/local-direction loads,
	// measured in radians from the global X axis. Zero (the default)
	// means the node's local frame coincides with global.
	LocalAxisAngle float64

	NodalLoads      []NodalLoad
	SettlementLoads []SupportDisplacementLoad

	// dofIndex holds the global equation numbers assigned by the
	// DofNumberer, in the order (Ux, Uy, Rz). Populated exactly once;
	// -1 before numbering.
	dofIndex [3]int

	structure *Structure // non-owning back-reference
}

// NewNode allocates a node at (x, y), unrestrained and unregistered.
func NewNode(x, y float64) *Node {
	return &Node{X: x, Y: y, dofIndex: [3]int{-1, -1, -1}}
}

// SetSupport marks a node as restrained in the given DoFs.
func (n *Node) SetSupport(ux, uy, rz bool) *Node {
	n.Support = &Support{Ux: ux, Uy: uy, Rz: rz}
	return n
}

// SetSpring attaches an elastic support with the given 3x3 global
// stiffness matrix.
func (n *Node) SetSpring(k linalg.Mat) *Node {
	n.Spring = &Spring{K: k}
	return n
}

// AddNodalLoad registers a concentrated nodal load.
func (n *Node) AddNodalLoad(l NodalLoad) {
	n.NodalLoads = append(n.NodalLoads, l)
}

// AddSettlement registers a prescribed support displacement/rotation.
func (n *Node) AddSettlement(l SupportDisplacementLoad) {
	n.SettlementLoads = append(n.SettlementLoads, l)
}

// IsRestrained reports whether this node has any restrained DoF.
func (n *Node) IsRestrained() bool {
	return n.Support != nil && n.Support.Restrained()
}

// FreeDofCount returns how many of the node's three DoFs are free.
func (n *Node) FreeDofCount() int {
	if n.Support == nil {
		return 3
	}
	return 3 - n.Support.Count()
}

// DofIndices returns the three global equation numbers (Ux, Uy, Rz),
// valid only after the DofNumberer has run.
func (n *Node) DofIndices() [3]int { return n.dofIndex }

// SetDofIndices is called exactly once by the DofNumberer.
func (n *Node) SetDofIndices(ux, uy, rz int) {
	n.dofIndex = [3]int{ux, uy, rz}
}

// Structure returns the owning structure, or nil before registration.
func (n *Node) Structure() *Structure { return n.structure }

// Transformation returns the orthogonal 3x3 matrix rotating a vector
// from global into this node's local frame (identity unless
// LocalAxisAngle is set), used to convert Local-direction NodalLoads to
// global before assembly (spec.md section 3).
func (n *Node) Transformation() linalg.Mat {
	t := linalg.NewMat(3)
	c, s := math.Cos(n.LocalAxisAngle), math.Sin(n.LocalAxisAngle)
	t[0][0], t[0][1] = c, s
	t[1][0], t[1][1] = -s, c
	t[2][2] = 1
	return t
}

// SettlementAt returns the sum of all prescribed settlement components
// for lc at this node, used by PostProcessor.NodeDisplacement for
// restrained DoFs (spec.md section 4.4) and by the assembler's
// prescribed-displacement extension (spec.md section 4.2).
func (n *Node) SettlementAt(lc *LoadCase) SupportDisplacementLoad {
	var out SupportDisplacementLoad
	for _, s := range n.SettlementLoads {
		if s.Case == lc {
			out.Ux += s.Ux
			out.Uy += s.Uy
			out.Rz += s.Rz
		}
	}
	return out
}
