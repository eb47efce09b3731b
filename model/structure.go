// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"fmt"

	"github.com/OrganizationUsername/FEALiTE2D/errs"
	"github.com/OrganizationUsername/FEALiTE2D/linalg"
)

// AnalysisStatus reports where a Structure stands in the assemble-solve
// pipeline (spec.md section 3).
type AnalysisStatus int

const (
	NotRun AnalysisStatus = iota
	Successful
	Failure
)

func (s AnalysisStatus) String() string {
	switch s {
	case Successful:
		return "Successful"
	case Failure:
		return "Failure"
	default:
		return "NotRun"
	}
}

// Structure owns the nodes and elements of a model by identity (spec.md
// section 3's ownership note) plus the results of a solve, grounded on
// the teacher's fem.Domain aggregate but reworked from a per-stage
// nonlinear-iteration aggregate into the linear, per-load-case one
// spec.md describes.
type Structure struct {
	Nodes    []*Node
	Elements []Element

	// LoadCasesToRun is set by the caller before Solve; Solve fails with
	// errs.ErrNoLoadCases when it is empty.
	LoadCasesToRun []*LoadCase

	NDof int

	GlobalStiffness *linalg.CSC

	// FixedEndLoads holds, per selected load case, the full 3*len(Nodes)
	// equivalent-load vector (both free and restrained partitions) built
	// by the assembler; the restrained partition is retained for
	// reaction computation (spec.md section 4.2).
	FixedEndLoads map[*LoadCase]linalg.Vec

	// Displacements holds, per selected load case, the solved free-DoF
	// displacement vector of length NDof.
	Displacements map[*LoadCase]linalg.Vec

	Status AnalysisStatus

	nodeSet map[*Node]bool
	elemSet map[Element]bool
}

// NewStructure allocates an empty structure.
func NewStructure() *Structure {
	return &Structure{
		nodeSet: make(map[*Node]bool),
		elemSet: make(map[Element]bool),
	}
}

// AddNode registers n with the structure; idempotent by identity.
func (s *Structure) AddNode(n *Node) error {
	if n == nil {
		return fmt.Errorf("model: add_node: %w: node is nil", errs.ErrInvalidInput)
	}
	if s.nodeSet[n] {
		return nil
	}
	n.structure = s
	s.nodeSet[n] = true
	s.Nodes = append(s.Nodes, n)
	return nil
}

// AddElement registers e with the structure, optionally registering its
// nodes too, and calls e.Initialize(). Idempotent by identity. Fails if
// e is nil.
func (s *Structure) AddElement(e Element, addNodes bool) error {
	if e == nil {
		return fmt.Errorf("model: add_element: %w: element is nil", errs.ErrInvalidInput)
	}
	if s.elemSet[e] {
		return nil
	}
	if addNodes {
		for _, n := range e.Nodes() {
			if err := s.AddNode(n); err != nil {
				return err
			}
		}
	}
	if err := e.Initialize(); err != nil {
		return fmt.Errorf("model: add_element: %w", err)
	}
	s.elemSet[e] = true
	s.Elements = append(s.Elements, e)
	return nil
}

// Results reports whether solved results are available.
func (s *Structure) Results() bool {
	return s.Status == Successful
}
