// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OrganizationUsername/FEALiTE2D/dofnum"
	"github.com/OrganizationUsername/FEALiTE2D/elements"
	"github.com/OrganizationUsername/FEALiTE2D/errs"
	"github.com/OrganizationUsername/FEALiTE2D/model"
)

func TestSolveCantileverTipLoadMatchesEulerFormula(t *testing.T) {
	s := model.NewStructure()
	n1 := model.NewNode(0, 0).SetSupport(true, true, true)
	n2 := model.NewNode(0, 3)
	mat := model.Material{E: 2e11, G: 8e10}
	sec := model.Section{A: 0.01, Izz: 8e-5}
	e := elements.NewFrameElement2D(1, n1, n2, mat, sec, false, false, 4)

	lc := model.NewLoadCase("live", model.KindLive)
	const P = 1000.0
	n2.AddNodalLoad(model.NodalLoad{Fx: P, Direction: model.Global, Case: lc})

	require.NoError(t, s.AddNode(n1))
	require.NoError(t, s.AddNode(n2))
	require.NoError(t, s.AddElement(e, false))
	s.LoadCasesToRun = []*model.LoadCase{lc}

	sv := New(zerolog.Nop())
	require.NoError(t, sv.Solve(s, dofnum.Number))
	assert.Equal(t, model.Successful, s.Status)

	idx := n2.DofIndices()
	ux := s.Displacements[lc][idx[0]]

	l := 3.0
	want := P * l * l * l / (3 * mat.E * sec.Izz)
	assert.InDelta(t, want, ux, want*1e-6)
}

func TestSolveFailsWithNoLoadCases(t *testing.T) {
	s := model.NewStructure()
	n1 := model.NewNode(0, 0).SetSupport(true, true, true)
	n2 := model.NewNode(1, 0)
	e := elements.NewTrussElement2D(1, n1, n2, model.Material{E: 2e11}, model.Section{A: 0.01}, 2)
	require.NoError(t, s.AddNode(n1))
	require.NoError(t, s.AddNode(n2))
	require.NoError(t, s.AddElement(e, false))

	sv := New(zerolog.Nop())
	err := sv.Solve(s, dofnum.Number)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNoLoadCases)
	assert.Equal(t, model.Failure, s.Status)
}

func TestSolveMechanismIsSingular(t *testing.T) {
	s := model.NewStructure()
	n1 := model.NewNode(0, 0) // no support at all: rigid-body mechanism
	n2 := model.NewNode(1, 0)
	mat := model.Material{E: 2e11, G: 8e10}
	sec := model.Section{A: 0.01, Izz: 8e-5}
	e := elements.NewFrameElement2D(1, n1, n2, mat, sec, true, true, 2)

	lc := model.NewLoadCase("live", model.KindLive)
	n2.AddNodalLoad(model.NodalLoad{Fy: -10, Direction: model.Global, Case: lc})

	require.NoError(t, s.AddNode(n1))
	require.NoError(t, s.AddNode(n2))
	require.NoError(t, s.AddElement(e, false))
	s.LoadCasesToRun = []*model.LoadCase{lc}

	sv := New(zerolog.Nop())
	err := sv.Solve(s, dofnum.Number)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrSingular)
	assert.Equal(t, model.Failure, s.Status)
}
