// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OrganizationUsername/FEALiTE2D/model"
)

func TestTrussStiffnessMatchesAxialFormula(t *testing.T) {
	n1 := model.NewNode(0, 0)
	n2 := model.NewNode(3, 4) // length 5, a 3-4-5 triangle
	mat := model.Material{E: 2e11, G: 8e10}
	sec := model.Section{A: 0.005}
	e := NewTrussElement2D(1, n1, n2, mat, sec, 2)
	require.NoError(t, e.Initialize())

	assert.InDelta(t, 5.0, e.Length(), 1e-9)
	m := mat.E * sec.A / 5.0
	kl := e.LocalStiffness()
	assert.InDelta(t, m, kl[0][0], 1e-3)
	assert.InDelta(t, -m, kl[0][3], 1e-3)
	assert.InDelta(t, 0.0, kl[1][1], 1e-9) // no transverse stiffness
	assert.True(t, kl.IsSymmetric(1e-6))
}

func TestTrussFixedEndForcesAxialPointLoad(t *testing.T) {
	n1 := model.NewNode(0, 0)
	n2 := model.NewNode(10, 0)
	mat := model.Material{E: 2e11, G: 8e10}
	sec := model.Section{A: 0.005}
	e := NewTrussElement2D(1, n1, n2, mat, sec, 2)
	require.NoError(t, e.Initialize())

	lc := model.NewLoadCase("dead", model.KindDead)
	e.AddLoad(&model.FramePointLoad{Fx: 100, Direction: model.Local, L1: 4, Case: lc})
	require.NoError(t, e.EvaluateGlobalFixedEndForces(lc))
	fg := e.GlobalFixedEndForces(lc)

	assert.InDelta(t, 100*(1-4.0/10.0), fg[0], 1e-6)
	assert.InDelta(t, 100*(4.0/10.0), fg[3], 1e-6)
	assert.InDelta(t, 100.0, fg[0]+fg[3], 1e-6)
}

func TestTrussHasNoEndRelease(t *testing.T) {
	n1 := model.NewNode(0, 0)
	n2 := model.NewNode(1, 0)
	e := NewTrussElement2D(1, n1, n2, model.Material{E: 1}, model.Section{A: 1}, 1)
	require.NoError(t, e.Initialize())
	assert.False(t, e.HasEndRelease())
}
