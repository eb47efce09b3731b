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

func horizontalFrame(t *testing.T, releaseI, releaseJ bool) (*FrameElement2D, *model.Node, *model.Node, float64, float64, float64) {
	t.Helper()
	n1 := model.NewNode(0, 0)
	n2 := model.NewNode(4, 0)
	mat := model.Material{E: 2e11, G: 8e10}
	sec := model.Section{A: 0.02, Izz: 1e-4}
	e := NewFrameElement2D(1, n1, n2, mat, sec, releaseI, releaseJ, 4)
	require.NoError(t, e.Initialize())
	return e, n1, n2, 4.0, mat.E, sec.Izz
}

func TestFrameStiffnessMatchesClosedForm(t *testing.T) {
	e, _, _, l, E, I := horizontalFrame(t, false, false)
	n := E * I / (l * l * l)
	kl := e.LocalStiffness()
	assert.InDelta(t, 12*n, kl[1][1], 1e-3)
	assert.InDelta(t, 4*l*l*n, kl[2][2], 1e-3)
	assert.InDelta(t, 6*l*n, kl[1][2], 1e-3)
	assert.True(t, kl.IsSymmetric(1e-6))
}

func TestFrameTransformationIsOrthogonal(t *testing.T) {
	e, _, _, _, _, _ := horizontalFrame(t, false, false)
	assert.True(t, e.Transformation().IsOrthogonal(1e-9))
}

func TestFrameReleaseZerosRotationRowAndColumn(t *testing.T) {
	e, _, _, _, _, _ := horizontalFrame(t, false, true)
	kl := e.LocalStiffness()
	for i := 0; i < 6; i++ {
		assert.InDelta(t, 0.0, kl[5][i], 1e-9)
		assert.InDelta(t, 0.0, kl[i][5], 1e-9)
	}
	assert.True(t, kl.IsSymmetric(1e-6))
}

func TestFixedEndForcesFullUniformLoadMatchesTextbookFormula(t *testing.T) {
	e, _, _, l, _, _ := horizontalFrame(t, false, false)
	lc := model.NewLoadCase("dead", model.KindDead)
	e.AddLoad(&model.FrameUniformLoad{Wy: -10, Direction: model.Global, L1: 0, L2: 0, Case: lc})

	require.NoError(t, e.EvaluateGlobalFixedEndForces(lc))
	fg := e.GlobalFixedEndForces(lc)
	// element is horizontal, so global == local
	assert.InDelta(t, -10*l/2, fg[1], 1e-6)
	assert.InDelta(t, -10*l*l/12, fg[2], 1e-6)
	assert.InDelta(t, -10*l/2, fg[4], 1e-6)
	assert.InDelta(t, 10*l*l/12, fg[5], 1e-6)
}

func TestFixedEndForcesMidspanPointLoadMatchesTextbookFormula(t *testing.T) {
	e, _, _, l, _, _ := horizontalFrame(t, false, false)
	lc := model.NewLoadCase("live", model.KindLive)
	e.AddLoad(&model.FramePointLoad{Fy: -100, Direction: model.Global, L1: l / 2, Case: lc})

	require.NoError(t, e.EvaluateGlobalFixedEndForces(lc))
	fg := e.GlobalFixedEndForces(lc)
	assert.InDelta(t, -50.0, fg[1], 1e-6)
	assert.InDelta(t, -100*l/8, fg[2], 1e-6)
	assert.InDelta(t, -50.0, fg[4], 1e-6)
	assert.InDelta(t, 100*l/8, fg[5], 1e-6)
}

func TestFixedEndForcesReleasedEndCarriesNoMoment(t *testing.T) {
	e, _, _, _, _, _ := horizontalFrame(t, false, true)
	lc := model.NewLoadCase("dead", model.KindDead)
	e.AddLoad(&model.FrameUniformLoad{Wy: -10, Direction: model.Global, Case: lc})

	require.NoError(t, e.EvaluateGlobalFixedEndForces(lc))
	fg := e.GlobalFixedEndForces(lc)
	assert.InDelta(t, 0.0, fg[5], 1e-6)
}

func TestShapeFunctionAtEndpointsRecoverNodalValues(t *testing.T) {
	e, _, _, l, _, _ := horizontalFrame(t, false, false)
	d := []float64{0.001, 0.002, 0.003, 0.004, 0.005, 0.006}
	n0 := e.ShapeFunctionAt(0)
	nl := e.ShapeFunctionAt(l)

	var v0, vl [3]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 6; c++ {
			v0[r] += n0[r][c] * d[c]
			vl[r] += nl[r][c] * d[c]
		}
	}
	assert.InDelta(t, d[0], v0[0], 1e-9)
	assert.InDelta(t, d[1], v0[1], 1e-9)
	assert.InDelta(t, d[2], v0[2], 1e-9)
	assert.InDelta(t, d[3], vl[0], 1e-9)
	assert.InDelta(t, d[4], vl[1], 1e-9)
	assert.InDelta(t, d[5], vl[2], 1e-9)
}

func TestZeroLengthElementFails(t *testing.T) {
	n1 := model.NewNode(1, 1)
	n2 := model.NewNode(1, 1)
	e := NewFrameElement2D(1, n1, n2, model.Material{E: 1, G: 1}, model.Section{A: 1, Izz: 1}, false, false, 2)
	err := e.Initialize()
	require.Error(t, err)
}

func TestInitializeIsIdempotent(t *testing.T) {
	e, _, _, _, _, _ := horizontalFrame(t, false, false)
	k1 := e.LocalStiffness()
	require.NoError(t, e.Initialize())
	assert.Equal(t, k1, e.LocalStiffness())
}
