// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elements

import (
	"fmt"
	"math"

	"github.com/OrganizationUsername/FEALiTE2D/errs"
	"github.com/OrganizationUsername/FEALiTE2D/linalg"
	"github.com/OrganizationUsername/FEALiTE2D/model"
)

// TrussElement2D is a two-node axial-only bar, grounded on the teacher's
// fem/e_rod.go Rod element's role (an element carrying only axial load)
// but reworked from Rod's integration-point/nonlinear-material machinery
// into a single closed-form linear-elastic 4x4 local stiffness, then
// embedded into the module's uniform 3-DoF-per-node global contract
// (the rotational row/column of each node stays zero, exactly as the
// teacher's frame and truss elements coexist on a shared Umap in
// fem/domain.go).
type TrussElement2D struct {
	id     int
	ni, nj *model.Node
	mat    model.Material
	sec    model.Section
	nSeg   int

	length      float64
	t           linalg.Mat // 6x6, rotation block + zero rotational rows/cols
	kl          linalg.Mat // 6x6
	loads       []model.ElementLoad
	fixedEnd    map[*model.LoadCase]linalg.Vec
	segments    []*model.MeshSegment
	initialized bool
}

// NewTrussElement2D builds a truss element between ni and nj.
func NewTrussElement2D(id int, ni, nj *model.Node, mat model.Material, sec model.Section, nSeg int) *TrussElement2D {
	if nSeg <= 0 {
		nSeg = 10
	}
	return &TrussElement2D{
		id:       id,
		ni:       ni,
		nj:       nj,
		mat:      mat,
		sec:      sec,
		nSeg:     nSeg,
		fixedEnd: make(map[*model.LoadCase]linalg.Vec),
	}
}

func (e *TrussElement2D) ID() int               { return e.id }
func (e *TrussElement2D) Nodes() []*model.Node   { return []*model.Node{e.ni, e.nj} }
func (e *TrussElement2D) Length() float64        { return e.length }
func (e *TrussElement2D) LocalStiffness() linalg.Mat { return e.kl }
func (e *TrussElement2D) Transformation() linalg.Mat { return e.t }
func (e *TrussElement2D) HasEndRelease() bool    { return false }
func (e *TrussElement2D) Loads() []model.ElementLoad { return e.loads }
func (e *TrussElement2D) AddLoad(l model.ElementLoad) { e.loads = append(e.loads, l) }
func (e *TrussElement2D) MeshSegments() []*model.MeshSegment { return e.segments }

// Initialize computes the length, transformation and local stiffness.
func (e *TrussElement2D) Initialize() error {
	if e.initialized {
		return nil
	}
	dx := e.nj.X - e.ni.X
	dy := e.nj.Y - e.ni.Y
	l := math.Hypot(dx, dy)
	if l <= 0 {
		return fmt.Errorf("elements: truss %d: %w: zero-length element", e.id, errs.ErrInvalidInput)
	}
	e.length = l

	c, s := dx/l, dy/l
	t := linalg.NewMat(6)
	t[0][0], t[0][1] = c, s
	t[1][0], t[1][1] = -s, c
	t[2][2] = 1
	t[3][3], t[3][4] = c, s
	t[4][3], t[4][4] = -s, c
	t[5][5] = 1
	e.t = t

	m := e.mat.E * e.sec.A / l
	kl := linalg.NewMat(6)
	kl[0][0] = m
	kl[0][3] = -m
	kl[3][0] = -m
	kl[3][3] = m
	e.kl = kl

	e.segments = make([]*model.MeshSegment, e.nSeg)
	dxseg := l / float64(e.nSeg)
	for i := 0; i < e.nSeg; i++ {
		e.segments[i] = &model.MeshSegment{
			X1: float64(i) * dxseg,
			X2: float64(i+1) * dxseg,
			A:  e.sec.A,
			E:  e.mat.E,
			I:  0,
		}
	}

	e.initialized = true
	return nil
}

// ShapeFunctionAt returns the 3x6 interpolation matrix; a truss only
// carries an axial field, so the transverse/rotation rows are zero.
func (e *TrussElement2D) ShapeFunctionAt(x float64) linalg.Mat {
	na1, na2 := axialShapeFns(e.length)
	out := make(linalg.Mat, 3)
	for r := range out {
		out[r] = make([]float64, 6)
	}
	out[0][0] = na1.eval(x)
	out[0][3] = na2.eval(x)
	return out
}

// EvaluateGlobalFixedEndForces computes and caches the global equivalent
// end-force vector for lc from this element's axial span loads. Only
// the Wx/Fx components of attached loads act on a truss; transverse
// components are ignored since a pin-ended bar cannot carry them.
func (e *TrussElement2D) EvaluateGlobalFixedEndForces(lc *model.LoadCase) error {
	fl := linalg.NewVec(6)
	na1, na2 := axialShapeFns(e.length)

	for _, ld := range e.loads {
		if ld.LoadCase() != lc {
			continue
		}
		switch v := ld.(type) {
		case *model.FramePointLoad:
			fx := e.resolveAxial(v.Fx, v.Fy, v.Direction)
			fl[0] += fx * na1.eval(v.L1)
			fl[3] += fx * na2.eval(v.L1)
		case *model.FrameUniformLoad:
			fx := e.resolveAxial(v.Wx, v.Wy, v.Direction)
			a, b := v.L1, e.length-v.L2
			fl[0] += poly{fx}.mul(na1).integrate(a, b)
			fl[3] += poly{fx}.mul(na2).integrate(a, b)
		case *model.FrameTrapezoidalLoad:
			fx1 := e.resolveAxial(v.Wx1, v.Wy1, v.Direction)
			fx2 := e.resolveAxial(v.Wx2, v.Wy2, v.Direction)
			a, b := v.L1, e.length-v.L2
			w := linearLoad(a, b, fx1, fx2)
			fl[0] += w.mul(na1).integrate(a, b)
			fl[3] += w.mul(na2).integrate(a, b)
		default:
			return fmt.Errorf("elements: truss %d: %w: unsupported load type", e.id, errs.ErrInvalidInput)
		}
	}

	e.fixedEnd[lc] = linalg.MatTrVecMul(1, e.t, fl)
	return nil
}

// GlobalFixedEndForces returns the cached vector for lc, zero if absent.
func (e *TrussElement2D) GlobalFixedEndForces(lc *model.LoadCase) linalg.Vec {
	if v, ok := e.fixedEnd[lc]; ok {
		return v
	}
	return linalg.NewVec(6)
}

// resolveAxial projects a load given in global or local axes onto this
// element's axial direction.
func (e *TrussElement2D) resolveAxial(fx, fy float64, dir model.Direction) float64 {
	if dir == model.Local {
		return fx
	}
	c, s := e.t[0][0], e.t[0][1]
	return c*fx + s*fy
}
