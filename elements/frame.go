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

// FrameElement2D is an Euler-Bernoulli 2D beam with optional moment
// releases at either end, grounded on the teacher's fem/e_beam.go Beam
// element: the same T/Kl/K construction (o.Kl[...] = m, 12n, 6Ln, 4L²n
// entries, K := T^T*Kl*T via the gosl/la.MatTrMul3 convention mirrored
// in linalg.MatTrMul3), reworked from a single fixed Kl into a per-
// element condensed Kl that accounts for end releases (spec.md section
// 9), and extended with a per-load-case fixed-end-force evaluation that
// the teacher's nonlinear residual model did not need.
type FrameElement2D struct {
	id       int
	ni, nj   *model.Node
	mat      model.Material
	sec      model.Section
	releaseI bool
	releaseJ bool
	nSeg     int

	length      float64
	t           linalg.Mat // 6x6
	klFull      linalg.Mat // 6x6, no releases applied
	kl          linalg.Mat // 6x6, condensed for releases
	released    []int      // subset of {2, 5}: released local rotation dofs
	kept        []int      // the other four local dofs
	condenseRow linalg.Mat // len(released) x len(kept): -Krr^-1 * Kro

	loads     []model.ElementLoad
	fixedEnd  map[*model.LoadCase]linalg.Vec
	segments  []*model.MeshSegment
	initialized bool
}

// NewFrameElement2D builds a frame element between ni and nj. nSeg sets
// the number of mesh segments used for internal-force/displacement
// diagrams (spec.md section 4.4); a value <= 0 defaults to 10.
func NewFrameElement2D(id int, ni, nj *model.Node, mat model.Material, sec model.Section, releaseI, releaseJ bool, nSeg int) *FrameElement2D {
	if nSeg <= 0 {
		nSeg = 10
	}
	return &FrameElement2D{
		id:       id,
		ni:       ni,
		nj:       nj,
		mat:      mat,
		sec:      sec,
		releaseI: releaseI,
		releaseJ: releaseJ,
		nSeg:     nSeg,
		fixedEnd: make(map[*model.LoadCase]linalg.Vec),
	}
}

func (e *FrameElement2D) ID() int             { return e.id }
func (e *FrameElement2D) Nodes() []*model.Node { return []*model.Node{e.ni, e.nj} }
func (e *FrameElement2D) Length() float64      { return e.length }
func (e *FrameElement2D) LocalStiffness() linalg.Mat { return e.kl }
func (e *FrameElement2D) Transformation() linalg.Mat { return e.t }
func (e *FrameElement2D) HasEndRelease() bool  { return e.releaseI || e.releaseJ }
func (e *FrameElement2D) Loads() []model.ElementLoad { return e.loads }
func (e *FrameElement2D) AddLoad(l model.ElementLoad) { e.loads = append(e.loads, l) }
func (e *FrameElement2D) MeshSegments() []*model.MeshSegment { return e.segments }

// Initialize computes the length, transformation, full and condensed
// local stiffness matrices and the mesh segment partition. A second
// call is a no-op.
func (e *FrameElement2D) Initialize() error {
	if e.initialized {
		return nil
	}
	dx := e.nj.X - e.ni.X
	dy := e.nj.Y - e.ni.Y
	l := math.Hypot(dx, dy)
	if l <= 0 {
		return fmt.Errorf("elements: frame %d: %w: zero-length element", e.id, errs.ErrInvalidInput)
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

	ll := l * l
	m := e.mat.E * e.sec.A / l
	n := e.mat.E * e.sec.Izz / (ll * l)

	kl := linalg.NewMat(6)
	kl[0][0] = m
	kl[0][3] = -m
	kl[1][1] = 12 * n
	kl[1][2] = 6 * l * n
	kl[1][4] = -12 * n
	kl[1][5] = 6 * l * n
	kl[2][1] = 6 * l * n
	kl[2][2] = 4 * ll * n
	kl[2][4] = -6 * l * n
	kl[2][5] = 2 * ll * n
	kl[3][0] = -m
	kl[3][3] = m
	kl[4][1] = -12 * n
	kl[4][2] = -6 * l * n
	kl[4][4] = 12 * n
	kl[4][5] = -6 * l * n
	kl[5][1] = 6 * l * n
	kl[5][2] = 2 * ll * n
	kl[5][4] = -6 * l * n
	kl[5][5] = 4 * ll * n
	e.klFull = kl

	e.released = nil
	if e.releaseI {
		e.released = append(e.released, 2)
	}
	if e.releaseJ {
		e.released = append(e.released, 5)
	}
	e.kept = nil
	for i := 0; i < 6; i++ {
		if !contains(e.released, i) {
			e.kept = append(e.kept, i)
		}
	}

	if len(e.released) == 0 {
		e.kl = kl.Clone()
		e.condenseRow = nil
		e.buildSegments()
		e.initialized = true
		return nil
	}

	krrInv, err := invSmall(subMat(kl, e.released, e.released))
	if err != nil {
		return fmt.Errorf("elements: frame %d: %w", e.id, err)
	}
	kro := subMat(kl, e.released, e.kept)
	// condenseRow := -Krr^-1 * Kro
	e.condenseRow = linalg.MatMul(negate(krrInv), kro)

	kor := subMat(kl, e.kept, e.released)
	koo := subMat(kl, e.kept, e.kept)
	// Kc = Koo - Kor * Krr^-1 * Kro = Koo + Kor * condenseRow
	correction := linalg.MatMul(kor, e.condenseRow)
	kc := linalg.NewMat(6)
	for a, i := range e.kept {
		for b, j := range e.kept {
			kc[i][j] = koo[a][b] + correction[a][b]
		}
	}
	e.kl = kc

	e.buildSegments()
	e.initialized = true
	return nil
}

// buildSegments partitions [0, length] into nSeg equal-length segments
// with the element's (constant, pre-load) section properties; span
// loads are folded into each segment per load case by
// postprocess.PostProcessor.Diagram (spec.md section 4.4 step 1).
func (e *FrameElement2D) buildSegments() {
	e.segments = make([]*model.MeshSegment, e.nSeg)
	dx := e.length / float64(e.nSeg)
	for i := 0; i < e.nSeg; i++ {
		e.segments[i] = &model.MeshSegment{
			X1: float64(i) * dx,
			X2: float64(i+1) * dx,
			A:  e.sec.A,
			E:  e.mat.E,
			I:  e.sec.Izz,
		}
	}
}

// ShapeFunctionAt returns the 3x6 matrix mapping local nodal
// displacements (u_i, v_i, th_i, u_j, v_j, th_j) to (u, v, theta) at
// local coordinate x. At a released end, the column for the released
// rotation is zeroed and its (load-independent) kinematic contribution
// is redistributed into the kept columns via the same condensation
// used for the stiffness matrix (spec.md section 9's "reduced form with
// a zero row/column at the released DoF").
func (e *FrameElement2D) ShapeFunctionAt(x float64) linalg.Mat {
	na1, na2 := axialShapeFns(e.length)
	n1, n2, n3, n4 := frameShapeFns(e.length)
	n1p, n2p, n3p, n4p := n1.deriv(), n2.deriv(), n3.deriv(), n4.deriv()

	rows := [3][6]float64{
		{na1.eval(x), 0, 0, na2.eval(x), 0, 0},
		{0, n1.eval(x), n2.eval(x), 0, n3.eval(x), n4.eval(x)},
		{0, n1p.eval(x), n2p.eval(x), 0, n3p.eval(x), n4p.eval(x)},
	}

	out := make(linalg.Mat, 3)
	for r := 0; r < 3; r++ {
		out[r] = append([]float64(nil), rows[r][:]...)
	}
	if len(e.released) == 0 {
		return out
	}

	for r := 0; r < 3; r++ {
		for ri, rdof := range e.released {
			v := rows[r][rdof]
			if v == 0 {
				continue
			}
			out[r][rdof] = 0
			for ki, kdof := range e.kept {
				out[r][kdof] += v * e.condenseRow[ri][ki]
			}
		}
	}
	return out
}

// EvaluateGlobalFixedEndForces computes and caches the global equivalent
// end-force vector for lc. The local vector is built from the virtual-
// work integral of each span load against the element's own shape
// functions (exact for uniform/trapezoidal since both are polynomials,
// and for point loads reduces to the standard cantilever/fixed-end
// force formulas since evaluating a cubic Hermite shape function or its
// derivative at a point is algebraically identical to those classical
// results), then rotated to global via T^T.
func (e *FrameElement2D) EvaluateGlobalFixedEndForces(lc *model.LoadCase) error {
	fl := linalg.NewVec(6)

	na1, na2 := axialShapeFns(e.length)
	n1, n2, n3, n4 := frameShapeFns(e.length)
	n1p, n2p, n3p, n4p := n1.deriv(), n2.deriv(), n3.deriv(), n4.deriv()

	addForce := func(fx, fy float64, a float64) {
		fl[0] += fx * na1.eval(a)
		fl[3] += fx * na2.eval(a)
		fl[1] += fy * n1.eval(a)
		fl[2] += fy * n2.eval(a)
		fl[4] += fy * n3.eval(a)
		fl[5] += fy * n4.eval(a)
	}
	addMoment := func(mz, a float64) {
		fl[1] += mz * n1p.eval(a)
		fl[2] += mz * n2p.eval(a)
		fl[4] += mz * n3p.eval(a)
		fl[5] += mz * n4p.eval(a)
	}
	addDistributed := func(wx, wy poly, a, b float64) {
		fl[0] += wx.mul(na1).integrate(a, b)
		fl[3] += wx.mul(na2).integrate(a, b)
		fl[1] += wy.mul(n1).integrate(a, b)
		fl[2] += wy.mul(n2).integrate(a, b)
		fl[4] += wy.mul(n3).integrate(a, b)
		fl[5] += wy.mul(n4).integrate(a, b)
	}

	for _, ld := range e.loads {
		if ld.LoadCase() != lc {
			continue
		}
		switch v := ld.(type) {
		case *model.FramePointLoad:
			fx, fy := e.resolveDirection(v.Fx, v.Fy, v.Direction)
			addForce(fx, fy, v.L1)
			addMoment(v.Mz, v.L1)
		case *model.FrameUniformLoad:
			fx, fy := e.resolveDirection(v.Wx, v.Wy, v.Direction)
			a, b := v.L1, e.length-v.L2
			addDistributed(poly{fx}, poly{fy}, a, b)
		case *model.FrameTrapezoidalLoad:
			fx1, fy1 := e.resolveDirection(v.Wx1, v.Wy1, v.Direction)
			fx2, fy2 := e.resolveDirection(v.Wx2, v.Wy2, v.Direction)
			a, b := v.L1, e.length-v.L2
			addDistributed(linearLoad(a, b, fx1, fx2), linearLoad(a, b, fy1, fy2), a, b)
		default:
			return fmt.Errorf("elements: frame %d: %w: unsupported load type", e.id, errs.ErrInvalidInput)
		}
	}

	// condense the load vector for end releases the same way the
	// stiffness matrix was condensed, so the released DoF carries no
	// moment: Fc_o = F_o - Kor*Krr^-1*F_r for the kept DoFs, and
	// Fc_r = 0 for the released ones.
	fc := fl
	if len(e.released) > 0 {
		kor := subMat(e.klFull, e.kept, e.released)
		krr := subMat(e.klFull, e.released, e.released)
		krrInv, err := invSmall(krr)
		if err != nil {
			return fmt.Errorf("elements: frame %d: %w", e.id, err)
		}
		fr := make(linalg.Vec, len(e.released))
		for i, dof := range e.released {
			fr[i] = fl[dof]
		}
		corr := linalg.MatVecMul(1, krrInv, fr)
		fc = linalg.NewVec(6)
		copy(fc, fl)
		for a, i := range e.kept {
			var s float64
			for b := range e.released {
				s += kor[a][b] * corr[b]
			}
			fc[i] = fl[i] - s
		}
		for _, dof := range e.released {
			fc[dof] = 0
		}
	}

	e.fixedEnd[lc] = linalg.MatTrVecMul(1, e.t, fc)
	return nil
}

// GlobalFixedEndForces returns the cached vector for lc, zero if absent.
func (e *FrameElement2D) GlobalFixedEndForces(lc *model.LoadCase) linalg.Vec {
	if v, ok := e.fixedEnd[lc]; ok {
		return v
	}
	return linalg.NewVec(6)
}

// resolveDirection converts (fx, fy) to local axes when dir is Global,
// using the element's own rotation (cos/sin recovered from T).
func (e *FrameElement2D) resolveDirection(fx, fy float64, dir model.Direction) (float64, float64) {
	if dir == model.Local {
		return fx, fy
	}
	c, s := e.t[0][0], e.t[0][1]
	return c*fx + s*fy, -s*fx + c*fy
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// subMat extracts the submatrix of m at the given row/col index lists.
func subMat(m linalg.Mat, rows, cols []int) linalg.Mat {
	out := make(linalg.Mat, len(rows))
	for a, i := range rows {
		out[a] = make([]float64, len(cols))
		for b, j := range cols {
			out[a][b] = m[i][j]
		}
	}
	return out
}

func negate(m linalg.Mat) linalg.Mat {
	out := linalg.NewMat(len(m))
	for i := range m {
		for j := range m[i] {
			out[i][j] = -m[i][j]
		}
	}
	return out
}

// invSmall inverts a 1x1 or 2x2 matrix via Cramer's rule, sufficient
// since at most both of a beam's two end rotations can be released.
func invSmall(m linalg.Mat) (linalg.Mat, error) {
	n := len(m)
	switch n {
	case 1:
		if m[0][0] == 0 {
			return nil, fmt.Errorf("%w: released end has zero rotational stiffness", errs.ErrSingular)
		}
		return linalg.Mat{{1 / m[0][0]}}, nil
	case 2:
		det := m[0][0]*m[1][1] - m[0][1]*m[1][0]
		if det == 0 {
			return nil, fmt.Errorf("%w: released ends have singular coupled stiffness", errs.ErrSingular)
		}
		return linalg.Mat{
			{m[1][1] / det, -m[0][1] / det},
			{-m[1][0] / det, m[0][0] / det},
		}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported release count %d", errs.ErrInvalidInput, n)
	}
}
