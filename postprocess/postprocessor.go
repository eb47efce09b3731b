// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package postprocess recovers reactions, local/global end forces and
// continuous internal-force/displacement diagrams from a solved
// model.Structure, grounded on the teacher's out/out.go result-query
// layer (a read-only view built from a finished fem.Domain) reworked
// from its integration-point/time-series query model into the per-
// segment, per-load-case query model spec.md section 4.4 describes.
package postprocess

import (
	"fmt"
	"math"

	"github.com/OrganizationUsername/FEALiTE2D/errs"
	"github.com/OrganizationUsername/FEALiTE2D/linalg"
	"github.com/OrganizationUsername/FEALiTE2D/model"
)

// Tolerances holds the numerical tolerances this package's checks are
// parameterized by (spec.md section 9), mirroring config.Tolerances'
// field shape so a caller can pass a loaded config's values straight
// through without this package importing the outer config package.
type Tolerances struct {
	// Equilibrium bounds the acceptable residual of CheckEquilibrium's
	// force-balance check.
	Equilibrium float64

	// Dust is the float-dust threshold below which a reaction component
	// is treated as exactly zero.
	Dust float64
}

// DefaultTolerances mirrors config.DefaultTolerances, used when a
// caller builds a PostProcessor without an explicit loaded config
// (e.g. in tests).
func DefaultTolerances() Tolerances {
	return Tolerances{Equilibrium: 1e-6, Dust: 1e-15}
}

// PostProcessor is a read-only view over a successfully solved
// Structure. All methods are pure with respect to node/element data;
// diagram methods mutate each element's mesh-segment scratch fields, so
// callers must not invoke diagram methods on the same element
// concurrently (spec.md section 5).
type PostProcessor struct {
	s   *model.Structure
	tol Tolerances
}

// New constructs a PostProcessor from a solved structure, using tol to
// parameterize SupportReaction's dust-zeroing and CheckEquilibrium's
// residual check. Fails with errs.ErrStateViolation if s has not
// completed a successful solve.
func New(s *model.Structure, tol Tolerances) (*PostProcessor, error) {
	if s == nil || s.Status != model.Successful {
		return nil, fmt.Errorf("postprocess: %w: structure has not been solved successfully", errs.ErrStateViolation)
	}
	return &PostProcessor{s: s, tol: tol}, nil
}

// NodeDisplacement returns the node's global displacement for lc: for
// free DoFs, the solved vector entry; for restrained DoFs, the sum of
// prescribed settlement loads for lc.
func (p *PostProcessor) NodeDisplacement(n *model.Node, lc *model.LoadCase) model.Displacement {
	idx := n.DofIndices()
	d := p.s.Displacements[lc]
	settle := n.SettlementAt(lc)

	pick := func(i, dof int, settled float64) float64 {
		if n.Support != nil && n.Support.At(i) {
			return settled
		}
		return d[dof]
	}
	return model.Displacement{
		Ux: pick(0, idx[0], settle.Ux),
		Uy: pick(1, idx[1], settle.Uy),
		Rz: pick(2, idx[2], settle.Rz),
	}
}

// NodeDisplacementCombo linearly superposes NodeDisplacement across the
// load cases and factors of combo.
func (p *PostProcessor) NodeDisplacementCombo(n *model.Node, combo model.LoadCombination) model.Displacement {
	var out model.Displacement
	for lc, factor := range combo {
		d := p.NodeDisplacement(n, lc)
		out.Ux += factor * d.Ux
		out.Uy += factor * d.Uy
		out.Rz += factor * d.Rz
	}
	return out
}

// SupportReaction returns the reaction (Fx, Fy, Mz) at a restrained
// node for lc. With an elastic spring the reaction is -K_spring*d;
// otherwise it is minus the applied nodal loads minus the incident
// elements' global equivalent end forces at this node's end (i.e. plus
// their fixed-end reactions), with any unrestrained component zeroed
// (spec.md section 4.4).
func (p *PostProcessor) SupportReaction(n *model.Node, lc *model.LoadCase) model.InternalForces {
	if n.Support == nil || !n.Support.Restrained() {
		return model.InternalForces{}
	}

	var r linalg.Vec
	if n.Spring != nil {
		d := p.NodeDisplacement(n, lc)
		r = linalg.MatVecMul(-1, n.Spring.K, linalg.Vec{d.Ux, d.Uy, d.Rz})
	} else {
		r = linalg.NewVec(3)
		t := n.Transformation()
		for _, nl := range n.NodalLoads {
			if nl.Case != lc {
				continue
			}
			local := linalg.Vec{nl.Fx, nl.Fy, nl.Mz}
			g := local
			if nl.Direction == model.Local {
				g = linalg.MatTrVecMul(1, t, local)
			}
			r[0] -= g[0]
			r[1] -= g[1]
			r[2] -= g[2]
		}
		for _, e := range p.s.Elements {
			nodes := e.Nodes()
			fg := e.GlobalFixedEndForces(lc)
			for k, nd := range nodes {
				if nd != n {
					continue
				}
				r[0] -= fg[3*k]
				r[1] -= fg[3*k+1]
				r[2] -= fg[3*k+2]
			}
		}
	}

	out := model.InternalForces{Fx: r[0], Fy: r[1], Mz: r[2]}
	if !n.Support.Ux {
		out.Fx = 0
	}
	if !n.Support.Uy {
		out.Fy = 0
	}
	if !n.Support.Rz {
		out.Mz = 0
	}
	if math.Abs(out.Fx) < p.tol.Dust {
		out.Fx = 0
	}
	if math.Abs(out.Fy) < p.tol.Dust {
		out.Fy = 0
	}
	if math.Abs(out.Mz) < p.tol.Dust {
		out.Mz = 0
	}
	return out
}

// CheckEquilibrium verifies that the sum of every restrained node's
// reaction, every applied nodal load, and every element's global
// equivalent end forces (which, for translational components, always
// sum to the element's actual span-load resultant since the frame
// element's shape functions form a partition of unity -- spec.md
// section 9) is within p.tol.Equilibrium of zero in both global
// directions. Returns errs.ErrStateViolation wrapped with the residual
// if the check fails.
func (p *PostProcessor) CheckEquilibrium(lc *model.LoadCase) error {
	var sumFx, sumFy float64

	for _, n := range p.s.Nodes {
		if n.Support != nil && n.Support.Restrained() {
			r := p.SupportReaction(n, lc)
			sumFx += r.Fx
			sumFy += r.Fy
		}
		t := n.Transformation()
		for _, nl := range n.NodalLoads {
			if nl.Case != lc {
				continue
			}
			local := linalg.Vec{nl.Fx, nl.Fy, nl.Mz}
			g := local
			if nl.Direction == model.Local {
				g = linalg.MatTrVecMul(1, t, local)
			}
			sumFx += g[0]
			sumFy += g[1]
		}
	}

	for _, e := range p.s.Elements {
		fg := e.GlobalFixedEndForces(lc)
		for k := range e.Nodes() {
			sumFx += fg[3*k]
			sumFy += fg[3*k+1]
		}
	}

	if math.Abs(sumFx) > p.tol.Equilibrium || math.Abs(sumFy) > p.tol.Equilibrium {
		return fmt.Errorf("postprocess: %w: force equilibrium residual (fx=%g, fy=%g) exceeds tolerance %g",
			errs.ErrStateViolation, sumFx, sumFy, p.tol.Equilibrium)
	}
	return nil
}

// SupportReactionCombo linearly superposes SupportReaction.
func (p *PostProcessor) SupportReactionCombo(n *model.Node, combo model.LoadCombination) model.InternalForces {
	var out model.InternalForces
	for lc, factor := range combo {
		r := p.SupportReaction(n, lc)
		out.Fx += factor * r.Fx
		out.Fy += factor * r.Fy
		out.Mz += factor * r.Mz
	}
	return out
}

// globalDisp returns the element's 3*len(Nodes) global displacement
// vector for lc.
func (p *PostProcessor) globalDisp(e model.Element, lc *model.LoadCase) linalg.Vec {
	nodes := e.Nodes()
	dg := linalg.NewVec(3 * len(nodes))
	for k, nd := range nodes {
		d := p.NodeDisplacement(nd, lc)
		dg[3*k], dg[3*k+1], dg[3*k+2] = d.Ux, d.Uy, d.Rz
	}
	return dg
}

// ElementLocalEndForces returns Q = Kl*d_l - T*f_g (spec.md section
// 4.4), where d_l = T*d_g is the element's end displacements rotated
// into local axes and f_g is the cached global equivalent end-force
// vector for lc, so -T*f_g is the local fixed-end force vector.
func (p *PostProcessor) ElementLocalEndForces(e model.Element, lc *model.LoadCase) linalg.Vec {
	t := e.Transformation()
	dg := p.globalDisp(e, lc)
	dl := linalg.MatVecMul(1, t, dg)
	fg := e.GlobalFixedEndForces(lc)
	fl := linalg.MatVecMul(1, t, fg)
	kl := e.LocalStiffness()
	q := linalg.MatVecMul(1, kl, dl)
	linalg.VecScaleAdd(q, -1, fl)
	return q
}

// ElementGlobalEndForces rotates ElementLocalEndForces back to global
// axes via transpose(T).
func (p *PostProcessor) ElementGlobalEndForces(e model.Element, lc *model.LoadCase) linalg.Vec {
	t := e.Transformation()
	ql := p.ElementLocalEndForces(e, lc)
	return linalg.MatTrVecMul(1, t, ql)
}

// valueAt linearly interpolates a span value defined by w1 at a and w2
// at b, evaluated at x; ok is false if x lies outside [a, b].
func valueAt(x, a, b, w1, w2 float64) (v float64, ok bool) {
	const tol = 1e-9
	if x < a-tol || x > b+tol {
		return 0, false
	}
	if b-a <= tol {
		return w1, true
	}
	t := (x - a) / (b - a)
	return w1 + (w2-w1)*t, true
}

// resultantAndMoment returns the resultant force and its moment about
// station x1 of a linearly-varying intensity running from wa at a to
// wr at a span's clamped right end xr (xr <= x1). Handles both uniform
// (wa == wr) and trapezoidal spans with one formula.
func resultantAndMoment(x1, a, xr, wa, wr float64) (resultant, moment float64) {
	ls := xr - a
	if ls <= 0 {
		return 0, 0
	}
	resultant = (wa + wr) / 2 * ls
	var centroid float64
	if wa+wr != 0 {
		centroid = ls * (wa + 2*wr) / (3 * (wa + wr))
	} else {
		centroid = ls / 2
	}
	lever := x1 - (a + centroid)
	moment = -resultant * lever
	return
}

// resolveLocal converts (fx, fy) to the element's local axes using the
// 2x2 rotation block of t (its Transformation).
func resolveLocal(t linalg.Mat, fx, fy float64, dir model.Direction) (float64, float64) {
	if dir == model.Local {
		return fx, fy
	}
	c, s := t[0][0], t[0][1]
	return c*fx + s*fy, -s*fx + c*fy
}

// Diagram walks e's mesh segments left to right for lc, populating each
// segment's InternalForces1/2, Displacement1/2 and distributed
// intensities per spec.md section 4.4 steps 1-5, and returns the
// (mutated, in-place) segment slice.
func (p *PostProcessor) Diagram(e model.Element, lc *model.LoadCase) ([]*model.MeshSegment, error) {
	segs := e.MeshSegments()
	if len(segs) == 0 {
		return segs, nil
	}

	t := e.Transformation()
	dg := p.globalDisp(e, lc)
	dl := linalg.MatVecMul(1, t, dg)
	fl := p.ElementLocalEndForces(e, lc)

	length := e.Length()
	loads := e.Loads()
	hasRelease := e.HasEndRelease()

	for i, seg := range segs {
		x1, x2 := seg.X1, seg.X2
		seg.Wx1, seg.Wx2, seg.Wy1, seg.Wy2 = 0, 0, 0, 0

		if i == 0 {
			if hasRelease {
				v := linalg.MatVecMul(1, e.ShapeFunctionAt(0), dl)
				seg.Displacement1 = model.Displacement{Ux: v[0], Uy: v[1], Rz: v[2]}
			} else {
				seg.Displacement1 = model.Displacement{Ux: dl[0], Uy: dl[1], Rz: dl[2]}
			}
		} else {
			seg.Displacement1 = segs[i-1].Displacement2
		}

		seg.InternalForces1 = model.InternalForces{
			Fx: fl[0],
			Fy: fl[1],
			Mz: fl[2] - fl[1]*x1,
		}

		for _, ld := range loads {
			if ld.LoadCase() != lc {
				continue
			}
			switch v := ld.(type) {
			case *model.FramePointLoad:
				a := v.L1
				if a > x1 {
					continue
				}
				lx, ly := resolveLocal(t, v.Fx, v.Fy, v.Direction)
				seg.InternalForces1.Fx += lx
				seg.InternalForces1.Fy += ly
				seg.InternalForces1.Mz += v.Mz - ly*(x1-a)

			case *model.FrameUniformLoad:
				a, b := v.L1, length-v.L2
				if a > x1 {
					continue
				}
				lx, ly := resolveLocal(t, v.Wx, v.Wy, v.Direction)
				xr := b
				if xr > x1 {
					xr = x1
				}
				rfx, _ := resultantAndMoment(x1, a, xr, lx, lx)
				rfy, mfy := resultantAndMoment(x1, a, xr, ly, ly)
				seg.InternalForces1.Fx += rfx
				seg.InternalForces1.Fy += rfy
				seg.InternalForces1.Mz += mfy

				if wv, ok := valueAt(x1, a, b, lx, lx); ok {
					seg.Wx1 += wv
				}
				if wv, ok := valueAt(x2, a, b, lx, lx); ok {
					seg.Wx2 += wv
				}
				if wv, ok := valueAt(x1, a, b, ly, ly); ok {
					seg.Wy1 += wv
				}
				if wv, ok := valueAt(x2, a, b, ly, ly); ok {
					seg.Wy2 += wv
				}

			case *model.FrameTrapezoidalLoad:
				a, b := v.L1, length-v.L2
				if a > x1 {
					continue
				}
				lx1, ly1 := resolveLocal(t, v.Wx1, v.Wy1, v.Direction)
				lx2, ly2 := resolveLocal(t, v.Wx2, v.Wy2, v.Direction)
				xr := b
				if xr > x1 {
					xr = x1
				}
				wxAtXr, _ := valueAt(xr, a, b, lx1, lx2)
				wyAtXr, _ := valueAt(xr, a, b, ly1, ly2)
				rfx, _ := resultantAndMoment(x1, a, xr, lx1, wxAtXr)
				rfy, mfy := resultantAndMoment(x1, a, xr, ly1, wyAtXr)
				seg.InternalForces1.Fx += rfx
				seg.InternalForces1.Fy += rfy
				seg.InternalForces1.Mz += mfy

				if wv, ok := valueAt(x1, a, b, lx1, lx2); ok {
					seg.Wx1 += wv
				}
				if wv, ok := valueAt(x2, a, b, lx1, lx2); ok {
					seg.Wx2 += wv
				}
				if wv, ok := valueAt(x1, a, b, ly1, ly2); ok {
					seg.Wy1 += wv
				}
				if wv, ok := valueAt(x2, a, b, ly1, ly2); ok {
					seg.Wy2 += wv
				}
			}
		}

		seg.InternalForces2 = seg.GetInternalForceAt(x2 - x1)
		seg.Displacement2 = seg.GetDisplacementAt(x2 - x1)
		if hasRelease && i == len(segs)-1 {
			v := linalg.MatVecMul(1, e.ShapeFunctionAt(length), dl)
			seg.Displacement2 = model.Displacement{Ux: v[0], Uy: v[1], Rz: v[2]}
		}
	}

	return segs, nil
}

// findSegment returns the segment containing x and its local offset.
func findSegment(segs []*model.MeshSegment, x float64) (*model.MeshSegment, float64, bool) {
	const tol = 1e-9
	for _, seg := range segs {
		if x >= seg.X1-tol && x <= seg.X2+tol {
			return seg, x - seg.X1, true
		}
	}
	return nil, 0, false
}

// ElementInternalForcesAt returns the internal force state at local
// coordinate x after running Diagram for lc, or false if x is out of
// range.
func (p *PostProcessor) ElementInternalForcesAt(e model.Element, lc *model.LoadCase, x float64) (model.InternalForces, bool) {
	segs, err := p.Diagram(e, lc)
	if err != nil {
		return model.InternalForces{}, false
	}
	seg, xi, ok := findSegment(segs, x)
	if !ok {
		return model.InternalForces{}, false
	}
	return seg.GetInternalForceAt(xi), true
}

// ElementDisplacementAt returns the displacement state at local
// coordinate x after running Diagram for lc, or false if x is out of
// range.
func (p *PostProcessor) ElementDisplacementAt(e model.Element, lc *model.LoadCase, x float64) (model.Displacement, bool) {
	segs, err := p.Diagram(e, lc)
	if err != nil {
		return model.Displacement{}, false
	}
	seg, xi, ok := findSegment(segs, x)
	if !ok {
		return model.Displacement{}, false
	}
	return seg.GetDisplacementAt(xi), true
}
