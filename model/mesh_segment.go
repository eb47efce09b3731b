// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

// InternalForces holds the local axial force, shear and bending moment
// at one station of an element.
type InternalForces struct {
	Fx, Fy, Mz float64
}

// Displacement holds the local axial, transverse displacement and slope
// at one station of an element.
type Displacement struct {
	Ux, Uy, Rz float64
}

// MeshSegment is a sub-interval [X1, X2] of an element's parametric
// axis carrying cached section properties, the end internal forces and
// displacements, and the net distributed-load intensities acting on it
// (spec.md section 3). InternalForces1/2, Displacement1/2 and the
// Wx1..Wy2 intensities are scratch fields overwritten on every
// PostProcessor diagram pass (spec.md section 5): segment objects
// require exclusive access during that call.
//
// Sign convention: InternalForces at a station x hold the resultant
// (Fx, Fy) of all local forces acting on the element to the left of x
// and their moment Mz about x, so dFy/dx = wy and dMz/dx = -Fy.
type MeshSegment struct {
	X1, X2  float64
	A, E, I float64

	InternalForces1, InternalForces2 InternalForces
	Displacement1, Displacement2     Displacement

	// Wx1, Wx2, Wy1, Wy2 are the net axial/transverse distributed-load
	// intensities at the segment's start and end, reset to zero at the
	// start of every diagram pass and accumulated as loads overlapping
	// this segment are discovered (spec.md section 4.4 step 1/4).
	Wx1, Wx2, Wy1, Wy2 float64
}

// Length returns the segment's span.
func (m *MeshSegment) Length() float64 { return m.X2 - m.X1 }

// GetInternalForceAt evaluates the segment's closed-form internal-force
// polynomials at local offset xi (0 <= xi <= Length()), using
// InternalForces1 as the integration constant and the segment's own
// distributed-load intensities (spec.md section 4.4):
//   axial force:  linear under uniform wx, quadratic under linear wx
//   shear force:  linear under uniform wy, quadratic under linear wy
//   moment:       cubic (since -shear is its derivative)
func (m *MeshSegment) GetInternalForceAt(xi float64) InternalForces {
	l := m.Length()
	if l <= 0 {
		return m.InternalForces1
	}
	wx1, wx2 := m.Wx1, m.Wx2
	wy1, wy2 := m.Wy1, m.Wy2

	// linear axial distributed load: Fx(xi) = Fx1 + integral(wx)
	fx := m.InternalForces1.Fx + (wx1*xi + (wx2-wx1)*xi*xi/(2*l))

	// linear transverse distributed load: Fy(xi) = Fy1 + integral(wy)
	fy := m.InternalForces1.Fy + (wy1*xi + (wy2-wy1)*xi*xi/(2*l))

	// moment about the station: Mz(xi) = Mz1 - Fy1*xi - moment of wy over [0, xi]
	mz := m.InternalForces1.Mz - m.InternalForces1.Fy*xi -
		(wy1*xi*xi/2 + (wy2-wy1)*xi*xi*xi/(6*l))

	return InternalForces{Fx: fx, Fy: fy, Mz: mz}
}

// GetDisplacementAt evaluates the segment's closed-form displacement
// polynomials at local offset xi, integrating EA*u'' = -wx (quadratic
// axial displacement) and EI*v'''' = wy (quartic transverse
// displacement, whose derivative gives the slope), using Displacement1
// and InternalForces1 as integration constants. With the sign convention
// above, EA*u' = -Fx and EI*theta' = -Mz.
func (m *MeshSegment) GetDisplacementAt(xi float64) Displacement {
	ea := m.E * m.A
	ei := m.E * m.I

	ux := m.Displacement1.Ux
	if ea > 0 {
		n1 := m.InternalForces1.Fx
		wx1, wx2 := m.Wx1, m.Wx2
		l := m.Length()
		// u(xi) = u1 - (1/EA)*[Fx1*xi + wx1*xi^2/2 + (wx2-wx1)*xi^3/(6l)]
		ux -= (n1*xi + wx1*xi*xi/2 + (wx2-wx1)*xi*xi*xi/(6*maxf(l, 1e-30))) / ea
	}

	uy := m.Displacement1.Uy
	rz := m.Displacement1.Rz
	if ei > 0 {
		v1 := m.InternalForces1.Fy
		mz1 := m.InternalForces1.Mz
		rz1 := m.Displacement1.Rz
		wy1, wy2 := m.Wy1, m.Wy2
		l := maxf(m.Length(), 1e-30)

		// slope: theta(xi) = rz1 + (1/EI)*[-Mz1*xi + Fy1*xi^2/2 + wy1*xi^3/6 + (wy2-wy1)*xi^4/(24l)]
		rz = rz1 + (-mz1*xi+v1*xi*xi/2+wy1*xi*xi*xi/6+(wy2-wy1)*xi*xi*xi*xi/(24*l))/ei

		// transverse displacement: integral of slope
		uy += rz1*xi + (-mz1*xi*xi/2+v1*xi*xi*xi/6+wy1*xi*xi*xi*xi/24+(wy2-wy1)*xi*xi*xi*xi*xi/(120*l))/ei
	}

	return Displacement{Ux: ux, Uy: uy, Rz: rz}
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
