// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "github.com/OrganizationUsername/FEALiTE2D/linalg"

// Element is the polymorphic contract every concrete element (frame,
// truss) satisfies, dispatched through this interface rather than a
// tagged switch (spec.md section 4.5/9), grounded on the teacher's
// fem.Elem interface in fem/element.go -- generalized from the
// teacher's nonlinear residual/tangent contract (AddToRhs/AddToKb/
// Update against a shared *Solution) to the one-shot linear contract
// spec.md requires (a fixed local stiffness, a transformation, and a
// per-load-case equivalent end-force vector).
type Element interface {
	// ID returns a stable identifier for diagnostics.
	ID() int

	// Nodes returns the element's ordered node list (length >= 2).
	Nodes() []*Node

	// Length returns the element's length along its axis (> 0).
	Length() float64

	// LocalStiffness returns the element's local stiffness matrix,
	// sized 3*len(Nodes()) square and symmetric.
	LocalStiffness() linalg.Mat

	// Transformation returns the orthogonal matrix T mapping global to
	// local coordinates, sized like LocalStiffness.
	Transformation() linalg.Mat

	// EvaluateGlobalFixedEndForces computes and caches the global
	// equivalent end-force vector for lc from the element's span loads,
	// adjusted for end releases if present.
	EvaluateGlobalFixedEndForces(lc *LoadCase) error

	// GlobalFixedEndForces returns the cached vector for lc, or a zero
	// vector if EvaluateGlobalFixedEndForces was never called for it.
	GlobalFixedEndForces(lc *LoadCase) linalg.Vec

	// MeshSegments returns the ordered partition of [0, Length()] used
	// by the post-processor to build internal-force/displacement
	// diagrams.
	MeshSegments() []*MeshSegment

	// Loads returns the span loads (point/uniform/trapezoidal) applied
	// to this element.
	Loads() []ElementLoad

	// AddLoad registers a span load on this element.
	AddLoad(l ElementLoad)

	// HasEndRelease reports whether this element has a moment release
	// at either end.
	HasEndRelease() bool

	// ShapeFunctionAt returns the 3 x (3*len(Nodes())) Hermite shape
	// function evaluated at local coordinate x, used by the
	// post-processor in place of the generic segment polynomials at
	// released ends. Only meaningful when HasEndRelease() is true.
	ShapeFunctionAt(x float64) linalg.Mat

	// Initialize is called once by the structure upon registration; a
	// second call is a no-op.
	Initialize() error
}
