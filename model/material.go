// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

// Material holds the elastic properties shared by frame and truss
// elements, replacing the teacher's materials-database parameter lookup
// (fem/e_beam.go's matdata.Prms switch) with a typed value object since
// model-file parsing is out of scope for this engine.
type Material struct {
	E float64 // Young's modulus
	G float64 // shear modulus (unused by Euler-Bernoulli frame elements; kept for completeness)
}

// Section holds the cross-sectional properties of a frame or truss
// member.
type Section struct {
	A   float64 // cross-sectional area
	Izz float64 // second moment of area about the local z axis
}
