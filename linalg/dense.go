// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package linalg provides the dense 3x3/6x6 matrix and vector primitives,
// the triplet-to-CSC sparse builder and the symmetric factorization used
// by the assembler, solver and post-processor.
package linalg

import "math"

// Mat is a dense row-major matrix: square, sized 3 for truss/spring-local
// work and 6 for two-node frame elements, or a rectangular block such as
// a 3x6 shape-function matrix or a release-condensation block. MatMul and
// MatVecMul accept rectangular operands; the other helpers assume square
// matrices.
type Mat [][]float64

// NewMat allocates an n x n matrix of zeros, mirroring gosl/la.MatAlloc.
func NewMat(n int) Mat {
	m := make(Mat, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}

// Vec is a dense vector.
type Vec []float64

// NewVec allocates a vector of n zeros.
func NewVec(n int) Vec {
	return make(Vec, n)
}

// Size returns the matrix dimension.
func (m Mat) Size() int { return len(m) }

// Fill sets every entry to v.
func (m Mat) Fill(v float64) {
	for i := range m {
		for j := range m[i] {
			m[i][j] = v
		}
	}
}

// Clone returns an independent copy.
func (m Mat) Clone() Mat {
	c := NewMat(len(m))
	for i := range m {
		copy(c[i], m[i])
	}
	return c
}

// IsSymmetric reports whether m equals its transpose within tol.
func (m Mat) IsSymmetric(tol float64) bool {
	n := len(m)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(m[i][j]-m[j][i]) > tol {
				return false
			}
		}
	}
	return true
}

// IsOrthogonal reports whether m^T == m^-1, checked as m^T*m == I within tol.
func (m Mat) IsOrthogonal(tol float64) bool {
	n := len(m)
	prod := MatTrMul(m, m)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(prod[i][j]-want) > tol {
				return false
			}
		}
	}
	return true
}

// MatMul returns a*b.
func MatMul(a, b Mat) Mat {
	n := len(a)
	c := make(Mat, n)
	for i := 0; i < n; i++ {
		c[i] = make([]float64, len(b[0]))
		for j := range c[i] {
			var s float64
			for k := range b {
				s += a[i][k] * b[k][j]
			}
			c[i][j] = s
		}
	}
	return c
}

// MatTrMul returns transpose(a)*b.
func MatTrMul(a, b Mat) Mat {
	n := len(a)
	c := NewMat(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var s float64
			for k := 0; k < n; k++ {
				s += a[k][i] * b[k][j]
			}
			c[i][j] = s
		}
	}
	return c
}

// MatTrMul3 computes c := alpha * transpose(t) * k * t, mirroring
// gosl/la.MatTrMul3 as used by the teacher's beam and rod elements to
// rotate a local stiffness matrix into global coordinates.
func MatTrMul3(alpha float64, t, k Mat) Mat {
	tmp := MatMul(k, t)
	c := MatTrMul(t, tmp)
	if alpha != 1 {
		n := len(c)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				c[i][j] *= alpha
			}
		}
	}
	return c
}

// MatVecMul returns alpha * m * v.
func MatVecMul(alpha float64, m Mat, v Vec) Vec {
	n := len(m)
	out := NewVec(n)
	for i := 0; i < n; i++ {
		var s float64
		for j := range m[i] {
			s += m[i][j] * v[j]
		}
		out[i] = alpha * s
	}
	return out
}

// MatTrVecMul returns alpha * transpose(m) * v.
func MatTrVecMul(alpha float64, m Mat, v Vec) Vec {
	n := len(m)
	out := NewVec(n)
	for i := 0; i < n; i++ {
		var s float64
		for j := 0; j < n; j++ {
			s += m[j][i] * v[j]
		}
		out[i] = alpha * s
	}
	return out
}

// VecAdd returns a+b.
func VecAdd(a, b Vec) Vec {
	out := NewVec(len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

// VecScaleAdd adds alpha*src into dst in place.
func VecScaleAdd(dst Vec, alpha float64, src Vec) {
	for i := range dst {
		dst[i] += alpha * src[i]
	}
}
