// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package elements provides the concrete frame and truss element
// implementations of the model.Element contract, grounded on the
// teacher's fem/e_beam.go (Euler-Bernoulli beam) and fem/e_rod.go
// (axial bar) element constructions.
package elements

// poly is a polynomial in x with ascending-power coefficients:
// p[i] is the coefficient of x^i. Used to compute exact closed-form
// equivalent nodal loads by evaluating the virtual-work integral of a
// (at most linear) load intensity against the element's cubic Hermite
// or linear shape functions -- both polynomials, so the product and its
// definite integral are exact, no quadrature required.
type poly []float64

func (p poly) eval(x float64) float64 {
	var v, xp float64 = 0, 1
	for _, c := range p {
		v += c * xp
		xp *= x
	}
	return v
}

// deriv returns dp/dx.
func (p poly) deriv() poly {
	if len(p) <= 1 {
		return poly{0}
	}
	d := make(poly, len(p)-1)
	for i := 1; i < len(p); i++ {
		d[i-1] = float64(i) * p[i]
	}
	return d
}

// mul returns the product p*q.
func (p poly) mul(q poly) poly {
	out := make(poly, len(p)+len(q)-1)
	for i, a := range p {
		for j, b := range q {
			out[i+j] += a * b
		}
	}
	return out
}

// integrate returns the definite integral of p over [a, b].
func (p poly) integrate(a, b float64) float64 {
	var sum float64
	for i, c := range p {
		n := float64(i + 1)
		sum += c / n * (pow(b, i+1) - pow(a, i+1))
	}
	return sum
}

func pow(x float64, n int) float64 {
	v := 1.0
	for i := 0; i < n; i++ {
		v *= x
	}
	return v
}

// linearLoad returns the polynomial (degree 1) interpolating value w1 at
// x=a and w2 at x=b.
func linearLoad(a, b, w1, w2 float64) poly {
	if b == a {
		return poly{w1}
	}
	slope := (w2 - w1) / (b - a)
	intercept := w1 - slope*a
	return poly{intercept, slope}
}

// frameShapeFns returns the four standard cubic Hermite shape functions
// (N1: v_i, N2: theta_i, N3: v_j, N4: theta_j) for a beam of length L, as
// polynomials in the physical local coordinate x in [0, L].
func frameShapeFns(L float64) (n1, n2, n3, n4 poly) {
	n1 = poly{1, 0, -3 / (L * L), 2 / (L * L * L)}
	n2 = poly{0, 1, -2 / L, 1 / (L * L)}
	n3 = poly{0, 0, 3 / (L * L), -2 / (L * L * L)}
	n4 = poly{0, 0, -1 / L, 1 / (L * L)}
	return
}

// axialShapeFns returns the two linear axial shape functions (Na1: u_i,
// Na2: u_j) for a bar of length L.
func axialShapeFns(L float64) (na1, na2 poly) {
	na1 = poly{1, -1 / L}
	na2 = poly{0, 1 / L}
	return
}
