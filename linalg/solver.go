// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/OrganizationUsername/FEALiTE2D/errs"
)

// FactKind reports which factorization ultimately served a Solve call;
// the solve package logs it with each solve (spec.md section 4.3's
// two-stage scheme).
type FactKind int

const (
	// FactCholesky means the matrix was SPD and Cholesky succeeded.
	FactCholesky FactKind = iota
	// FactQR means Cholesky reported non-SPD and QR was used instead.
	FactQR
)

// Factorization wraps a one-time decomposition of a symmetric matrix,
// reused across load cases to amortise the factorization cost (spec.md
// section 5's resource discipline), mirroring the teacher's
// Domain.LinSol kept alive across the per-load-case solve loop in
// fem/domain.go and fem/solver.go.
type Factorization struct {
	kind FactKind
	n    int
	chol *mat.Cholesky
	qr   *mat.QR
	a    *mat.Dense // kept for the QR fallback's least-squares solve
}

// Factorize attempts a symmetric positive-definite Cholesky
// factorization of the dense reconstruction of csc's leading ndof x
// ndof free-free block (dofnum.Number numbers free DoFs 0..ndof-1
// first, so that block is always the leading principal submatrix). On
// a non-SPD report it falls back to a QR factorization with natural
// (no) pivoting, matching spec.md's "symmetric-indefinite QR fallback".
func Factorize(csc *CSC, ndof int) (*Factorization, error) {
	n := ndof
	if n <= 0 {
		return nil, fmt.Errorf("linalg: cannot factorize a 0x0 matrix")
	}
	if n > csc.Size() {
		return nil, fmt.Errorf("linalg: ndof %d exceeds matrix size %d", n, csc.Size())
	}
	dense := csc.Dense()
	symData := make([]float64, n*n)
	for i := 0; i < n; i++ {
		copy(symData[i*n:(i+1)*n], dense[i][:n])
	}
	sym := mat.NewSymDense(n, symData)

	var chol mat.Cholesky
	if chol.Factorize(sym) {
		return &Factorization{kind: FactCholesky, n: n, chol: &chol}, nil
	}

	// fall back to a dense QR (no reordering) of the full matrix
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a.Set(i, j, dense[i][j])
		}
	}
	var qr mat.QR
	qr.Factorize(a)
	return &Factorization{kind: FactQR, n: n, qr: &qr, a: a}, nil
}

// Kind reports which factorization path this instance uses.
func (f *Factorization) Kind() FactKind { return f.kind }

// Solve computes x such that A*x = b, reusing the stored factorization.
// Returns an error wrapping errs-style singularity if either path
// yields non-finite values (spec.md section 7's Singular error kind).
func (f *Factorization) Solve(b Vec) (Vec, error) {
	n := f.n
	if len(b) != n {
		return nil, fmt.Errorf("linalg: rhs length %d does not match factorization size %d", len(b), n)
	}
	bv := mat.NewVecDense(n, append(Vec(nil), b...))
	xv := mat.NewVecDense(n, nil)

	switch f.kind {
	case FactCholesky:
		if err := f.chol.SolveVecTo(xv, bv); err != nil {
			return nil, fmt.Errorf("linalg: cholesky solve failed: %w", err)
		}
	case FactQR:
		if err := f.qr.SolveVecTo(xv, false, bv); err != nil {
			return nil, fmt.Errorf("linalg: qr solve failed: %w", err)
		}
	}

	x := make(Vec, n)
	for i := 0; i < n; i++ {
		v := xv.AtVec(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("linalg: %w: solve produced a non-finite value at index %d", errs.ErrSingular, i)
		}
		x[i] = v
	}
	return x, nil
}
