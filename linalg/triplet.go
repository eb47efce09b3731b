// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import "sort"

// Triplet is an append-only (row, col, value) builder for a sparse
// matrix, mirroring the Start/Put contract of gosl/la.Triplet that the
// teacher's Domain.Kb exercises on every assembly pass.
type Triplet struct {
	n         int
	rows      []int
	cols      []int
	vals      []float64
	maxTriple int
}

// NewTriplet allocates a triplet builder for an n x n matrix, optionally
// pre-sizing the backing slices to max nonzero entries.
func NewTriplet(n, maxTriple int) *Triplet {
	t := &Triplet{n: n, maxTriple: maxTriple}
	if maxTriple > 0 {
		t.rows = make([]int, 0, maxTriple)
		t.cols = make([]int, 0, maxTriple)
		t.vals = make([]float64, 0, maxTriple)
	}
	return t
}

// Start resets the builder, keeping its dimension, for reuse across
// load cases or re-assembly passes.
func (t *Triplet) Start() {
	t.rows = t.rows[:0]
	t.cols = t.cols[:0]
	t.vals = t.vals[:0]
}

// Put appends one (i, j, value) contribution; duplicates at the same
// (i, j) accumulate, matching the standard triplet-to-CSC convention.
func (t *Triplet) Put(i, j int, value float64) {
	t.rows = append(t.rows, i)
	t.cols = append(t.cols, j)
	t.vals = append(t.vals, value)
}

// Len returns the number of triplets recorded so far.
func (t *Triplet) Len() int { return len(t.vals) }

// Size returns the matrix dimension.
func (t *Triplet) Size() int { return t.n }

// CSC is an immutable compressed-sparse-column matrix storing only the
// upper triangle of a symmetric matrix, per spec.
type CSC struct {
	n       int
	colPtr  []int
	rowIdx  []int
	values  []float64
}

// Size returns the matrix dimension.
func (c *CSC) Size() int { return c.n }

// NNZ returns the number of stored (upper-triangle) entries.
func (c *CSC) NNZ() int { return len(c.values) }

// ToCSC compresses the accumulated triplets into an immutable symmetric
// CSC matrix, keeping only entries with row <= col (the upper triangle)
// and summing duplicates; entries below the diagonal are dropped, so the
// caller puts the full symmetric matrix, matching spec.md section 9's
// "assemble the full matrix, then compress to symmetric CSC keeping
// upper triangle".
func (t *Triplet) ToCSC() *CSC {
	type entry struct {
		row, col int
		val      float64
	}
	merged := make(map[[2]int]float64, len(t.vals))
	order := make([][2]int, 0, len(t.vals))
	for k := range t.vals {
		i, j := t.rows[k], t.cols[k]
		if i > j {
			continue
		}
		key := [2]int{i, j}
		if _, ok := merged[key]; !ok {
			order = append(order, key)
		}
		merged[key] += t.vals[k]
	}
	entries := make([]entry, 0, len(order))
	for _, key := range order {
		entries = append(entries, entry{key[0], key[1], merged[key]})
	}
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].col != entries[b].col {
			return entries[a].col < entries[b].col
		}
		return entries[a].row < entries[b].row
	})

	csc := &CSC{n: t.n}
	csc.colPtr = make([]int, t.n+1)
	csc.rowIdx = make([]int, len(entries))
	csc.values = make([]float64, len(entries))
	col := 0
	for idx, e := range entries {
		for col < e.col {
			col++
			csc.colPtr[col] = idx
		}
		csc.rowIdx[idx] = e.row
		csc.values[idx] = e.val
	}
	for col < t.n {
		col++
		csc.colPtr[col] = len(entries)
	}
	return csc
}

// Dense reconstructs the full symmetric dense matrix from the stored
// upper triangle. Used by Factorize, which operates on a dense
// representation of the free-free block (see DESIGN.md).
func (c *CSC) Dense() Mat {
	m := NewMat(c.n)
	for col := 0; col < c.n; col++ {
		for k := c.colPtr[col]; k < c.colPtr[col+1]; k++ {
			row := c.rowIdx[k]
			v := c.values[k]
			m[row][col] = v
			m[col][row] = v
		}
	}
	return m
}

// Diag returns the diagonal entries, used to check strict positivity of
// free-DoF diagonal terms per spec.md section 4.2.
func (c *CSC) Diag() Vec {
	d := NewVec(c.n)
	for col := 0; col < c.n; col++ {
		for k := c.colPtr[col]; k < c.colPtr[col+1]; k++ {
			if c.rowIdx[k] == col {
				d[col] = c.values[k]
			}
		}
	}
	return d
}
