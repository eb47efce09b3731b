// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTripletToCSCRoundTrip(t *testing.T) {
	tri := NewTriplet(3, 9)
	tri.Put(0, 0, 4)
	tri.Put(0, 1, 1)
	tri.Put(1, 0, 1) // lower-triangle mirror of (0,1), dropped by ToCSC
	tri.Put(1, 1, 3)
	tri.Put(2, 2, 5)

	csc := tri.ToCSC()
	dense := csc.Dense()

	assert.Equal(t, 4.0, dense[0][0])
	assert.Equal(t, 1.0, dense[0][1]) // only the upper-triangle (0,1) entry is kept
	assert.Equal(t, 1.0, dense[1][0])
	assert.Equal(t, 3.0, dense[1][1])
	assert.Equal(t, 5.0, dense[2][2])
}

func TestCSCDiag(t *testing.T) {
	tri := NewTriplet(2, 4)
	tri.Put(0, 0, 7)
	tri.Put(1, 1, 9)
	tri.Put(0, 1, 2)
	csc := tri.ToCSC()
	diag := csc.Diag()
	assert.Equal(t, Vec{7, 9}, diag)
}

func TestTripletStartResets(t *testing.T) {
	tri := NewTriplet(2, 4)
	tri.Put(0, 0, 1)
	assert.Equal(t, 1, tri.Len())
	tri.Start()
	assert.Equal(t, 0, tri.Len())
}
