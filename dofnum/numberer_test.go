// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dofnum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OrganizationUsername/FEALiTE2D/model"
)

func TestNumberPlacesFreeDofsBeforeRestrained(t *testing.T) {
	s := model.NewStructure()
	fixed := model.NewNode(0, 0).SetSupport(true, true, true)
	pinned := model.NewNode(1, 0).SetSupport(true, true, false)
	free := model.NewNode(2, 0)
	require.NoError(t, s.AddNode(fixed))
	require.NoError(t, s.AddNode(pinned))
	require.NoError(t, s.AddNode(free))

	ndof, err := Number(s)
	require.NoError(t, err)

	assert.Equal(t, 0+0+1+3, ndof) // fixed: 0 free, pinned: 1 free (rz), free: 3 free

	for _, n := range s.Nodes {
		idx := n.DofIndices()
		for i := 0; i < 3; i++ {
			restrained := n.Support != nil && n.Support.At(i)
			if restrained {
				assert.GreaterOrEqual(t, idx[i], ndof)
			} else {
				assert.Less(t, idx[i], ndof)
			}
		}
	}
}

func TestNumberAssignsDistinctIndices(t *testing.T) {
	s := model.NewStructure()
	n1 := model.NewNode(0, 0)
	n2 := model.NewNode(1, 0).SetSupport(true, false, false)
	require.NoError(t, s.AddNode(n1))
	require.NoError(t, s.AddNode(n2))

	_, err := Number(s)
	require.NoError(t, err)

	seen := map[int]bool{}
	for _, n := range s.Nodes {
		for _, idx := range n.DofIndices() {
			assert.False(t, seen[idx], "duplicate global index %d", idx)
			seen[idx] = true
		}
	}
	assert.Len(t, seen, 6)
}
