// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

// LoadCaseKind tags the physical origin of a LoadCase, mirroring the
// teacher's edat.Type-style string tags but as a closed enum since the
// set of kinds is small and fixed.
type LoadCaseKind int

const (
	KindDead LoadCaseKind = iota
	KindLive
	KindWind
	KindSnow
	KindSeismic
	KindOther
)

func (k LoadCaseKind) String() string {
	switch k {
	case KindDead:
		return "dead"
	case KindLive:
		return "live"
	case KindWind:
		return "wind"
	case KindSnow:
		return "snow"
	case KindSeismic:
		return "seismic"
	default:
		return "other"
	}
}

// LoadCase is an identity-comparable tag for an independent load pattern.
// Identity comparison is pointer identity: two distinct *LoadCase values
// with the same Name/Kind are different cases, matching the teacher's
// use of per-load-case maps keyed by stable identity rather than by
// structural equality (spec.md section 9).
type LoadCase struct {
	Name string
	Kind LoadCaseKind
}

// NewLoadCase allocates a new, identity-distinct load case.
func NewLoadCase(name string, kind LoadCaseKind) *LoadCase {
	return &LoadCase{Name: name, Kind: kind}
}

// LoadCombination linearly superposes load cases by a scalar factor.
type LoadCombination map[*LoadCase]float64
