// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errs defines the error taxonomy shared by the model, assembler,
// solver and post-processor packages.
package errs

import "errors"

// Sentinel error kinds. Wrap with fmt.Errorf("...: %w", ErrXxx) at the
// call site so callers can still use errors.Is.
var (
	// ErrInvalidInput marks a null element, duplicate identity,
	// non-positive length or non-orthogonal transformation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoLoadCases marks Solve called with an empty LoadCasesToRun.
	ErrNoLoadCases = errors.New("no load cases selected to run")

	// ErrSingular marks an SPD factorization reporting non-SPD and a QR
	// fallback that failed or produced non-finite values.
	ErrSingular = errors.New("singular stiffness matrix")

	// ErrStateViolation marks a PostProcessor built from a structure whose
	// AnalysisStatus is Failure, or queries issued after a mutation.
	ErrStateViolation = errors.New("invalid structure state")
)
