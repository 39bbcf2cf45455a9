// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package intcode

// ConstError is an error type that can be used to define immutable
// error constants.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}

const (
	// ErrNeedsInput is reported by batch drivers when a program executes an
	// Input instruction after all supplied input values have been consumed.
	// Engines themselves report this condition as a NeedsInput result.
	ErrNeedsInput = ConstError("needs input")

	// The following errors are fatal VM faults. An engine reporting one of
	// them cannot be resumed.
	ErrInvalidOpCode     = ConstError("invalid opcode")
	ErrInvalidMode       = ConstError("invalid parameter mode")
	ErrNegativeAddress   = ConstError("negative memory address")
	ErrMemoryLimit       = ConstError("memory limit exceeded")
	ErrStepLimitExceeded = ConstError("step limit exceeded")

	// ErrInputOverrun is returned if a value is offered to an engine which
	// still holds an earlier value that no Input instruction consumed yet.
	ErrInputOverrun = ConstError("input offered while previous input is still pending")

	ErrMalformedProgram = ConstError("malformed program text")
	ErrUnknownEngine    = ConstError("unknown engine")
)
