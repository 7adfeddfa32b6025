// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package peel

// Handler shapes. Loop is the general contract the driver speaks; Recurse
// and StateRecurse are the restricted shapes most handlers fit, implemented
// as Loop restrictions by the interpretation entry points.

// Next is the outcome of one [Loop] callback: either resume the driver with
// a new program and carried state, or finish with a program over the reduced
// stack.
//
// A non-nil Final finishes; otherwise the driver continues with Program and
// State. Exactly one of the two forms is meaningful per step.
type Next[R, U, A, B, S any] struct {
	// Program is the program the driver continues with.
	Program Program[R, A]

	// State is the carried accumulator the driver continues with.
	State S

	// Final, when non-nil, ends the driver pass with this program over the
	// reduced stack.
	Final Program[U, B]
}

// Loop is the most general handler contract: three callbacks covering the
// three program shapes, each deciding per step whether to continue or
// finish. Unlike [Recurse] and [StateRecurse] it may transform the Done case
// into further suspended work, which is required for handlers whose effect
// models a restartable computation.
//
// A handler that never finishes loops forever by construction; that mirrors
// unbounded-computation semantics and is not detected by the driver.
type Loop[R, U, A, B, S any] interface {
	// Init produces the initial carried state.
	Init() S

	// OnPure handles a completed program.
	OnPure(a A, s S) Next[R, U, A, B, S]

	// OnEffect handles one matched occurrence. k resumes the rest of the
	// program with the occurrence's result.
	OnEffect(op Operation, k Kont[R, A], s S) Next[R, U, A, B, S]

	// OnBatch handles the matched subset of a batched node. k resumes the
	// rest of the program with the ordered []Resumed of subset results.
	OnBatch(ops []Operation, k Kont[R, A], s S) Next[R, U, A, B, S]
}

// Recurse is the stateless handler shape: it only inspects matched
// occurrences and cannot alter how completed programs are handled.
type Recurse[U, B any] interface {
	// OnEffect resolves one occurrence. Returning (v, nil) resumes the
	// continuation with v; returning (_, final) short-circuits the whole
	// remaining program with final.
	OnEffect(op Operation) (Resumed, Program[U, B])

	// OnBatch resolves a batch. Returning (values, nil) resumes with one
	// result per occurrence, in order. Returning (nil, degraded) degrades
	// the batch into one combined occurrence of the same effect kind whose
	// result is the full ordered []Resumed; this is the canonical path for
	// handlers with no native batching capability.
	OnBatch(ops []Operation) ([]Resumed, Operation)
}

// StateRecurse is the stateful handler shape: an accumulator S is threaded
// across occurrences and finalized against the eventual done-value. Required
// whenever handling an effect must carry information between occurrences
// that the program structure alone cannot recover.
type StateRecurse[U, A, B, S any] interface {
	// Init produces the initial accumulator.
	Init() S

	// Apply resolves one occurrence, yielding its resumption value and the
	// updated accumulator.
	Apply(op Operation, s S) (Resumed, S)

	// ApplyBatch resolves a batch. Returning (values, nil, next) resumes
	// with all results at once; returning (nil, degraded, next) degrades
	// the batch into one combined occurrence, same contract as
	// [Recurse.OnBatch].
	ApplyBatch(ops []Operation, s S) ([]Resumed, Operation, S)

	// Finalize combines the done-value with the final accumulator.
	Finalize(a A, s S) B
}
