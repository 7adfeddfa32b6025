// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package peel

// Interpretation entry points. Each wraps a restricted handler shape into a
// [Loop] and hands it to [Drive]; the Loop adapters also own the
// degrade-to-single path, re-injecting degraded operations through the same
// membership proof so they always match on the next driver iteration.

// statelessNext abbreviates the step outcome of the stateless adapters.
type statelessNext[R, U, A, B any] = Next[R, U, A, B, struct{}]

// Interpret folds the proof's effect kind out of the stack with a stateless
// handler. Done-values are lifted into the target stack via pure; the
// produced program is entirely over the remainder stack.
func Interpret[R, U, A, B any](p Program[R, A], m Member[R, U], h Recurse[U, B], pure func(A) B) Program[U, B] {
	return Drive[R, U, A, B, struct{}](p, m, recurseLoop[R, U, A, B]{h: h, m: m, pure: pure})
}

// InterpretState folds the proof's effect kind out of the stack with a
// stateful handler, threading its accumulator across occurrences and
// finalizing it against the eventual done-value.
func InterpretState[R, U, A, B, S any](p Program[R, A], m Member[R, U], h StateRecurse[U, A, B, S]) Program[U, B] {
	return Drive[R, U, A, B, S](p, m, stateLoop[R, U, A, B, S]{h: h, m: m})
}

// Intercept observes the proof's effect kind without removing it from the
// stack's type: identical driver mechanics to [Interpret], but unmatched
// occurrences are re-wrapped into the same stack. The handler's
// short-circuit program is likewise over the original stack.
func Intercept[R, U, A, B any](p Program[R, A], m Member[R, U], h Recurse[R, B], pure func(A) B) Program[R, B] {
	ss := sameStack[R, U]{m: m}
	return Drive[R, R, A, B, struct{}](p, ss, recurseLoop[R, R, A, B]{h: h, m: ss, pure: pure})
}

// InterceptState is the stateful analogue of [Intercept].
func InterceptState[R, U, A, B, S any](p Program[R, A], m Member[R, U], h StateRecurse[R, A, B, S]) Program[R, B] {
	ss := sameStack[R, U]{m: m}
	return Drive[R, R, A, B, S](p, ss, stateLoop[R, R, A, B, S]{h: h, m: ss})
}

// recurseLoop adapts a [Recurse] handler to the [Loop] contract.
type recurseLoop[R, U, A, B any] struct {
	h    Recurse[U, B]
	m    Member[R, U]
	pure func(A) B
}

func (l recurseLoop[R, U, A, B]) Init() struct{} { return struct{}{} }

func (l recurseLoop[R, U, A, B]) OnPure(a A, _ struct{}) statelessNext[R, U, A, B] {
	return statelessNext[R, U, A, B]{Final: Done[U, B]{Value: l.pure(a)}}
}

func (l recurseLoop[R, U, A, B]) OnEffect(op Operation, k Kont[R, A], _ struct{}) statelessNext[R, U, A, B] {
	v, final := l.h.OnEffect(op)
	if final != nil {
		return statelessNext[R, U, A, B]{Final: final}
	}
	return statelessNext[R, U, A, B]{Program: k.Resume(v)}
}

func (l recurseLoop[R, U, A, B]) OnBatch(ops []Operation, k Kont[R, A], _ struct{}) statelessNext[R, U, A, B] {
	values, degraded := l.h.OnBatch(ops)
	if degraded != nil {
		return statelessNext[R, U, A, B]{Program: Suspended[R, A]{Union: l.m.Inject(degraded), K: k}}
	}
	return statelessNext[R, U, A, B]{Program: k.Resume(values)}
}

// stateLoop adapts a [StateRecurse] handler to the [Loop] contract.
type stateLoop[R, U, A, B, S any] struct {
	h StateRecurse[U, A, B, S]
	m Member[R, U]
}

func (l stateLoop[R, U, A, B, S]) Init() S { return l.h.Init() }

func (l stateLoop[R, U, A, B, S]) OnPure(a A, s S) Next[R, U, A, B, S] {
	return Next[R, U, A, B, S]{Final: Done[U, B]{Value: l.h.Finalize(a, s)}}
}

func (l stateLoop[R, U, A, B, S]) OnEffect(op Operation, k Kont[R, A], s S) Next[R, U, A, B, S] {
	v, next := l.h.Apply(op, s)
	return Next[R, U, A, B, S]{Program: k.Resume(v), State: next}
}

func (l stateLoop[R, U, A, B, S]) OnBatch(ops []Operation, k Kont[R, A], s S) Next[R, U, A, B, S] {
	values, degraded, next := l.h.ApplyBatch(ops, s)
	if degraded != nil {
		return Next[R, U, A, B, S]{Program: Suspended[R, A]{Union: l.m.Inject(degraded), K: k}, State: next}
	}
	return Next[R, U, A, B, S]{Program: k.Resume(values), State: next}
}
