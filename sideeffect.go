// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package peel

// SideEffect executes effect occurrences eagerly, outside any program
// structure. RunBatch receives the matched subset in batch order and must
// return one result per operation, in the same order.
type SideEffect interface {
	Run(op Operation) Resumed
	RunBatch(ops []Operation) []Resumed
}

// RunSideEffect collapses the proof's effect kind to ordinary values by
// executing each matched occurrence immediately and resuming with the raw
// result. It never finishes early; the program's own value passes through
// unchanged.
func RunSideEffect[R, U, A any](p Program[R, A], m Member[R, U], se SideEffect) Program[U, A] {
	return Interpret(p, m, sideEffectRecurse[U, A]{se: se}, identity[A])
}

// sideEffectRecurse adapts a SideEffect to the stateless handler shape.
// Both callbacks always resume.
type sideEffectRecurse[U, A any] struct {
	se SideEffect
}

func (h sideEffectRecurse[U, A]) OnEffect(op Operation) (Resumed, Program[U, A]) {
	return h.se.Run(op), nil
}

func (h sideEffectRecurse[U, A]) OnBatch(ops []Operation) ([]Resumed, Operation) {
	return h.se.RunBatch(ops), nil
}

// SideEffectFunc builds a SideEffect from a single-operation function;
// batches run the function once per operation, sequentially.
func SideEffectFunc(run func(op Operation) Resumed) SideEffect {
	return sideEffectFunc{run: run}
}

type sideEffectFunc struct {
	run func(op Operation) Resumed
}

func (f sideEffectFunc) Run(op Operation) Resumed { return f.run(op) }

func (f sideEffectFunc) RunBatch(ops []Operation) []Resumed {
	values := make([]Resumed, len(ops))
	for i, op := range ops {
		values[i] = f.run(op)
	}
	return values
}

// identity is the identity done-value mapping for runners that leave the
// program's value untouched. Named generic function produces a static
// function value per type instantiation, avoiding the heap allocation that
// anonymous closures incur.
func identity[A any](a A) A { return a }
