// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package peel

// Program is an immutable suspended or completed effectful computation over
// effect stack R producing a value of type A. The stack parameter R is a
// phantom marker type naming the open set of effect kinds the program may
// suspend on.
//
// A Program is one of three shapes: [Done], [Suspended], or [Batched].
// Values are constructed by effect producers and consumed exactly once by a
// driver invocation; there is no mutation, only construction of new values.
type Program[R, A any] interface {
	program() // unexported marker method
}

// Done is a terminal program carrying a final value.
type Done[R, A any] struct {
	Value A
}

func (Done[R, A]) program() {}

// Suspended is a single effect occurrence paired with the continuation that,
// given the occurrence's result, produces the next program.
type Suspended[R, A any] struct {
	Union Union[R]
	K     Kont[R, A]
}

func (Suspended[R, A]) program() {}

// Batched is an independent group of effect occurrences whose results, once
// all available, resume K with the ordered []Resumed of per-occurrence
// results. Batching is a data hint that the occurrences are mutually
// independent and eligible for concurrent or bulk execution; the driver
// preserves it and restores positional order afterward.
//
// Unions is never empty; an empty batch is an invariant violation and the
// constructors and driver treat it as fatal.
type Batched[R, A any] struct {
	Unions []Union[R]
	K      Kont[R, A]
}

func (Batched[R, A]) program() {}

// Pure lifts a value into a completed program with no effects.
func Pure[R, A any](a A) Program[R, A] {
	return Done[R, A]{Value: a}
}

// Send suspends a single effect occurrence with the identity continuation.
// The occurrence's result becomes the program's value.
func Send[R, A any](u Union[R]) Program[R, A] {
	return Suspended[R, A]{Union: u}
}

// Batch builds a batched node from independent occurrences and a pure
// combine function. combine receives one result per occurrence, in the
// order the occurrences were given, and that positional contract survives
// any split the driver performs.
//
// Panics if unions is empty.
func Batch[R, A any](unions []Union[R], combine func(results []Resumed) A) Program[R, A] {
	if len(unions) == 0 {
		panic("peel: empty batch")
	}
	step := func(v Resumed) Program[R, Erased] {
		return Done[R, Erased]{Value: combine(v.([]Resumed))}
	}
	return Batched[R, A]{
		Unions: unions,
		K:      Kont[R, A]{node: &leafK[R]{step: step}},
	}
}

// Bind sequences a program with a function producing the next program
// (monadic bind). Composition is O(1): the step is appended to the pending
// continuation chain and applied later by the evaluation loop, never by
// nested calls at composition time.
func Bind[R, A, B any](p Program[R, A], f func(A) Program[R, B]) Program[R, B] {
	switch n := p.(type) {
	case Done[R, A]:
		// Optimization: already completed, apply f directly.
		return f(n.Value)
	case Suspended[R, A]:
		return Suspended[R, B]{Union: n.Union, K: bindK(n.K, f)}
	case Batched[R, A]:
		return Batched[R, B]{Unions: n.Unions, K: bindK(n.K, f)}
	}
	panic("peel: malformed program node")
}

// bindK appends f as one erased step after k's chain.
func bindK[R, A, B any](k Kont[R, A], f func(A) Program[R, B]) Kont[R, B] {
	step := func(v Resumed) Program[R, Erased] {
		return Erase[R, B](f(v.(A)))
	}
	return Kont[R, B]{node: chainNodes[R](k.node, &leafK[R]{step: step})}
}

// Map applies a pure function to the result of a program.
//
// Allocation note: Map is equivalent to Bind(p, compose(Pure, f)) but the
// appended step completes immediately, avoiding the intermediate program
// inspection that Bind performs.
func Map[R, A, B any](p Program[R, A], f func(A) B) Program[R, B] {
	switch n := p.(type) {
	case Done[R, A]:
		return Done[R, B]{Value: f(n.Value)}
	case Suspended[R, A]:
		return Suspended[R, B]{Union: n.Union, K: mapK(n.K, f)}
	case Batched[R, A]:
		return Batched[R, B]{Unions: n.Unions, K: mapK(n.K, f)}
	}
	panic("peel: malformed program node")
}

// mapK appends a pure transformation as one erased step after k's chain.
func mapK[R, A, B any](k Kont[R, A], f func(A) B) Kont[R, B] {
	step := func(v Resumed) Program[R, Erased] {
		return Done[R, Erased]{Value: f(v.(A))}
	}
	return Kont[R, B]{node: chainNodes[R](k.node, &leafK[R]{step: step})}
}

// Then sequences two programs, discarding the first result.
//
// Allocation note: Then avoids the closure capture of a transformation
// function that would occur with Bind(p, func(_ A) { return next }).
func Then[R, A, B any](p Program[R, A], next Program[R, B]) Program[R, B] {
	switch n := p.(type) {
	case Done[R, A]:
		return next
	case Suspended[R, A]:
		return Suspended[R, B]{Union: n.Union, K: thenK[R, A, B](n.K, next)}
	case Batched[R, A]:
		return Batched[R, B]{Unions: n.Unions, K: thenK[R, A, B](n.K, next)}
	}
	panic("peel: malformed program node")
}

// thenK appends next as one discarding step after k's chain.
func thenK[R, A, B any](k Kont[R, A], next Program[R, B]) Kont[R, B] {
	erased := Erase[R, B](next)
	step := func(Resumed) Program[R, Erased] { return erased }
	return Kont[R, B]{node: chainNodes[R](k.node, &leafK[R]{step: step})}
}

// Erase re-types a program's result to [Erased] so programs of different
// result types can flow through one continuation chain or be combined by
// [All]. O(1): only the head node is rewrapped.
func Erase[R, A any](p Program[R, A]) Program[R, Erased] {
	switch n := p.(type) {
	case Done[R, A]:
		return Done[R, Erased]{Value: n.Value}
	case Suspended[R, A]:
		return Suspended[R, Erased]{Union: n.Union, K: Kont[R, Erased]{node: n.K.node}}
	case Batched[R, A]:
		return Batched[R, Erased]{Unions: n.Unions, K: Kont[R, Erased]{node: n.K.node}}
	}
	panic("peel: malformed program node")
}

// unerase recovers a typed program from an erased one. Inverse of [Erase];
// the erased value must actually be an A.
func unerase[R, A any](p Program[R, Erased]) Program[R, A] {
	switch n := p.(type) {
	case Done[R, Erased]:
		return Done[R, A]{Value: n.Value.(A)}
	case Suspended[R, Erased]:
		return Suspended[R, A]{Union: n.Union, K: Kont[R, A]{node: n.K.node}}
	case Batched[R, Erased]:
		return Batched[R, A]{Unions: n.Unions, K: Kont[R, A]{node: n.K.node}}
	}
	panic("peel: malformed program node")
}

// RunPure extracts the final value from a fully-resolved program.
//
// Panics if the program still suspends on an effect. Interpret the remaining
// effect kinds first.
func RunPure[R, A any](p Program[R, A]) A {
	if n, ok := p.(Done[R, A]); ok {
		return n.Value
	}
	panic("peel: unresolved effect in pure program - interpret remaining effect kinds first")
}
