// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package peel

// Erased represents a type-erased value in a continuation chain.
// Continuation steps process heterogeneous result types through a
// homogeneous chain; concrete types are recovered via assertions at the
// chain boundary.
type Erased = any

// kstep is one continuation step: given the previous result, produce the
// next (type-erased) program.
type kstep[R any] func(v Resumed) Program[R, Erased]

// knode forms an O(1)-composable chain of continuation steps.
// Dispatch uses type switches; knode is a pure marker interface.
type knode[R any] interface {
	knode()
}

// leafK is a single continuation step.
type leafK[R any] struct {
	step kstep[R]
}

func (*leafK[R]) knode() {}

// chainK represents a chain followed by more chain.
// This enables composing continuations without mutation.
type chainK[R any] struct {
	first knode[R]
	rest  knode[R]
}

func (*chainK[R]) knode() {}

// chainNodes links two step chains together.
// Returns the other operand when either side is nil (the identity element
// for chain composition), avoiding unnecessary chainK allocation.
//
// Composition is O(1) in all cases: returns the other operand or creates one
// chainK node.
func chainNodes[R any](first, rest knode[R]) knode[R] {
	if first == nil {
		return rest
	}
	if rest == nil {
		return first
	}
	return &chainK[R]{first: first, rest: rest}
}

// Kont is a composable continuation over stack R producing A.
// Resuming it with a value applies its steps through an explicit loop, so
// composing and resuming arbitrarily long chains never grows the call stack.
//
// The zero value is the identity continuation: resuming it yields the value
// itself as a completed program.
type Kont[R, A any] struct {
	node knode[R]
}

// KontFunc lifts a single resume function into a continuation.
func KontFunc[R, A any](f func(v Resumed) Program[R, A]) Kont[R, A] {
	return Kont[R, A]{node: &leafK[R]{step: func(v Resumed) Program[R, Erased] {
		return Erase[R, A](f(v))
	}}}
}

// ComposeK chains two continuations in O(1). Resuming the result applies a's
// steps and then b's; the value a produces must be the value b is resumed
// with.
func ComposeK[R, A, B any](a Kont[R, A], b Kont[R, B]) Kont[R, B] {
	return Kont[R, B]{node: chainNodes[R](a.node, b.node)}
}

// Resume applies the continuation to a value, producing the next program.
// Steps are consumed iteratively: a completed intermediate program feeds the
// next step, while a suspended one is returned with the unconsumed steps
// re-attached to its own continuation. No step is applied more than once.
func (k Kont[R, A]) Resume(v Resumed) Program[R, A] {
	node := k.node
	cur := v
	for {
		if node == nil {
			return Done[R, A]{Value: cur.(A)}
		}
		// Rotate left-nested chains so the head is always a single step.
		for {
			c, ok := node.(*chainK[R])
			if !ok {
				break
			}
			inner, ok := c.first.(*chainK[R])
			if !ok {
				break
			}
			node = &chainK[R]{first: inner.first, rest: chainNodes[R](inner.rest, c.rest)}
		}
		var step kstep[R]
		var rest knode[R]
		switch n := node.(type) {
		case *leafK[R]:
			step, rest = n.step, nil
		case *chainK[R]:
			step, rest = n.first.(*leafK[R]).step, n.rest
		default:
			panic("peel: unknown continuation node")
		}
		p := step(cur)
		if rest == nil {
			return unerase[R, A](p)
		}
		switch pn := p.(type) {
		case Done[R, Erased]:
			cur, node = pn.Value, rest
		case Suspended[R, Erased]:
			return Suspended[R, A]{
				Union: pn.Union,
				K:     Kont[R, A]{node: chainNodes[R](pn.K.node, rest)},
			}
		case Batched[R, Erased]:
			return Batched[R, A]{
				Unions: pn.Unions,
				K:      Kont[R, A]{node: chainNodes[R](pn.K.node, rest)},
			}
		default:
			panic("peel: malformed program node")
		}
	}
}
