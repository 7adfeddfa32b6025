// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package peel

// Rewrite strategies: Translate macro-expands an effect kind into programs
// over the remainder stack; Transform renames an effect kind into another
// one-for-one, leaving the stack's node shapes untouched.

// Translator rewrites one effect occurrence into a program over the
// remainder stack whose value is the occurrence's result.
type Translator[U any] func(op Operation) Program[U, Resumed]

// Translate rewrites every occurrence of the proof's effect kind into the
// program the translator supplies, sequencing that program's result into the
// rest of the original continuation. This is effect-to-program
// macro-expansion, not effect-to-value resolution: the produced program is
// over the remainder stack and the target kind is fully consumed, so
// re-running the same translation on the output is a no-op.
//
// A matched batch translates each member independently and recombines them
// with [All], preserving the independence hint.
func Translate[R, U, A any](p Program[R, A], m Member[R, U], t Translator[U]) Program[U, A] {
	return Drive[R, U, A, A, struct{}](p, m, translateLoop[R, U, A]{m: m, t: t})
}

// translateLoop expands matched occurrences. Expansions that complete
// immediately resume within the current driver pass, so a chain of purely
// expanded occurrences resolves in the driver loop; only an expansion that
// actually suspends finishes the pass, deferring the rest of the program
// into the expansion's continuation (one frame per external resumption).
type translateLoop[R, U, A any] struct {
	m Member[R, U]
	t Translator[U]
}

func (l translateLoop[R, U, A]) Init() struct{} { return struct{}{} }

func (l translateLoop[R, U, A]) OnPure(a A, _ struct{}) statelessNext[R, U, A, A] {
	return statelessNext[R, U, A, A]{Final: Done[U, A]{Value: a}}
}

func (l translateLoop[R, U, A]) OnEffect(op Operation, k Kont[R, A], _ struct{}) statelessNext[R, U, A, A] {
	expansion := l.t(op)
	if d, ok := expansion.(Done[U, Resumed]); ok {
		return statelessNext[R, U, A, A]{Program: k.Resume(d.Value)}
	}
	return statelessNext[R, U, A, A]{Final: Bind(expansion, func(x Resumed) Program[U, A] {
		return Translate[R, U, A](k.Resume(x), l.m, l.t)
	})}
}

func (l translateLoop[R, U, A]) OnBatch(ops []Operation, k Kont[R, A], _ struct{}) statelessNext[R, U, A, A] {
	expansions := make([]Program[U, Erased], len(ops))
	for i, op := range ops {
		expansions[i] = Erase[U, Resumed](l.t(op))
	}
	gathered := All(expansions)
	if d, ok := gathered.(Done[U, []Resumed]); ok {
		return statelessNext[R, U, A, A]{Program: k.Resume(d.Value)}
	}
	return statelessNext[R, U, A, A]{Final: Bind(gathered, func(xs []Resumed) Program[U, A] {
		return Translate[R, U, A](k.Resume(xs), l.m, l.t)
	})}
}

// Transform rewrites every occurrence of the from proof's effect kind into
// the into proof's kind via the pure mapping nat, one-for-one. Both proofs
// share the remainder U, so unmatched occurrences are carried over by
// re-embedding. Node shapes are untouched: a mixed batch stays one batch.
//
// The rewrite is lazy, one node per step; subsequent nodes are rewritten as
// continuations resume.
func Transform[R, T, U, A any](p Program[R, A], from Member[R, U], into Member[T, U], nat func(Operation) Operation) Program[T, A] {
	switch n := p.(type) {
	case Done[R, A]:
		return Done[T, A]{Value: n.Value}
	case Suspended[R, A]:
		k := n.K
		return Suspended[T, A]{
			Union: transformUnion(n.Union, from, into, nat),
			K: KontFunc[T, A](func(v Resumed) Program[T, A] {
				return Transform[R, T, U, A](k.Resume(v), from, into, nat)
			}),
		}
	case Batched[R, A]:
		if len(n.Unions) == 0 {
			panic("peel: empty batch")
		}
		unions := make([]Union[T], len(n.Unions))
		for i, u := range n.Unions {
			unions[i] = transformUnion(u, from, into, nat)
		}
		k := n.K
		return Batched[T, A]{
			Unions: unions,
			K: KontFunc[T, A](func(v Resumed) Program[T, A] {
				return Transform[R, T, U, A](k.Resume(v), from, into, nat)
			}),
		}
	}
	panic("peel: malformed program node")
}

// transformUnion maps one occurrence between the two stacks.
func transformUnion[R, T, U any](u Union[R], from Member[R, U], into Member[T, U], nat func(Operation) Operation) Union[T] {
	op, leftover, ok := from.Project(u)
	if ok {
		return into.Inject(nat(op))
	}
	return into.Accept(leftover)
}
