// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package peel

// Drive applies a handler to a program until the handler finishes, peeling
// matched occurrences of the proof's effect kind and passing everything else
// through to the remainder stack.
//
// The loop is explicit: driving a chain of any length consumes constant call
// stack. Occurrences the proof does not match are re-suspended over the
// remainder stack with a continuation that defers the rest of this pass, so
// one invocation resolves every matched occurrence in the program while
// leaving the remainder stack untouched.
func Drive[R, U, A, B, S any](p Program[R, A], m Member[R, U], loop Loop[R, U, A, B, S]) Program[U, B] {
	return driveFrom(p, m, loop, loop.Init())
}

// driveFrom is the trampoline: one iteration per program node, no recursion
// over program length. Recursive re-entry happens only inside emitted
// continuations, at most one frame per resumption.
func driveFrom[R, U, A, B, S any](p Program[R, A], m Member[R, U], loop Loop[R, U, A, B, S], s S) Program[U, B] {
	cur := p
	for {
		switch n := cur.(type) {
		case Done[R, A]:
			nx := loop.OnPure(n.Value, s)
			if nx.Final != nil {
				return nx.Final
			}
			cur, s = nx.Program, nx.State

		case Suspended[R, A]:
			op, leftover, ok := m.Project(n.Union)
			if !ok {
				// Not ours: pass through, deferring the rest of this pass
				// to the occurrence's eventual resumption.
				k, st := n.K, s
				return Suspended[U, B]{
					Union: leftover,
					K: KontFunc[U, B](func(v Resumed) Program[U, B] {
						return driveFrom(k.Resume(v), m, loop, st)
					}),
				}
			}
			nx := loop.OnEffect(op, n.K, s)
			if nx.Final != nil {
				return nx.Final
			}
			cur, s = nx.Program, nx.State

		case Batched[R, A]:
			if len(n.Unions) == 0 {
				panic("peel: empty batch")
			}
			ops, opIdx, leftovers, leftIdx := splitBatch(n.Unions, m)
			if len(ops) == 0 {
				// Whole batch belongs to the remainder stack: re-emit it
				// unchanged in shape.
				k, st := n.K, s
				return Batched[U, B]{
					Unions: leftovers,
					K: KontFunc[U, B](func(v Resumed) Program[U, B] {
						return driveFrom(k.Resume(v), m, loop, st)
					}),
				}
			}
			nx := loop.OnBatch(ops, batchKont(n.K, m, opIdx, leftovers, leftIdx), s)
			if nx.Final != nil {
				return nx.Final
			}
			cur, s = nx.Program, nx.State

		default:
			panic("peel: malformed program node")
		}
	}
}

// splitBatch partitions a batch into the matched operation payloads and the
// unmatched leftovers, each tagged with its original position so the merge
// step can restore batch order.
func splitBatch[R, U any](unions []Union[R], m Member[R, U]) (ops []Operation, opIdx []int, leftovers []Union[U], leftIdx []int) {
	for i, u := range unions {
		op, leftover, ok := m.Project(u)
		if ok {
			ops = append(ops, op)
			opIdx = append(opIdx, i)
		} else {
			leftovers = append(leftovers, leftover)
			leftIdx = append(leftIdx, i)
		}
	}
	return ops, opIdx, leftovers, leftIdx
}

// batchKont builds the continuation handed to Loop.OnBatch. Resumed with the
// matched subset's ordered results, it reconstructs the original node's
// value: directly when nothing was left over, otherwise through a new
// batched node over the re-embedded leftovers whose own continuation merges
// both result sets back into original positional order.
func batchKont[R, U, A any](k Kont[R, A], m Member[R, U], opIdx []int, leftovers []Union[U], leftIdx []int) Kont[R, A] {
	if len(leftovers) == 0 {
		// Every occurrence matched; subset order is batch order.
		return k
	}
	return KontFunc[R, A](func(v Resumed) Program[R, A] {
		matched := v.([]Resumed)
		unions := make([]Union[R], len(leftovers))
		for i, u := range leftovers {
			unions[i] = m.Accept(u)
		}
		return Batched[R, A]{
			Unions: unions,
			K: KontFunc[R, A](func(rv Resumed) Program[R, A] {
				rest := rv.([]Resumed)
				merged := make([]Resumed, len(opIdx)+len(leftIdx))
				for j, idx := range opIdx {
					merged[idx] = matched[j]
				}
				for j, idx := range leftIdx {
					merged[idx] = rest[j]
				}
				return k.Resume(merged)
			}),
		}
	})
}
