// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package peel

// All composes independent programs applicatively: the pending occurrences
// of every program are gathered into a single batched node, preserving the
// hint that they may be executed concurrently or in bulk. The result value
// carries one entry per input program, in input order.
//
// Programs advance in lockstep: each resumption supplies one layer of
// results, the constituents are resumed with their slices, and the survivors
// are gathered again. Resumption cost is one gathering pass per layer; no
// recursion over program length.
//
// Inputs of different result types are combined via [Erase].
func All[R any](ps []Program[R, Erased]) Program[R, []Resumed] {
	pending := make([]Program[R, Erased], len(ps))
	copy(pending, ps)
	return gather(pending)
}

// gather inspects one layer of pending programs and either completes or
// emits the batched node for that layer.
func gather[R any](pending []Program[R, Erased]) Program[R, []Resumed] {
	total := 0
	for _, p := range pending {
		switch n := p.(type) {
		case Done[R, Erased]:
		case Suspended[R, Erased]:
			total++
		case Batched[R, Erased]:
			if len(n.Unions) == 0 {
				panic("peel: empty batch")
			}
			total += len(n.Unions)
		default:
			panic("peel: malformed program node")
		}
	}
	if total == 0 {
		values := make([]Resumed, len(pending))
		for i, p := range pending {
			values[i] = p.(Done[R, Erased]).Value
		}
		return Done[R, []Resumed]{Value: values}
	}

	unions := make([]Union[R], 0, total)
	for _, p := range pending {
		switch n := p.(type) {
		case Suspended[R, Erased]:
			unions = append(unions, n.Union)
		case Batched[R, Erased]:
			unions = append(unions, n.Unions...)
		}
	}
	return Batched[R, []Resumed]{
		Unions: unions,
		K: KontFunc[R, []Resumed](func(v Resumed) Program[R, []Resumed] {
			results := v.([]Resumed)
			next := make([]Program[R, Erased], len(pending))
			i := 0
			for j, p := range pending {
				switch n := p.(type) {
				case Done[R, Erased]:
					next[j] = n
				case Suspended[R, Erased]:
					next[j] = n.K.Resume(results[i])
					i++
				case Batched[R, Erased]:
					cnt := len(n.Unions)
					sub := make([]Resumed, cnt)
					copy(sub, results[i:i+cnt])
					next[j] = n.K.Resume(sub)
					i += cnt
				}
			}
			return gather(next)
		}),
	}
}
