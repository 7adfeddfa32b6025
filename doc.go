// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package peel provides a stack-safe interpretation core for effectful
// programs represented as data.
//
// A [Program] is an immutable value describing a chain of suspended effect
// occurrences and the pure continuations between them, over an open,
// statically-typed stack of effect kinds. The engine peels occurrences of
// one declared kind off the stack at a time, replacing each with either an
// immediately-known result or a delegation into the remainder stack, in one
// pass and in bounded call-stack space regardless of program length.
//
// # Program Representation
//
// Three node shapes:
//
//   - [Done]: terminal, carries the final value
//   - [Suspended]: one effect occurrence plus the continuation of the program
//   - [Batched]: an independent group of occurrences resumed all at once
//
// Batching is a data hint that occurrences are mutually independent and
// eligible for concurrent or bulk execution. The engine preserves that
// independence (it never forces artificial sequencing of occurrences it does
// not own) and restores positional order afterward.
//
// Constructors and combinators:
//
//   - [Pure]: lift a value into a completed program
//   - [Send]: suspend one effect occurrence
//   - [Batch]: suspend an independent group with a pure combine function
//   - [Bind], [Map], [Then]: sequence programs; composition is O(1)
//   - [All]: compose independent programs applicatively into one batch
//   - [Erase]: re-type a program's result for heterogeneous composition
//   - [RunPure]: extract the final value (panics on remaining suspension)
//
// # Continuations
//
// [Kont] is a composable continuation: a chain of single-step resume
// functions. Composing two chains ([ComposeK], [Bind]) is O(1); applying a
// chain ([Kont.Resume]) is an explicit loop that feeds completed
// intermediate programs into the next step and re-attaches unconsumed steps
// to suspended ones. No step is applied more than once per driver step, and
// chains of any length resume without call-stack growth.
//
// # Stack Membership
//
// Effect stacks are phantom marker types. [Union] is one occurrence drawn
// from a stack: a [Kind] tag plus an opaque [Operation] payload whose result
// type is known only to its effect. [Member] is the capability proving one
// kind belongs to stack R with remainder U, exposing exactly three
// operations: Project (typed partial match), Accept (re-embed a remainder
// occurrence), and Inject (embed a fresh occurrence). [KindMember] is the
// reference tag-based implementation; the engine is agnostic to how
// membership is proven.
//
// # Handlers
//
// Three handler shapes, most general first:
//
//   - [Loop]: per-step callbacks for all three node shapes, each returning
//     [Next] — continue with a new program and carried state, or finish with
//     a program over the reduced stack. Only Loop may turn the Done case
//     into further suspended work.
//   - [Recurse]: stateless; resolves occurrences or short-circuits.
//   - [StateRecurse]: folds an accumulator across occurrences and finalizes
//     it against the eventual done-value.
//
// Batch callbacks may degrade a batch into one combined occurrence of the
// same kind whose result is the full ordered result slice — the canonical
// path for handlers with no native batching capability. Degraded operations
// are re-injected through the membership proof, so they always match on the
// next driver iteration.
//
// # Driving
//
// [Drive] is the trampoline: an explicit loop applying a [Loop] to a program
// until the handler finishes. Matched occurrences go to the handler;
// unmatched ones are re-suspended over the remainder stack with a
// continuation deferring the rest of the pass. Batched nodes are split by an
// index-tagging pass: the matched subset goes to the handler, the leftovers
// are re-assembled into a batch, and the merge continuation restores the
// original positional order before resuming.
//
// Entry points built on Drive:
//
//   - [Interpret], [InterpretState]: fold the kind into the remainder stack
//   - [Intercept], [InterceptState]: observe within the same stack
//   - [Translate]: macro-expand each occurrence into a program over the
//     remainder stack
//   - [Transform]: rename occurrences into another kind one-for-one,
//     preserving node shapes
//   - [RunSideEffect]: execute occurrences eagerly and resume with raw
//     results
//   - [RunConcurrent]: execute occurrences via a supplied function, fanning
//     batches out across goroutines with bounded concurrency and first-error
//     cancellation; yields [Result]
//
// # Example
//
//	type calc struct{}
//	type none struct{}
//	const addKind peel.Kind = "add"
//
//	member := peel.MemberOf[calc, none](addKind)
//	program := peel.Bind(
//		peel.Send[calc, int](member.Inject([2]int{20, 1})),
//		func(x int) peel.Program[calc, int] {
//			return peel.Pure[calc](x * 2)
//		},
//	)
//
//	resolved := peel.RunSideEffect(program, member, peel.SideEffectFunc(
//		func(op peel.Operation) peel.Resumed {
//			args := op.([2]int)
//			return args[0] + args[1]
//		}))
//	result := peel.RunPure(resolved)
//	// result == 42
package peel
