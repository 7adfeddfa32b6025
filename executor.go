// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package peel

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of a concurrently-executed program: the final value,
// or the first error an occurrence produced.
type Result[A any] struct {
	Value A
	Err   error
}

// RunConcurrent resolves matched occurrences by calling run. Batched
// occurrences fan out across goroutines, bounded by limit (0 means no
// bound); the first error cancels the batch's context and short-circuits the
// whole program with that error. Sequential occurrences run inline.
//
// Batch results are delivered to the program in batch order regardless of
// completion order.
func RunConcurrent[R, U, A any](ctx context.Context, p Program[R, A], m Member[R, U], run func(context.Context, Operation) (Resumed, error), limit int) Program[U, Result[A]] {
	return Drive[R, U, A, Result[A], struct{}](p, m, concLoop[R, U, A]{ctx: ctx, run: run, limit: limit})
}

// concNext abbreviates the step outcome of the concurrent runner.
type concNext[R, U, A any] = Next[R, U, A, Result[A], struct{}]

// concLoop is the Loop implementation behind RunConcurrent.
type concLoop[R, U, A any] struct {
	ctx   context.Context
	run   func(context.Context, Operation) (Resumed, error)
	limit int
}

func (l concLoop[R, U, A]) Init() struct{} { return struct{}{} }

func (l concLoop[R, U, A]) OnPure(a A, _ struct{}) concNext[R, U, A] {
	return concNext[R, U, A]{Final: Done[U, Result[A]]{Value: Result[A]{Value: a}}}
}

func (l concLoop[R, U, A]) OnEffect(op Operation, k Kont[R, A], _ struct{}) concNext[R, U, A] {
	v, err := l.run(l.ctx, op)
	if err != nil {
		return concNext[R, U, A]{Final: Done[U, Result[A]]{Value: Result[A]{Err: err}}}
	}
	return concNext[R, U, A]{Program: k.Resume(v)}
}

func (l concLoop[R, U, A]) OnBatch(ops []Operation, k Kont[R, A], _ struct{}) concNext[R, U, A] {
	results := make([]Resumed, len(ops))
	g, gctx := errgroup.WithContext(l.ctx)
	if l.limit > 0 {
		g.SetLimit(l.limit)
	}
	for i, op := range ops {
		g.Go(func() error {
			v, err := l.run(gctx, op)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return concNext[R, U, A]{Final: Done[U, Result[A]]{Value: Result[A]{Err: err}}}
	}
	return concNext[R, U, A]{Program: k.Resume(results)}
}
