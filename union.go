// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package peel

// Kind identifies an effect type within a stack.
// Effect packages declare one Kind per effect family; a Union carries the
// Kind of the occurrence it wraps so that membership capabilities can match
// without reflection.
type Kind string

// Operation is the interface for effect operation payloads.
// The result type of an operation is known only to the effect that defines
// it; the driver threads results through as opaque [Resumed] values.
type Operation any

// Resumed is the interface for values flowing through suspension and
// resumption. A batched continuation is resumed with a []Resumed carrying
// one result per occurrence, in original batch order.
type Resumed any

// Union is one effect occurrence drawn from stack R: an opaque operation
// payload tagged with its effect kind. The stack parameter R is a phantom
// marker type; it never holds a value.
type Union[R any] struct {
	// Kind identifies which effect family of R the occurrence belongs to.
	Kind Kind

	// Op is the operation payload, opaque to the driver.
	Op Operation
}

// Member proves that one effect kind belongs to stack R with remainder U.
// It is the only capability the driver needs: a typed partial match, the
// re-embedding of remainder occurrences, and injection of fresh occurrences.
//
// The encoding of stacks and proofs is external to this package; [KindMember]
// is the reference tag-based implementation.
type Member[R, U any] interface {
	// Project performs the typed partial match. When the occurrence belongs
	// to the target kind it returns (payload, zero, true); otherwise it
	// returns (nil, leftover, false) with the occurrence re-typed to the
	// remainder stack.
	Project(u Union[R]) (Operation, Union[U], bool)

	// Accept re-embeds a remainder-stack occurrence into the larger stack.
	// Used when re-assembling a batched node after the matched subset has
	// been removed.
	Accept(u Union[U]) Union[R]

	// Inject embeds a fresh operation of the target kind into the stack.
	// Used by translation, transformation, and the degrade-to-single path.
	Inject(op Operation) Union[R]
}

// KindMember is the reference [Member] implementation: membership is decided
// by comparing the occurrence's kind tag, and the remainder stack shares the
// union representation.
type KindMember[R, U any] struct {
	// Kind is the target effect kind this proof matches.
	Kind Kind
}

// MemberOf creates a [KindMember] proof that the given kind belongs to stack
// R with remainder U. The proof is returned as a [Member] so call sites and
// type inference see the capability, not the encoding.
func MemberOf[R, U any](kind Kind) Member[R, U] {
	return KindMember[R, U]{Kind: kind}
}

// Project implements [Member].
func (m KindMember[R, U]) Project(u Union[R]) (Operation, Union[U], bool) {
	if u.Kind == m.Kind {
		return u.Op, Union[U]{}, true
	}
	return nil, Union[U]{Kind: u.Kind, Op: u.Op}, false
}

// Accept implements [Member].
func (m KindMember[R, U]) Accept(u Union[U]) Union[R] {
	return Union[R]{Kind: u.Kind, Op: u.Op}
}

// Inject implements [Member].
func (m KindMember[R, U]) Inject(op Operation) Union[R] {
	return Union[R]{Kind: m.Kind, Op: op}
}

// sameStack adapts a membership proof so that unmatched occurrences stay in
// the original stack instead of moving to the remainder. Intercept and
// InterceptState drive with a sameStack proof: the target kind is observed
// without being removed from the stack's type.
type sameStack[R, U any] struct {
	m Member[R, U]
}

func (a sameStack[R, U]) Project(u Union[R]) (Operation, Union[R], bool) {
	op, _, ok := a.m.Project(u)
	if ok {
		return op, Union[R]{}, true
	}
	return nil, u, false
}

func (a sameStack[R, U]) Accept(u Union[R]) Union[R] { return u }

func (a sameStack[R, U]) Inject(op Operation) Union[R] { return a.m.Inject(op) }
