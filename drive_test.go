// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package peel_test

import (
	"testing"

	"code.hybscloud.com/peel"
)

func logging(msg string) peel.Program[askLogStack, string] {
	return peel.Send[askLogStack, string](logUnion(msg))
}

// TestDriveMixedBatchOrder splits a batch between matched and unmatched
// occurrences and checks that the combine function still sees results in the
// original positional order.
func TestDriveMixedBatchOrder(t *testing.T) {
	p := peel.Batch[askLogStack, string]([]peel.Union[askLogStack]{
		askUnion("k0"), logUnion("r1"), askUnion("k2"), logUnion("r3"),
	}, concatResults)
	q := peel.Interpret[askLogStack, logStack, string, string](p,
		askMember, envRecurse[logStack, string]{env: map[string]string{"k0": "r0", "k2": "r2"}},
		func(a string) string { return a })
	got, record := runLog(q)
	if got != "r0r1r2r3" {
		t.Fatalf("got %q, want %q", got, "r0r1r2r3")
	}
	if len(record) != 2 || record[0] != "r1" || record[1] != "r3" {
		t.Fatalf("got log record %v, want [r1 r3]", record)
	}
}

// TestDriveUnmatchedBatchKeepsShape drives a batch with no matched
// occurrences; the batch must re-emerge as one batched node, not a sequence.
func TestDriveUnmatchedBatchKeepsShape(t *testing.T) {
	p := peel.Batch[askLogStack, string]([]peel.Union[askLogStack]{
		logUnion("m0"), logUnion("m1"),
	}, concatResults)
	q := peel.Interpret[askLogStack, logStack, string, string](p,
		askMember, envRecurse[logStack, string]{env: nil},
		func(a string) string { return a })
	b, ok := q.(peel.Batched[logStack, string])
	if !ok {
		t.Fatalf("got %T, want Batched after pass-through", q)
	}
	if len(b.Unions) != 2 {
		t.Fatalf("got %d unions, want 2", len(b.Unions))
	}
	got, _ := runLog(q)
	if got != "m0m1" {
		t.Fatalf("got %q, want %q", got, "m0m1")
	}
}

func TestDrivePassThroughThenMatch(t *testing.T) {
	p := peel.Bind(logging("m"), func(string) peel.Program[askLogStack, string] {
		return ask("a")
	})
	q := peel.Interpret[askLogStack, logStack, string, string](p,
		askMember, envRecurse[logStack, string]{env: map[string]string{"a": "va"}},
		func(a string) string { return a })
	got, record := runLog(q)
	if got != "va" {
		t.Fatalf("got %q, want %q", got, "va")
	}
	if len(record) != 1 || record[0] != "m" {
		t.Fatalf("got log record %v, want [m]", record)
	}
}

// TestDriveDeepChain resolves a million sequential occurrences in one driver
// invocation; the trampoline must hold call-stack usage constant.
func TestDriveDeepChain(t *testing.T) {
	const n = 1_000_000
	p := ask("k")
	for range n {
		p = peel.Bind(p, func(string) peel.Program[askLogStack, string] {
			return ask("k")
		})
	}
	got := interpretAsks(p, map[string]string{"k": "v"})
	if got != "v" {
		t.Fatalf("got %q, want %q", got, "v")
	}
}

func TestDriveEmptyBatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty batched node")
		}
	}()
	p := peel.Batched[askLogStack, string]{}
	_ = peel.Interpret[askLogStack, logStack, string, string](p,
		askMember, envRecurse[logStack, string]{env: nil},
		func(a string) string { return a })
}
