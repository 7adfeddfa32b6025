// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package peel_test

import (
	"fmt"

	"code.hybscloud.com/peel"
)

// Test effect stacks. Stacks are phantom marker types; the kinds listed in
// the comments are a convention of these tests, not a language-level bound.

type askLogStack struct{}   // ask + log
type logStack struct{}      // log
type queryLogStack struct{} // query + log
type noStack struct{}       // fully interpreted

const (
	askKind   peel.Kind = "ask"
	logKind   peel.Kind = "log"
	queryKind peel.Kind = "query"
)

// askOp looks a key up in an environment; result is a string.
type askOp struct{ key string }

// logOp records a message; result is the message itself, so test programs
// can also thread log results through combine functions.
type logOp struct{ msg string }

// queryOp is the renamed form of askOp used by Transform tests.
type queryOp struct{ key string }

// batchedAsk is a combined occurrence used by degrade-to-single handlers;
// its result is the ordered []peel.Resumed of member results.
type batchedAsk struct{ ops []peel.Operation }

var (
	askMember = peel.MemberOf[askLogStack, logStack](askKind)
	logMember = peel.MemberOf[logStack, noStack](logKind)
)

func ask(key string) peel.Program[askLogStack, string] {
	return peel.Send[askLogStack, string](askMember.Inject(askOp{key: key}))
}

func askUnion(key string) peel.Union[askLogStack] {
	return askMember.Inject(askOp{key: key})
}

func logUnion(msg string) peel.Union[askLogStack] {
	return peel.Union[askLogStack]{Kind: logKind, Op: logOp{msg: msg}}
}

// envRecurse resolves askOp occurrences from a fixed environment, batches
// included. U and B vary per test.
type envRecurse[U, B any] struct {
	env map[string]string
}

func (h envRecurse[U, B]) OnEffect(op peel.Operation) (peel.Resumed, peel.Program[U, B]) {
	return h.env[op.(askOp).key], nil
}

func (h envRecurse[U, B]) OnBatch(ops []peel.Operation) ([]peel.Resumed, peel.Operation) {
	values := make([]peel.Resumed, len(ops))
	for i, op := range ops {
		values[i] = h.env[op.(askOp).key]
	}
	return values, nil
}

// logRecurse resolves logOp occurrences with the message itself, appending
// each message to a shared record.
type logRecurse[U, B any] struct {
	record *[]string
}

func (h logRecurse[U, B]) OnEffect(op peel.Operation) (peel.Resumed, peel.Program[U, B]) {
	msg := op.(logOp).msg
	*h.record = append(*h.record, msg)
	return msg, nil
}

func (h logRecurse[U, B]) OnBatch(ops []peel.Operation) ([]peel.Resumed, peel.Operation) {
	values := make([]peel.Resumed, len(ops))
	for i, op := range ops {
		msg := op.(logOp).msg
		*h.record = append(*h.record, msg)
		values[i] = msg
	}
	return values, nil
}

// runLog interprets the log kind of a Program[logStack, string] and returns
// the final value together with the recorded messages.
func runLog(p peel.Program[logStack, string]) (string, []string) {
	var record []string
	h := logRecurse[noStack, string]{record: &record}
	resolved := peel.Interpret[logStack, noStack, string, string](p, logMember, h, func(a string) string { return a })
	return peel.RunPure[noStack, string](resolved), record
}

// concatResults is the combine function used by batch order tests: string
// representations concatenated in positional order.
func concatResults(results []peel.Resumed) string {
	out := ""
	for _, r := range results {
		out += fmt.Sprint(r)
	}
	return out
}
