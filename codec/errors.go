package codec

import (
	"errors"
	"fmt"

	"github.com/reoring/tasl"
	"github.com/reoring/tasl/internal/wire"
	"github.com/reoring/tasl/literal"
)

// issueAt builds a single-issue error located at a byte offset. Encoders pass
// -1 because the position in the output is not meaningful to callers.
func issueAt(path []string, off int, code, hint string) error {
	return issueParams(path, off, code, hint, nil)
}

func issueParams(path []string, off int, code, hint string, params map[string]any) error {
	is := tasl.NewIssue(path, code, hint)
	is.Offset = int64(off)
	is.Params = params
	return tasl.Issues{is}
}

func wireIssue(path []string, r *wire.Reader, err error) error {
	code := tasl.CodeOutOfRange
	if errors.Is(err, wire.ErrTruncated) {
		code = tasl.CodeTruncated
	}
	is := tasl.NewIssue(path, code, err.Error())
	is.Cause = err
	is.Offset = int64(r.Offset())
	return tasl.Issues{is}
}

// literalCode maps the literal sentinels onto issue codes.
func literalCode(err error) string {
	switch {
	case errors.Is(err, literal.ErrTruncated):
		return tasl.CodeTruncated
	case errors.Is(err, literal.ErrRange):
		return tasl.CodeOutOfRange
	default:
		return tasl.CodeMalformedLiteral
	}
}

func literalIssue(path []string, off int, err error) error {
	is := tasl.NewIssue(path, literalCode(err), err.Error())
	is.Cause = err
	is.Offset = int64(off)
	return tasl.Issues{is}
}

func kindOf(v tasl.Value) string {
	if v == nil {
		return "nil"
	}
	return v.Kind().String()
}

func mismatch(path []string, t tasl.Type, v tasl.Value) error {
	return tasl.Fail(path, tasl.CodeSchemaMismatch, fmt.Sprintf("expected %s value, got %s", t.Kind(), kindOf(v)))
}

func arity(path []string, t *tasl.Product, pv tasl.ProductValue) error {
	return tasl.Fail(path, tasl.CodeSchemaMismatch, fmt.Sprintf("expected %d components, got %d", t.Len(), len(pv)))
}

func optionRange(path []string, off int, t *tasl.Coproduct, option int) error {
	return issueParams(path, off, tasl.CodeOutOfRange, fmt.Sprintf("option %d outside %d options", option, t.Len()),
		map[string]any{"option": option, "options": t.Len()})
}

func limitExceeded(path []string, off int, what string, n, limit int) error {
	return issueParams(path, off, tasl.CodeTooBig, fmt.Sprintf("%d %s exceed the limit of %d", n, what, limit),
		map[string]any{"count": n, "limit": limit})
}
