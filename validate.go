package tasl

import (
	"errors"
	"fmt"
	"sort"

	"github.com/reoring/tasl/literal"
)

// Validate checks inst against s and collects every issue instead of stopping
// at the first one. Unlike the codec, it also checks that reference indices
// address an existing element of their target label. A nil error means
// encoding inst with s cannot fail.
func Validate(s *Schema, inst Instance) error {
	if s == nil {
		return Fail(nil, CodeInvalidSchema, "nil schema")
	}
	v := &validator{schema: s, inst: inst}
	var unknown []string
	for k := range inst {
		if !s.Has(k) {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		v.add([]string{k}, CodeSchemaMismatch, "label is not defined by the schema")
	}
	for i, k := range s.keys {
		for j, val := range inst[k] {
			v.path = append(v.path[:0], k, IndexSegment(j))
			v.value(s.types[i], val)
		}
	}
	if len(v.iss) > 0 {
		return v.iss
	}
	return nil
}

type validator struct {
	schema *Schema
	inst   Instance
	path   []string
	iss    Issues
}

func (v *validator) add(path []string, code, hint string) {
	v.iss = AppendIssues(v.iss, NewIssue(path, code, hint))
}

func (v *validator) addParams(code, hint string, params map[string]any) {
	is := NewIssue(v.path, code, hint)
	is.Params = params
	v.iss = AppendIssues(v.iss, is)
}

func (v *validator) mismatch(t Type, val Value) {
	got := "nil"
	if val != nil {
		got = val.Kind().String()
	}
	v.add(v.path, CodeSchemaMismatch, fmt.Sprintf("expected %s value, got %s", t.Kind(), got))
}

func (v *validator) value(t Type, val Value) {
	switch t := t.(type) {
	case *Reference:
		rv, ok := val.(ReferenceValue)
		if !ok {
			v.mismatch(t, val)
			return
		}
		if n := len(v.inst[t.key]); rv.Index < 0 || rv.Index >= n {
			v.addParams(CodeDanglingReference, fmt.Sprintf("index %d outside %q (len %d)", rv.Index, t.key, n),
				map[string]any{"index": rv.Index, "len": n, "key": t.key})
		}
	case *URI:
		if _, ok := val.(URIValue); !ok {
			v.mismatch(t, val)
		}
	case *Literal:
		lv, ok := val.(LiteralValue)
		if !ok {
			v.mismatch(t, val)
			return
		}
		if _, err := literal.AppendClass(nil, t.class, lv.Value); err != nil {
			code := CodeMalformedLiteral
			if errors.Is(err, literal.ErrRange) {
				code = CodeOutOfRange
			}
			v.add(v.path, code, err.Error())
		}
	case *Product:
		pv, ok := val.(ProductValue)
		if !ok {
			v.mismatch(t, val)
			return
		}
		if len(pv) != len(t.keys) {
			v.add(v.path, CodeSchemaMismatch, fmt.Sprintf("expected %d components, got %d", len(t.keys), len(pv)))
			return
		}
		for i, k := range t.keys {
			n := len(v.path)
			v.path = append(v.path, k)
			v.value(t.types[i], pv[i])
			v.path = v.path[:n]
		}
	case *Coproduct:
		cv, ok := val.(CoproductValue)
		if !ok {
			v.mismatch(t, val)
			return
		}
		if cv.Option < 0 || cv.Option >= len(t.keys) {
			v.addParams(CodeOutOfRange, fmt.Sprintf("option %d outside %d options", cv.Option, len(t.keys)),
				map[string]any{"option": cv.Option, "options": len(t.keys)})
			return
		}
		n := len(v.path)
		v.path = append(v.path, t.keys[cv.Option])
		v.value(t.types[cv.Option], cv.Value)
		v.path = v.path[:n]
	default:
		v.add(v.path, CodeInvalidSchema, fmt.Sprintf("unsupported type %T", t))
	}
}
