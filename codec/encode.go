package codec

import (
	"fmt"
	"sort"

	"github.com/reoring/tasl"
	"github.com/reoring/tasl/internal/wire"
	"github.com/reoring/tasl/literal"
)

type encoder struct {
	buf  []byte
	uris *uriTable
	path []string
}

// encodeInstance appends the URI table followed by every label in schema key
// order.
func (c *Codec) encodeInstance(dst []byte, s *tasl.Schema, inst tasl.Instance) ([]byte, error) {
	if s == nil {
		return nil, tasl.Fail(nil, tasl.CodeInvalidSchema, "nil schema")
	}
	if unknown := unknownLabels(s, inst); len(unknown) > 0 {
		return nil, tasl.Fail([]string{unknown[0]}, tasl.CodeSchemaMismatch, "label is not defined by the schema")
	}
	for i := 0; i < s.Len(); i++ {
		if err := c.checkCount([]string{s.Key(i)}, -1, s.TypeAt(i), len(inst[s.Key(i)])); err != nil {
			return nil, err
		}
	}
	table, err := buildURITable(s, inst)
	if err != nil {
		return nil, err
	}
	if c.opt.MaxURIs > 0 && len(table.entries) > c.opt.MaxURIs {
		return nil, limitExceeded([]string{"uris"}, -1, "URIs", len(table.entries), c.opt.MaxURIs)
	}

	e := &encoder{buf: table.appendTo(dst), uris: table}
	for i := 0; i < s.Len(); i++ {
		k := s.Key(i)
		t := s.TypeAt(i)
		vs := inst[k]
		e.buf = wire.AppendUvarint(e.buf, uint64(len(vs)))
		for j, v := range vs {
			e.path = append(e.path[:0], k, tasl.IndexSegment(j))
			if err := e.value(t, v); err != nil {
				return nil, err
			}
		}
	}
	return e.buf, nil
}

func unknownLabels(s *tasl.Schema, inst tasl.Instance) []string {
	var out []string
	for k := range inst {
		if !s.Has(k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func (e *encoder) value(t tasl.Type, v tasl.Value) error {
	switch t := t.(type) {
	case *tasl.Reference:
		rv, ok := v.(tasl.ReferenceValue)
		if !ok {
			return mismatch(e.path, t, v)
		}
		if rv.Index < 0 {
			return tasl.Fail(e.path, tasl.CodeOutOfRange, fmt.Sprintf("negative reference index %d", rv.Index))
		}
		e.buf = wire.AppendUvarint(e.buf, uint64(rv.Index))
	case *tasl.URI:
		uv, ok := v.(tasl.URIValue)
		if !ok {
			return mismatch(e.path, t, v)
		}
		e.buf = wire.AppendUvarint(e.buf, uint64(e.uris.rank[uv.Value]))
	case *tasl.Literal:
		lv, ok := v.(tasl.LiteralValue)
		if !ok {
			return mismatch(e.path, t, v)
		}
		b, err := literal.AppendClass(e.buf, t.Class(), lv.Value)
		if err != nil {
			return literalIssue(e.path, -1, err)
		}
		e.buf = b
	case *tasl.Product:
		pv, ok := v.(tasl.ProductValue)
		if !ok {
			return mismatch(e.path, t, v)
		}
		if len(pv) != t.Len() {
			return arity(e.path, t, pv)
		}
		for i := range pv {
			n := len(e.path)
			e.path = append(e.path, t.Key(i))
			if err := e.value(t.Component(i), pv[i]); err != nil {
				return err
			}
			e.path = e.path[:n]
		}
	case *tasl.Coproduct:
		cv, ok := v.(tasl.CoproductValue)
		if !ok {
			return mismatch(e.path, t, v)
		}
		if cv.Option < 0 || cv.Option >= t.Len() {
			return optionRange(e.path, -1, t, cv.Option)
		}
		e.buf = wire.AppendUvarint(e.buf, uint64(cv.Option))
		n := len(e.path)
		e.path = append(e.path, t.Key(cv.Option))
		if err := e.value(t.Option(cv.Option), cv.Value); err != nil {
			return err
		}
		e.path = e.path[:n]
	default:
		return tasl.Fail(e.path, tasl.CodeInvalidSchema, fmt.Sprintf("unsupported type %T", t))
	}
	return nil
}
