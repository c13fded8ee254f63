package codec

import (
	"fmt"

	"github.com/reoring/tasl"
	"github.com/reoring/tasl/internal/wire"
	"github.com/reoring/tasl/literal"
)

type decoder struct {
	r    *wire.Reader
	uris []string
	path []string
}

// decodeInstance reads one instance from the front of data and reports how
// many bytes it consumed.
func (c *Codec) decodeInstance(s *tasl.Schema, data []byte) (tasl.Instance, int, error) {
	if s == nil {
		return nil, 0, tasl.Fail(nil, tasl.CodeInvalidSchema, "nil schema")
	}
	r := wire.NewReader(data)
	uris, err := readURITable(r, c.opt.MaxURIs)
	if err != nil {
		return nil, 0, err
	}
	d := &decoder{r: r, uris: uris}
	inst := make(tasl.Instance, s.Len())
	for i := 0; i < s.Len(); i++ {
		k := s.Key(i)
		t := s.TypeAt(i)
		d.path = append(d.path[:0], k)
		at := r.Offset()
		n, err := r.Int()
		if err != nil {
			return nil, 0, wireIssue(d.path, r, err)
		}
		if err := c.checkCount(d.path, at, t, n); err != nil {
			return nil, 0, err
		}
		if ms := minSize(t); ms > 0 && n > r.Len()/ms {
			return nil, 0, issueAt(d.path, r.Offset(), tasl.CodeTruncated, fmt.Sprintf("%d values cannot fit in %d bytes", n, r.Len()))
		}
		vs := make([]tasl.Value, n)
		for j := range vs {
			d.path = append(d.path[:1], tasl.IndexSegment(j))
			v, err := d.value(t)
			if err != nil {
				return nil, 0, err
			}
			vs[j] = v
		}
		inst[k] = vs
	}
	return inst, r.Offset(), nil
}

func (d *decoder) value(t tasl.Type) (tasl.Value, error) {
	switch t := t.(type) {
	case *tasl.Reference:
		n, err := d.r.Int()
		if err != nil {
			return nil, wireIssue(d.path, d.r, err)
		}
		return tasl.ReferenceValue{Index: n}, nil
	case *tasl.URI:
		at := d.r.Offset()
		n, err := d.r.Int()
		if err != nil {
			return nil, wireIssue(d.path, d.r, err)
		}
		if n >= len(d.uris) {
			return nil, issueParams(d.path, at, tasl.CodeOutOfRange, fmt.Sprintf("URI rank %d outside table of %d", n, len(d.uris)),
				map[string]any{"index": n, "len": len(d.uris)})
		}
		return tasl.URIValue{Value: d.uris[n]}, nil
	case *tasl.Literal:
		at := d.r.Offset()
		s, err := literal.ReadClass(d.r, t.Class())
		if err != nil {
			return nil, literalIssue(d.path, at, err)
		}
		return tasl.LiteralValue{Value: s}, nil
	case *tasl.Product:
		pv := make(tasl.ProductValue, t.Len())
		for i := range pv {
			n := len(d.path)
			d.path = append(d.path, t.Key(i))
			v, err := d.value(t.Component(i))
			if err != nil {
				return nil, err
			}
			pv[i] = v
			d.path = d.path[:n]
		}
		return pv, nil
	case *tasl.Coproduct:
		at := d.r.Offset()
		opt, err := d.r.Int()
		if err != nil {
			return nil, wireIssue(d.path, d.r, err)
		}
		if opt >= t.Len() {
			return nil, optionRange(d.path, at, t, opt)
		}
		n := len(d.path)
		d.path = append(d.path, t.Key(opt))
		v, err := d.value(t.Option(opt))
		if err != nil {
			return nil, err
		}
		d.path = d.path[:n]
		return tasl.CoproductValue{Option: opt, Value: v}, nil
	default:
		return nil, tasl.Fail(d.path, tasl.CodeInvalidSchema, fmt.Sprintf("unsupported type %T", t))
	}
}

// maxZeroWidth bounds labels whose elements occupy no bytes when MaxValues
// is unset, since the buffer length cannot bound them.
const maxZeroWidth = 1 << 20

// checkCount applies MaxValues to a label of n values, or maxZeroWidth when
// MaxValues is unset. Encode and decode share it so that every buffer the
// encoder writes is accepted by the decoder.
func (c *Codec) checkCount(path []string, off int, t tasl.Type, n int) error {
	if c.opt.MaxValues > 0 {
		if n > c.opt.MaxValues {
			return limitExceeded(path, off, "values", n, c.opt.MaxValues)
		}
		return nil
	}
	if n > maxZeroWidth && minSize(t) == 0 {
		return limitExceeded(path, off, "zero-width values", n, maxZeroWidth)
	}
	return nil
}

// minSize is the fewest bytes any value of t can occupy. Products of zero
// components encode to nothing.
func minSize(t tasl.Type) int {
	switch t := t.(type) {
	case *tasl.Literal:
		return t.Class().MinSize()
	case *tasl.Product:
		n := 0
		for i := 0; i < t.Len(); i++ {
			n += minSize(t.Component(i))
		}
		return n
	default:
		return 1
	}
}
