package codec

import (
	"fmt"
	"sort"

	"github.com/reoring/tasl"
	"github.com/reoring/tasl/internal/wire"
)

// URITableFrontCoded names the only URI table layout this package reads and
// writes: a varint entry count followed, for each URI in ascending byte-wise
// order, by (prefixLen, suffixLen, suffix) where prefixLen is the number of
// leading bytes shared with the previous entry. The uncompressed
// length-prefixed layout is not supported; buffers in the two layouts are not
// interchangeable.
const URITableFrontCoded = "front-coded"

// uriTable is the sorted, deduplicated set of URI leaves of one instance.
type uriTable struct {
	entries []string
	rank    map[string]int
}

// buildURITable walks every value guided by its type and collects the URI
// leaves. It descends into product components and coproduct payloads and
// never follows references, so the walk is linear in the instance size.
func buildURITable(s *tasl.Schema, inst tasl.Instance) (*uriTable, error) {
	w := &uriWalker{seen: map[string]struct{}{}}
	for i := 0; i < s.Len(); i++ {
		k := s.Key(i)
		t := s.TypeAt(i)
		for j, v := range inst[k] {
			w.path = append(w.path[:0], k, tasl.IndexSegment(j))
			if err := w.walk(t, v); err != nil {
				return nil, err
			}
		}
	}
	entries := make([]string, 0, len(w.seen))
	for u := range w.seen {
		entries = append(entries, u)
	}
	sort.Strings(entries)
	rank := make(map[string]int, len(entries))
	for i, u := range entries {
		rank[u] = i
	}
	return &uriTable{entries: entries, rank: rank}, nil
}

type uriWalker struct {
	seen map[string]struct{}
	path []string
}

func (w *uriWalker) walk(t tasl.Type, v tasl.Value) error {
	switch t := t.(type) {
	case *tasl.URI:
		uv, ok := v.(tasl.URIValue)
		if !ok {
			return mismatch(w.path, t, v)
		}
		w.seen[uv.Value] = struct{}{}
	case *tasl.Product:
		pv, ok := v.(tasl.ProductValue)
		if !ok {
			return mismatch(w.path, t, v)
		}
		if len(pv) != t.Len() {
			return arity(w.path, t, pv)
		}
		for i := range pv {
			n := len(w.path)
			w.path = append(w.path, t.Key(i))
			if err := w.walk(t.Component(i), pv[i]); err != nil {
				return err
			}
			w.path = w.path[:n]
		}
	case *tasl.Coproduct:
		cv, ok := v.(tasl.CoproductValue)
		if !ok {
			return mismatch(w.path, t, v)
		}
		if cv.Option < 0 || cv.Option >= t.Len() {
			return optionRange(w.path, -1, t, cv.Option)
		}
		n := len(w.path)
		w.path = append(w.path, t.Key(cv.Option))
		if err := w.walk(t.Option(cv.Option), cv.Value); err != nil {
			return err
		}
		w.path = w.path[:n]
	}
	// References and literals hold no URI leaves; their kinds are checked
	// by the encoder.
	return nil
}

// appendTo writes the front-coded table.
func (t *uriTable) appendTo(dst []byte) []byte {
	dst = wire.AppendUvarint(dst, uint64(len(t.entries)))
	prev := ""
	for _, u := range t.entries {
		p := commonPrefix(prev, u)
		dst = wire.AppendUvarint(dst, uint64(p))
		dst = wire.AppendString(dst, u[p:])
		prev = u
	}
	return dst
}

func commonPrefix(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// readURITable reconstructs the table written by appendTo.
func readURITable(r *wire.Reader, maxURIs int) ([]string, error) {
	path := []string{"uris"}
	start := r.Offset()
	n, err := r.Int()
	if err != nil {
		return nil, wireIssue(path, r, err)
	}
	if maxURIs > 0 && n > maxURIs {
		return nil, limitExceeded(path, start, "URIs", n, maxURIs)
	}
	// every entry takes at least two bytes
	if n > r.Len()/2 {
		return nil, issueAt(path, r.Offset(), tasl.CodeTruncated, fmt.Sprintf("%d URIs cannot fit in %d bytes", n, r.Len()))
	}
	entries := make([]string, 0, n)
	prev := ""
	for i := 0; i < n; i++ {
		ipath := []string{"uris", tasl.IndexSegment(i)}
		at := r.Offset()
		p, err := r.Int()
		if err != nil {
			return nil, wireIssue(ipath, r, err)
		}
		if p > len(prev) {
			return nil, issueAt(ipath, at, tasl.CodeOutOfRange, fmt.Sprintf("prefix length %d exceeds previous entry length %d", p, len(prev)))
		}
		suffix, err := r.Bytes()
		if err != nil {
			return nil, wireIssue(ipath, r, err)
		}
		u := prev[:p] + string(suffix)
		if i > 0 && u <= prev {
			return nil, issueAt(ipath, at, tasl.CodeOutOfRange, "URI table is not strictly ascending")
		}
		entries = append(entries, u)
		prev = u
	}
	return entries, nil
}
