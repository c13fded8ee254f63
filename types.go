package tasl

import (
	"sort"
	"strings"

	"github.com/reoring/tasl/literal"
)

// Kind identifies one of the five variants shared by Type and Value.
type Kind int

const (
	KindReference Kind = iota // Pointer to an element of another label.
	KindURI                   // IRI-valued leaf.
	KindLiteral               // Lexical form of a named datatype.
	KindProduct               // Record with every component present.
	KindCoproduct             // Tagged union with exactly one option present.
)

func (k Kind) String() string {
	switch k {
	case KindReference:
		return "reference"
	case KindURI:
		return "uri"
	case KindLiteral:
		return "literal"
	case KindProduct:
		return "product"
	case KindCoproduct:
		return "coproduct"
	default:
		return "unknown"
	}
}

// Type is the closed sum of *Reference, *URI, *Literal, *Product and
// *Coproduct. Types are immutable once constructed and may be shared between
// schemas and goroutines.
type Type interface {
	Kind() Kind
	isType()
}

// Reference points at an element of the label named by Key.
type Reference struct{ key string }

// NewReference returns a Reference to the given schema key.
func NewReference(key string) *Reference { return &Reference{key: key} }

// Key returns the referenced schema key.
func (r *Reference) Key() string { return r.key }
func (*Reference) Kind() Kind    { return KindReference }
func (*Reference) isType()       {}

// URI is the type of IRI-valued leaves.
type URI struct{}

// NewURI returns the URI type.
func NewURI() *URI      { return &URI{} }
func (*URI) Kind() Kind { return KindURI }
func (*URI) isType()    {}

// Literal is a leaf holding the lexical form of a datatype.
type Literal struct {
	datatype string
	class    literal.Class
}

// NewLiteral returns a Literal with the given datatype IRI.
func NewLiteral(datatype string) *Literal {
	return &Literal{datatype: datatype, class: literal.ClassOf(datatype)}
}

// Datatype returns the datatype IRI.
func (l *Literal) Datatype() string { return l.datatype }

// Class returns the wire class resolved from the datatype at construction.
func (l *Literal) Class() literal.Class { return l.class }
func (*Literal) Kind() Kind             { return KindLiteral }
func (*Literal) isType()                {}

// fields is the canonical layout shared by Product and Coproduct: keys sorted
// ascending at construction time and never reordered afterwards.
type fields struct {
	keys  []string
	types []Type
}

func newFields(m map[string]Type) fields {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	types := make([]Type, len(keys))
	for i, k := range keys {
		types[i] = m[k]
	}
	return fields{keys: keys, types: types}
}

func (f *fields) rank(key string) (int, bool) {
	i := sort.SearchStrings(f.keys, key)
	if i < len(f.keys) && f.keys[i] == key {
		return i, true
	}
	return 0, false
}

// Product is a record type. Its components are laid out in ascending key
// order, which is both the in-memory order of a ProductValue and the order
// of the encoded fields.
type Product struct{ fields }

// NewProduct returns a Product over the given components.
func NewProduct(components map[string]Type) *Product {
	return &Product{fields: newFields(components)}
}

// Len returns the number of components.
func (p *Product) Len() int { return len(p.keys) }

// Keys returns a copy of the component keys in canonical order.
func (p *Product) Keys() []string { return append([]string(nil), p.keys...) }

// Key returns the key of the i-th component.
func (p *Product) Key(i int) string { return p.keys[i] }

// Component returns the type of the i-th component.
func (p *Product) Component(i int) Type { return p.types[i] }

// Rank returns the position of key in canonical order.
func (p *Product) Rank(key string) (int, bool) { return p.rank(key) }

// Lookup returns the type of the component named key.
func (p *Product) Lookup(key string) (Type, bool) {
	i, ok := p.rank(key)
	if !ok {
		return nil, false
	}
	return p.types[i], true
}

func (*Product) Kind() Kind { return KindProduct }
func (*Product) isType()    {}

// Coproduct is a tagged union. The rank of an option in ascending key order is
// its discriminant on the wire.
type Coproduct struct{ fields }

// NewCoproduct returns a Coproduct over the given options.
func NewCoproduct(options map[string]Type) *Coproduct {
	return &Coproduct{fields: newFields(options)}
}

// Len returns the number of options.
func (c *Coproduct) Len() int { return len(c.keys) }

// Keys returns a copy of the option keys in canonical order.
func (c *Coproduct) Keys() []string { return append([]string(nil), c.keys...) }

// Key returns the key of the i-th option.
func (c *Coproduct) Key(i int) string { return c.keys[i] }

// Option returns the type of the i-th option.
func (c *Coproduct) Option(i int) Type { return c.types[i] }

// Rank returns the discriminant of key.
func (c *Coproduct) Rank(key string) (int, bool) { return c.rank(key) }

// Lookup returns the type of the option named key.
func (c *Coproduct) Lookup(key string) (Type, bool) {
	i, ok := c.rank(key)
	if !ok {
		return nil, false
	}
	return c.types[i], true
}

func (*Coproduct) Kind() Kind { return KindCoproduct }
func (*Coproduct) isType()    {}

// TypeString renders t in a compact, deterministic notation for messages and
// debugging.
func TypeString(t Type) string {
	b := &strings.Builder{}
	writeType(b, t)
	return b.String()
}

func writeType(b *strings.Builder, t Type) {
	switch t := t.(type) {
	case *Reference:
		b.WriteString("* <")
		b.WriteString(t.key)
		b.WriteString(">")
	case *URI:
		b.WriteString("<>")
	case *Literal:
		b.WriteString("<")
		b.WriteString(t.datatype)
		b.WriteString(">")
	case *Product:
		b.WriteString("{")
		for i, k := range t.keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("<" + k + "> -> ")
			writeType(b, t.types[i])
		}
		b.WriteString("}")
	case *Coproduct:
		b.WriteString("[")
		for i, k := range t.keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("<" + k + "> <- ")
			writeType(b, t.types[i])
		}
		b.WriteString("]")
	default:
		b.WriteString("?")
	}
}
