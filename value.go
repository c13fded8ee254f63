package tasl

// Value is the closed sum of ReferenceValue, URIValue, LiteralValue,
// ProductValue and CoproductValue. Each variant pairs with the Type of the
// same Kind.
type Value interface {
	Kind() Kind
	isValue()
}

// ReferenceValue addresses instance[key][Index] where key is the target of the
// Reference type.
type ReferenceValue struct{ Index int }

// URIValue is an IRI leaf.
type URIValue struct{ Value string }

// LiteralValue carries a lexical form; its datatype comes from the type.
type LiteralValue struct{ Value string }

// ProductValue holds one value per component, in the canonical component
// order of its Product type.
type ProductValue []Value

// CoproductValue selects the option with rank Option and carries its payload.
type CoproductValue struct {
	Option int
	Value  Value
}

func (ReferenceValue) Kind() Kind { return KindReference }
func (URIValue) Kind() Kind       { return KindURI }
func (LiteralValue) Kind() Kind   { return KindLiteral }
func (ProductValue) Kind() Kind   { return KindProduct }
func (CoproductValue) Kind() Kind { return KindCoproduct }

func (ReferenceValue) isValue() {}
func (URIValue) isValue()       {}
func (LiteralValue) isValue()   {}
func (ProductValue) isValue()   {}
func (CoproductValue) isValue() {}

// Instance maps each schema key to the ordered elements of that label.
type Instance map[string][]Value

// Count returns the total number of top-level elements across all labels.
func (inst Instance) Count() int {
	n := 0
	for _, vs := range inst {
		n += len(vs)
	}
	return n
}

// Equal reports whether a and b hold structurally equal elements for every
// label. A label that is absent compares equal to an empty label.
func Equal(a, b Instance) bool {
	for k, av := range a {
		if !valuesEqual(av, b[k]) {
			return false
		}
	}
	for k, bv := range b {
		if _, ok := a[k]; !ok && len(bv) > 0 {
			return false
		}
	}
	return true
}

func valuesEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !ValueEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// ValueEqual reports whether a and b are structurally equal.
func ValueEqual(a, b Value) bool {
	switch a := a.(type) {
	case ReferenceValue:
		bv, ok := b.(ReferenceValue)
		return ok && a.Index == bv.Index
	case URIValue:
		bv, ok := b.(URIValue)
		return ok && a.Value == bv.Value
	case LiteralValue:
		bv, ok := b.(LiteralValue)
		return ok && a.Value == bv.Value
	case ProductValue:
		bv, ok := b.(ProductValue)
		return ok && valuesEqual(a, bv)
	case CoproductValue:
		bv, ok := b.(CoproductValue)
		return ok && a.Option == bv.Option && ValueEqual(a.Value, bv.Value)
	case nil:
		return b == nil
	default:
		return false
	}
}
