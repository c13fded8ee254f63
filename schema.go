package tasl

import (
	"fmt"
	"sort"
)

// Schema maps label keys to types. Keys are kept in ascending byte-wise order;
// that order fixes the position of every label in the encoded form.
type Schema struct {
	keys  []string
	types []Type
}

// NewSchema builds a Schema and checks that it is closed: every type is
// non-nil and every Reference, at any depth, names a key of the schema.
func NewSchema(types map[string]Type) (*Schema, error) {
	f := newFields(types)
	s := &Schema{keys: f.keys, types: f.types}
	var iss Issues
	for i, k := range s.keys {
		iss = s.checkType(iss, []string{k}, s.types[i])
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return s, nil
}

// MustSchema is NewSchema for statically known schemas; it panics on error.
func MustSchema(types map[string]Type) *Schema {
	s, err := NewSchema(types)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) checkType(iss Issues, path []string, t Type) Issues {
	switch t := t.(type) {
	case nil:
		return append(iss, NewIssue(path, CodeInvalidSchema, "nil type"))
	case *Reference:
		if !s.Has(t.key) {
			return append(iss, NewIssue(path, CodeInvalidSchema, fmt.Sprintf("reference to undefined key %q", t.key)))
		}
	case *Product:
		for i, k := range t.keys {
			iss = s.checkType(iss, append(path[:len(path):len(path)], k), t.types[i])
		}
	case *Coproduct:
		for i, k := range t.keys {
			iss = s.checkType(iss, append(path[:len(path):len(path)], k), t.types[i])
		}
	}
	return iss
}

// Len returns the number of labels.
func (s *Schema) Len() int { return len(s.keys) }

// Keys returns a copy of the label keys in canonical order.
func (s *Schema) Keys() []string { return append([]string(nil), s.keys...) }

// Key returns the i-th label key in canonical order.
func (s *Schema) Key(i int) string { return s.keys[i] }

// TypeAt returns the type of the i-th label.
func (s *Schema) TypeAt(i int) Type { return s.types[i] }

// Rank returns the position of key in canonical order.
func (s *Schema) Rank(key string) (int, bool) {
	i := sort.SearchStrings(s.keys, key)
	if i < len(s.keys) && s.keys[i] == key {
		return i, true
	}
	return 0, false
}

// Has reports whether key is a label of s.
func (s *Schema) Has(key string) bool {
	_, ok := s.Rank(key)
	return ok
}

// Get returns the type of the label key.
func (s *Schema) Get(key string) (Type, bool) {
	i, ok := s.Rank(key)
	if !ok {
		return nil, false
	}
	return s.types[i], true
}
