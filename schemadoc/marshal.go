package schemadoc

import (
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/tasl"
)

// FromSchema converts s into its document form.
func FromSchema(s *tasl.Schema) Document {
	doc := make(Document, s.Len())
	for i := 0; i < s.Len(); i++ {
		doc[s.Key(i)] = nodeOf(s.TypeAt(i))
	}
	return doc
}

func nodeOf(t tasl.Type) *Node {
	switch t := t.(type) {
	case *tasl.Reference:
		return &Node{Kind: KindReference, Key: t.Key()}
	case *tasl.URI:
		return &Node{Kind: KindURI}
	case *tasl.Literal:
		return &Node{Kind: KindLiteral, Datatype: t.Datatype()}
	case *tasl.Product:
		n := &Node{Kind: KindProduct, Components: make(map[string]*Node, t.Len())}
		for i := 0; i < t.Len(); i++ {
			n.Components[t.Key(i)] = nodeOf(t.Component(i))
		}
		return n
	case *tasl.Coproduct:
		n := &Node{Kind: KindCoproduct, Options: make(map[string]*Node, t.Len())}
		for i := 0; i < t.Len(); i++ {
			n.Options[t.Key(i)] = nodeOf(t.Option(i))
		}
		return n
	}
	return nil
}

// MarshalJSON renders s as an indented JSON document with sorted keys.
func MarshalJSON(s *tasl.Schema) ([]byte, error) {
	return json.MarshalIndent(FromSchema(s), "", "  ")
}

// MarshalYAML renders s as a YAML document with sorted keys.
func MarshalYAML(s *tasl.Schema) ([]byte, error) {
	return yaml.Marshal(FromSchema(s))
}
