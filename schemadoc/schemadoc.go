// Package schemadoc reads and writes schemas as JSON or YAML documents.
//
// A document maps each label key to a type node:
//
//	{
//	  "ex:Person": {
//	    "kind": "product",
//	    "components": {
//	      "ex:name":  {"kind": "literal", "datatype": "http://www.w3.org/2001/XMLSchema#string"},
//	      "ex:knows": {"kind": "reference", "key": "ex:Person"}
//	    }
//	  }
//	}
//
// Nodes carry only the fields of their kind. Unknown fields are rejected.
package schemadoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/tasl"
)

// Node kinds as they appear in documents.
const (
	KindReference = "reference"
	KindURI       = "uri"
	KindLiteral   = "literal"
	KindProduct   = "product"
	KindCoproduct = "coproduct"
)

// Node is the document form of a tasl.Type.
type Node struct {
	Kind       string           `json:"kind" yaml:"kind"`
	Key        string           `json:"key,omitempty" yaml:"key,omitempty"`
	Datatype   string           `json:"datatype,omitempty" yaml:"datatype,omitempty"`
	Components map[string]*Node `json:"components,omitempty" yaml:"components,omitempty"`
	Options    map[string]*Node `json:"options,omitempty" yaml:"options,omitempty"`
}

// Document maps label keys to type nodes.
type Document map[string]*Node

// ParseJSON builds a schema from a JSON document.
func ParseJSON(data []byte) (*tasl.Schema, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, syntaxIssue(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, tasl.Fail(nil, tasl.CodeInvalidSchema, "trailing data after document")
	}
	if dups := duplicateKeys(data); len(dups) > 0 {
		return nil, dups
	}
	return doc.Schema()
}

// ParseYAML builds a schema from a YAML document. Only the first document of
// a stream is read.
func ParseYAML(data []byte) (*tasl.Schema, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, tasl.Fail(nil, tasl.CodeInvalidSchema, "empty document")
		}
		return nil, syntaxIssue(err)
	}
	return doc.Schema()
}

func syntaxIssue(err error) error {
	is := tasl.NewIssue(nil, tasl.CodeInvalidSchema, err.Error())
	is.Cause = err
	return tasl.Issues{is}
}

// Schema converts the document into a schema, reporting every malformed node.
func (d Document) Schema() (*tasl.Schema, error) {
	var iss tasl.Issues
	types := make(map[string]tasl.Type, len(d))
	for _, k := range sortedKeys(d) {
		t, more := d[k].typ([]string{k})
		iss = append(iss, more...)
		types[k] = t
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return tasl.NewSchema(types)
}

func (n *Node) typ(path []string) (tasl.Type, tasl.Issues) {
	if n == nil {
		return nil, tasl.Issues{tasl.NewIssue(path, tasl.CodeInvalidSchema, "null node")}
	}
	var iss tasl.Issues
	bad := func(hint string) { iss = append(iss, tasl.NewIssue(path, tasl.CodeInvalidSchema, hint)) }
	unexpected := func(field string, set bool) {
		if set {
			bad(fmt.Sprintf("%q is not allowed on a %s node", field, n.Kind))
		}
	}
	switch n.Kind {
	case KindReference:
		unexpected("datatype", n.Datatype != "")
		unexpected("components", n.Components != nil)
		unexpected("options", n.Options != nil)
		if n.Key == "" {
			bad("reference node needs a key")
		}
		return tasl.NewReference(n.Key), iss
	case KindURI:
		unexpected("key", n.Key != "")
		unexpected("datatype", n.Datatype != "")
		unexpected("components", n.Components != nil)
		unexpected("options", n.Options != nil)
		return tasl.NewURI(), iss
	case KindLiteral:
		unexpected("key", n.Key != "")
		unexpected("components", n.Components != nil)
		unexpected("options", n.Options != nil)
		if n.Datatype == "" {
			bad("literal node needs a datatype")
		}
		return tasl.NewLiteral(n.Datatype), iss
	case KindProduct:
		unexpected("key", n.Key != "")
		unexpected("datatype", n.Datatype != "")
		unexpected("options", n.Options != nil)
		fields, more := children(path, n.Components)
		return tasl.NewProduct(fields), append(iss, more...)
	case KindCoproduct:
		unexpected("key", n.Key != "")
		unexpected("datatype", n.Datatype != "")
		unexpected("components", n.Components != nil)
		fields, more := children(path, n.Options)
		return tasl.NewCoproduct(fields), append(iss, more...)
	case "":
		bad("missing kind")
	default:
		bad(fmt.Sprintf("unknown kind %q", n.Kind))
	}
	return nil, iss
}

func children(path []string, nodes map[string]*Node) (map[string]tasl.Type, tasl.Issues) {
	var iss tasl.Issues
	out := make(map[string]tasl.Type, len(nodes))
	for _, k := range sortedKeys(nodes) {
		t, more := nodes[k].typ(append(path[:len(path):len(path)], k))
		iss = append(iss, more...)
		out[k] = t
	}
	return out, iss
}

func sortedKeys(m map[string]*Node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
