// Package tasl provides:
//
// - A closed algebra of graph types: Reference, URI, Literal, Product (record) and Coproduct (tagged union)
// - Schemas mapping label keys (RDF class names) to types, with a canonical key order
// - Instances holding, per label, an ordered array of values that mirror the types
// - A stable error model via Issues (JSON Pointer, code, message) shared by every package
// - A collecting structural validator and a schema fingerprint
//
// Design policy:
// - Keep the data model in the root package; the binary format lives under codec/, datatypes under literal/.
// - Types are immutable after construction. Product and Coproduct sort their keys once, in their
//   constructor; that order is the in-memory layout of a ProductValue and the wire position of every field.
// - Schema documents (JSON/YAML) live under schemadoc/, persistence under store/.
//
// Typical usage:
//
//	person := tasl.NewProduct(map[string]tasl.Type{
//		"ex:name":  tasl.NewLiteral(literal.String),
//		"ex:knows": tasl.NewReference("ex:Person"),
//	})
//	s, err := tasl.NewSchema(map[string]tasl.Type{"ex:Person": person})
//
//	inst := tasl.Instance{"ex:Person": {
//		tasl.ProductValue{tasl.ReferenceValue{Index: 1}, tasl.LiteralValue{Value: "Alice"}},
//		tasl.ProductValue{tasl.ReferenceValue{Index: 0}, tasl.LiteralValue{Value: "Bob"}},
//	}}
//	data, err := codec.Encode(s, inst)
//	back, err := codec.Decode(s, data)
package tasl
