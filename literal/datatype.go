// Package literal maps the lexical forms of RDF literals to compact binary
// values and back, keyed by datatype IRI. Decoding returns the canonical
// lexical form, which may differ from the form that was encoded ("+01" for
// xsd:int decodes as "1").
package literal

// Namespaces for the datatype IRIs understood by this package.
const (
	XSD = "http://www.w3.org/2001/XMLSchema#"
	RDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
)

// Datatype IRIs with a dedicated binary form. Every other IRI is encoded as a
// UTF-8 string.
const (
	String             = XSD + "string"
	Boolean            = XSD + "boolean"
	Integer            = XSD + "integer"
	NonNegativeInteger = XSD + "nonNegativeInteger"
	Double             = XSD + "double"
	Float              = XSD + "float"
	Long               = XSD + "long"
	Int                = XSD + "int"
	Short              = XSD + "short"
	Byte               = XSD + "byte"
	UnsignedLong       = XSD + "unsignedLong"
	UnsignedInt        = XSD + "unsignedInt"
	UnsignedShort      = XSD + "unsignedShort"
	UnsignedByte       = XSD + "unsignedByte"
	HexBinary          = XSD + "hexBinary"
	Base64Binary       = XSD + "base64Binary"
	JSON               = RDF + "JSON"
)

// Class identifies the wire representation used for a datatype.
type Class int

const (
	ClassString Class = iota
	ClassBoolean
	ClassInteger
	ClassNonNegativeInteger
	ClassDouble
	ClassFloat
	ClassLong
	ClassInt
	ClassShort
	ClassByte
	ClassUnsignedLong
	ClassUnsignedInt
	ClassUnsignedShort
	ClassUnsignedByte
	ClassHexBinary
	ClassBase64Binary
	ClassJSON
)

var classes = map[string]Class{
	Boolean:            ClassBoolean,
	Integer:            ClassInteger,
	NonNegativeInteger: ClassNonNegativeInteger,
	Double:             ClassDouble,
	Float:              ClassFloat,
	Long:               ClassLong,
	Int:                ClassInt,
	Short:              ClassShort,
	Byte:               ClassByte,
	UnsignedLong:       ClassUnsignedLong,
	UnsignedInt:        ClassUnsignedInt,
	UnsignedShort:      ClassUnsignedShort,
	UnsignedByte:       ClassUnsignedByte,
	HexBinary:          ClassHexBinary,
	Base64Binary:       ClassBase64Binary,
	JSON:               ClassJSON,
}

// ClassOf resolves the wire class of a datatype IRI.
func ClassOf(datatype string) Class {
	if c, ok := classes[datatype]; ok {
		return c
	}
	return ClassString
}

func (c Class) String() string {
	switch c {
	case ClassBoolean:
		return "boolean"
	case ClassInteger:
		return "integer"
	case ClassNonNegativeInteger:
		return "nonNegativeInteger"
	case ClassDouble:
		return "double"
	case ClassFloat:
		return "float"
	case ClassLong:
		return "long"
	case ClassInt:
		return "int"
	case ClassShort:
		return "short"
	case ClassByte:
		return "byte"
	case ClassUnsignedLong:
		return "unsignedLong"
	case ClassUnsignedInt:
		return "unsignedInt"
	case ClassUnsignedShort:
		return "unsignedShort"
	case ClassUnsignedByte:
		return "unsignedByte"
	case ClassHexBinary:
		return "hexBinary"
	case ClassBase64Binary:
		return "base64Binary"
	case ClassJSON:
		return "JSON"
	default:
		return "string"
	}
}

// width reports the byte width of fixed-width integer classes, or 0.
func (c Class) width() int {
	switch c {
	case ClassLong, ClassUnsignedLong:
		return 8
	case ClassInt, ClassUnsignedInt:
		return 4
	case ClassShort, ClassUnsignedShort:
		return 2
	case ClassByte, ClassUnsignedByte:
		return 1
	default:
		return 0
	}
}

// MinSize reports the smallest number of bytes any value of class c occupies
// on the wire.
func (c Class) MinSize() int {
	switch c {
	case ClassDouble:
		return 8
	case ClassFloat:
		return 4
	}
	if w := c.width(); w > 0 {
		return w
	}
	return 1
}
