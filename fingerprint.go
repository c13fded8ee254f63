package tasl

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a 64-bit digest of the schema structure: label keys,
// component and option keys, kinds, reference targets and datatypes.
// Structurally identical schemas share a fingerprint, so it can tag stored
// buffers with the schema needed to decode them.
func Fingerprint(s *Schema) uint64 {
	d := xxhash.New()
	var scratch []byte
	scratch = binary.AppendUvarint(scratch[:0], uint64(len(s.keys)))
	_, _ = d.Write(scratch)
	for i, k := range s.keys {
		scratch = appendString(scratch[:0], k)
		_, _ = d.Write(scratch)
		scratch = appendType(scratch[:0], s.types[i])
		_, _ = d.Write(scratch)
	}
	return d.Sum64()
}

func appendString(dst []byte, s string) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(s)))
	return append(dst, s...)
}

func appendType(dst []byte, t Type) []byte {
	dst = append(dst, byte(t.Kind()))
	switch t := t.(type) {
	case *Reference:
		dst = appendString(dst, t.key)
	case *Literal:
		dst = appendString(dst, t.datatype)
	case *Product:
		dst = appendFields(dst, &t.fields)
	case *Coproduct:
		dst = appendFields(dst, &t.fields)
	}
	return dst
}

func appendFields(dst []byte, f *fields) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(f.keys)))
	for i, k := range f.keys {
		dst = appendString(dst, k)
		dst = appendType(dst, f.types[i])
	}
	return dst
}
