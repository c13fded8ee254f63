package literal_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/reoring/tasl/literal"
)

func roundTrip(t *testing.T, datatype, lexical string) string {
	t.Helper()
	b, err := literal.Append(nil, datatype, lexical)
	if err != nil {
		t.Fatalf("append %s %q: %v", datatype, lexical, err)
	}
	got, n, err := literal.Decode(b, datatype)
	if err != nil {
		t.Fatalf("decode %s %q: %v", datatype, lexical, err)
	}
	if n != len(b) {
		t.Fatalf("decode %s %q consumed %d of %d bytes", datatype, lexical, n, len(b))
	}
	return got
}

func TestRoundTrip_CanonicalForms(t *testing.T) {
	cases := []struct {
		datatype string
		in       string
		want     string
	}{
		{literal.Boolean, "true", "true"},
		{literal.Boolean, "false", "false"},
		{literal.Integer, "0", "0"},
		{literal.Integer, "-42", "-42"},
		{literal.Integer, "+42", "42"},
		{literal.Integer, "123456789012345678901234567890", "123456789012345678901234567890"},
		{literal.Integer, "-123456789012345678901234567890", "-123456789012345678901234567890"},
		{literal.NonNegativeInteger, "18446744073709551616", "18446744073709551616"},
		{literal.Double, "3.14", "3.14"},
		{literal.Double, "-0.5", "-0.5"},
		{literal.Double, "INF", "INF"},
		{literal.Double, "-INF", "-INF"},
		{literal.Float, "1.5", "1.5"},
		{literal.Double, "0.000E-500", "0"},
		{literal.Double, "5e-324", "5e-324"},
		{literal.Long, "-9223372036854775808", "-9223372036854775808"},
		{literal.Int, "2147483647", "2147483647"},
		{literal.Short, "-32768", "-32768"},
		{literal.Byte, "127", "127"},
		{literal.Byte, "-128", "-128"},
		{literal.UnsignedLong, "18446744073709551615", "18446744073709551615"},
		{literal.UnsignedInt, "4294967295", "4294967295"},
		{literal.UnsignedShort, "65535", "65535"},
		{literal.UnsignedByte, "255", "255"},
		{literal.UnsignedByte, "-0", "0"},
		{literal.HexBinary, "deadBEEF", "DEADBEEF"},
		{literal.HexBinary, "", ""},
		{literal.Base64Binary, "aGVsbG8=", "aGVsbG8="},
		{literal.JSON, `{"b":[1,2],"a":null}`, `{"a":null,"b":[1,2]}`},
		{literal.String, "héllo wörld", "héllo wörld"},
		{literal.String, "", ""},
		{"http://example.com/custom", "anything", "anything"},
	}
	for _, tc := range cases {
		if got := roundTrip(t, tc.datatype, tc.in); got != tc.want {
			t.Fatalf("%s %q: got %q want %q", tc.datatype, tc.in, got, tc.want)
		}
	}
}

func TestByteBoundaries(t *testing.T) {
	for _, s := range []string{"127", "-128"} {
		if err := literal.Check(literal.Byte, s); err != nil {
			t.Fatalf("byte %s: %v", s, err)
		}
	}
	for _, s := range []string{"128", "-129"} {
		if err := literal.Check(literal.Byte, s); !errors.Is(err, literal.ErrRange) {
			t.Fatalf("byte %s: expected ErrRange, got %v", s, err)
		}
	}
}

func TestRangeErrors(t *testing.T) {
	cases := []struct{ datatype, in string }{
		{literal.UnsignedByte, "256"},
		{literal.UnsignedByte, "-1"},
		{literal.UnsignedLong, "18446744073709551616"},
		{literal.Short, "32768"},
		{literal.Int, "-2147483649"},
		{literal.Long, "9223372036854775808"},
		{literal.NonNegativeInteger, "-1"},
		{literal.Float, "1e39"},
		{literal.Double, "1e400"},
		{literal.Float, "1e-50"},
		{literal.Double, "1e-400"},
		{literal.Double, "-2.5E-400"},
	}
	for _, tc := range cases {
		if err := literal.Check(tc.datatype, tc.in); !errors.Is(err, literal.ErrRange) {
			t.Fatalf("%s %q: expected ErrRange, got %v", tc.datatype, tc.in, err)
		}
	}
}

func TestMalformed(t *testing.T) {
	cases := []struct{ datatype, in string }{
		{literal.Boolean, "1"},
		{literal.Boolean, "TRUE"},
		{literal.Integer, "12a"},
		{literal.Integer, ""},
		{literal.Int, "1.5"},
		{literal.UnsignedInt, "-x"},
		{literal.Double, "NaN"},
		{literal.Double, "nan"},
		{literal.Float, "Infinity"},
		{literal.Double, "0x1p-2"},
		{literal.Double, "abc"},
		{literal.HexBinary, "abc"},
		{literal.HexBinary, "zz"},
		{literal.Base64Binary, "***"},
		{literal.JSON, "{"},
		{literal.String, "\xff"},
	}
	for _, tc := range cases {
		if err := literal.Check(tc.datatype, tc.in); !errors.Is(err, literal.ErrMalformed) {
			t.Fatalf("%s %q: expected ErrMalformed, got %v", tc.datatype, tc.in, err)
		}
	}
}

func TestWireForms(t *testing.T) {
	cases := []struct {
		datatype string
		in       string
		want     []byte
	}{
		{literal.Boolean, "true", []byte{1}},
		{literal.Integer, "-1", []byte{0x01}},
		{literal.Integer, "1", []byte{0x02}},
		{literal.NonNegativeInteger, "300", []byte{0xac, 0x02}},
		{literal.Short, "-2", []byte{0xff, 0xfe}},
		{literal.UnsignedInt, "258", []byte{0, 0, 1, 2}},
		{literal.Double, "1", []byte{0x3f, 0xf0, 0, 0, 0, 0, 0, 0}},
		{literal.Float, "1", []byte{0x3f, 0x80, 0, 0}},
		{literal.HexBinary, "0aff", []byte{2, 0x0a, 0xff}},
		{literal.String, "ab", []byte{2, 'a', 'b'}},
	}
	for _, tc := range cases {
		got, err := literal.Append(nil, tc.datatype, tc.in)
		if err != nil {
			t.Fatalf("%s %q: %v", tc.datatype, tc.in, err)
		}
		if !bytes.Equal(got, tc.want) {
			t.Fatalf("%s %q: got % x want % x", tc.datatype, tc.in, got, tc.want)
		}
	}
}

func TestDecode_Truncated(t *testing.T) {
	cases := []struct {
		datatype string
		src      []byte
	}{
		{literal.Boolean, nil},
		{literal.Double, []byte{0x3f, 0xf0}},
		{literal.Long, []byte{1, 2, 3}},
		{literal.String, []byte{5, 'a'}},
		{literal.Integer, []byte{0x80, 0x80}},
	}
	for _, tc := range cases {
		if _, _, err := literal.Decode(tc.src, tc.datatype); !errors.Is(err, literal.ErrTruncated) {
			t.Fatalf("%s % x: expected ErrTruncated, got %v", tc.datatype, tc.src, err)
		}
	}
}

func TestDecode_RejectsInvalidWireValues(t *testing.T) {
	if _, _, err := literal.Decode([]byte{2}, literal.Boolean); !errors.Is(err, literal.ErrMalformed) {
		t.Fatalf("expected ErrMalformed for boolean byte 2, got %v", err)
	}
	nan := []byte{0x7f, 0xf8, 0, 0, 0, 0, 0, 1}
	if _, _, err := literal.Decode(nan, literal.Double); !errors.Is(err, literal.ErrMalformed) {
		t.Fatalf("expected ErrMalformed for NaN bits, got %v", err)
	}
	if _, _, err := literal.Decode([]byte{1, 0xff}, literal.String); !errors.Is(err, literal.ErrMalformed) {
		t.Fatalf("expected ErrMalformed for invalid UTF-8, got %v", err)
	}
}

func TestClassOf(t *testing.T) {
	if literal.ClassOf(literal.UnsignedShort) != literal.ClassUnsignedShort {
		t.Fatalf("unsignedShort resolved to %s", literal.ClassOf(literal.UnsignedShort))
	}
	if literal.ClassOf("urn:unknown") != literal.ClassString {
		t.Fatalf("unknown datatype should fall back to string")
	}
	if literal.ClassDouble.MinSize() != 8 || literal.ClassByte.MinSize() != 1 {
		t.Fatalf("unexpected MinSize")
	}
}

func TestCanonical(t *testing.T) {
	got, err := literal.Canonical(literal.Integer, "+007")
	if err != nil || got != "7" {
		t.Fatalf("got=%q err=%v", got, err)
	}
}
