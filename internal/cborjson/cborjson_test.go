package cborjson

import (
	"bytes"
	"errors"
	"testing"
)

func TestRoundTrip_Canonical(t *testing.T) {
	cases := map[string]string{
		`{"b": 1, "a": [true, null, "x"]}`: `{"a":[true,null,"x"],"b":1}`,
		`  42 `:                            `42`,
		`-7`:                               `-7`,
		`1.5`:                              `1.5`,
		`"héllo"`:                          `"héllo"`,
		`[]`:                               `[]`,
		`{}`:                               `{}`,
		`18446744073709551615`:             `18446744073709551615`,
		`12345678901234567890123`:          `12345678901234567890123`,
		`{"n": -12345678901234567890123}`:  `{"n":-12345678901234567890123}`,
	}
	for in, want := range cases {
		b, err := FromJSON(in)
		if err != nil {
			t.Fatalf("FromJSON(%q): %v", in, err)
		}
		got, err := ToJSON(b)
		if err != nil {
			t.Fatalf("ToJSON(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("round trip %q: got %q want %q", in, got, want)
		}
	}
}

func TestFromJSON_Deterministic(t *testing.T) {
	a, err := FromJSON(`{"z":1,"y":{"b":2,"a":3}}`)
	if err != nil {
		t.Fatal(err)
	}
	b, err := FromJSON(`{"y":{"a":3,"b":2},"z":1}`)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("key order changed the encoding: % x vs % x", a, b)
	}
}

func TestFromJSON_Malformed(t *testing.T) {
	for _, in := range []string{``, `{`, `{"a":}`, `1 2`, `tru`} {
		if _, err := FromJSON(in); !errors.Is(err, ErrMalformed) {
			t.Fatalf("FromJSON(%q): expected ErrMalformed, got %v", in, err)
		}
	}
}

func TestFromJSON_NumberOutOfRange(t *testing.T) {
	if _, err := FromJSON(`1e999`); !errors.Is(err, ErrRange) {
		t.Fatalf("expected ErrRange, got %v", err)
	}
}

func TestToJSON_RejectsForeignItems(t *testing.T) {
	// 0x41 0x00: a one-byte CBOR byte string, which JSON cannot express.
	if _, err := ToJSON([]byte{0x41, 0x00}); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if _, err := ToJSON([]byte{0xff}); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for invalid CBOR, got %v", err)
	}
}

func TestFromJSON_BigIntegerIsBignum(t *testing.T) {
	b, err := FromJSON(`18446744073709551616`)
	if err != nil {
		t.Fatal(err)
	}
	// tag 2 (0xc2) followed by the 9-byte magnitude 0x01 00..00
	want := []byte{0xc2, 0x49, 0x01, 0, 0, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(b, want) {
		t.Fatalf("got % x want % x", b, want)
	}
}

func TestToJSON_RejectsForeignTags(t *testing.T) {
	// tag 1 (epoch time) around the integer 0
	if _, err := ToJSON([]byte{0xc1, 0x00}); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}
