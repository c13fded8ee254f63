// Package cborjson converts JSON lexical forms to and from deterministic CBOR.
// Encoding uses RFC 8949 core deterministic encoding (sorted map keys,
// smallest integer and float forms) so the same JSON value always produces
// the same bytes.
package cborjson

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"
	json "github.com/goccy/go-json"
)

var (
	// ErrMalformed reports JSON or CBOR input that cannot be converted.
	ErrMalformed = errors.New("cborjson: malformed input")
	// ErrRange reports a JSON number that has no finite binary form.
	ErrRange = errors.New("cborjson: number out of range")
)

const maxNesting = 512

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		MaxNestedLevels: maxNesting,
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
		IndefLength:     cbor.IndefLengthForbidden,
		BigIntDec:       cbor.BigIntDecodePointer,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// FromJSON parses a JSON text and returns its CBOR encoding.
func FromJSON(text string) ([]byte, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrMalformed)
	}
	nv, err := normalize(v, 0)
	if err != nil {
		return nil, err
	}
	b, err := encMode.Marshal(nv)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return b, nil
}

// ToJSON decodes CBOR produced by FromJSON and renders compact JSON with
// object keys in sorted order.
func ToJSON(data []byte) (string, error) {
	var v any
	if err := decMode.Unmarshal(data, &v); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	v, err := jsonValue(v, 0)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return string(b), nil
}

// normalize replaces json.Number with the narrowest Go number that CBOR can
// represent exactly: int64, then uint64, then a bignum for larger integers,
// then float64.
func normalize(v any, depth int) (any, error) {
	if depth > maxNesting {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrMalformed, maxNesting)
	}
	switch t := v.(type) {
	case json.Number:
		s := t.String()
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		}
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return u, nil
		}
		if b, ok := new(big.Int).SetString(s, 10); ok {
			return b, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %s", ErrRange, s)
		}
		return f, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			nv, err := normalize(vv, depth+1)
			if err != nil {
				return nil, err
			}
			out[k] = nv
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			nv, err := normalize(vv, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	default:
		return v, nil
	}
}

// jsonValue rejects CBOR items with no JSON counterpart and returns v with
// bignums as *big.Int, which marshals as a plain JSON number.
func jsonValue(v any, depth int) (any, error) {
	if depth > maxNesting {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrMalformed, maxNesting)
	}
	switch t := v.(type) {
	case nil, bool, string, int64, uint64, *big.Int:
		return v, nil
	case big.Int:
		return &t, nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, fmt.Errorf("%w: non-finite number", ErrMalformed)
		}
		return v, nil
	case map[string]any:
		for k, vv := range t {
			nv, err := jsonValue(vv, depth+1)
			if err != nil {
				return nil, err
			}
			t[k] = nv
		}
		return t, nil
	case []any:
		for i, vv := range t {
			nv, err := jsonValue(vv, depth+1)
			if err != nil {
				return nil, err
			}
			t[i] = nv
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%w: unexpected CBOR item %T", ErrMalformed, v)
	}
}
