package literal

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/reoring/tasl/internal/cborjson"
	"github.com/reoring/tasl/internal/wire"
)

// Sentinel errors. Every error returned by this package wraps exactly one of
// them.
var (
	// ErrRange reports a numeric value outside the range of its datatype.
	ErrRange = errors.New("literal: value out of range")
	// ErrMalformed reports a lexical form or wire value that cannot be parsed.
	ErrMalformed = errors.New("literal: malformed value")
	// ErrTruncated reports a wire value that runs past the end of the input.
	ErrTruncated = errors.New("literal: truncated input")
)

// Append encodes the lexical form of a literal of the given datatype and
// appends it to dst.
func Append(dst []byte, datatype, lexical string) ([]byte, error) {
	return AppendClass(dst, ClassOf(datatype), lexical)
}

// Decode reads one literal of the given datatype from the start of src. It
// returns the canonical lexical form and the number of bytes consumed.
func Decode(src []byte, datatype string) (string, int, error) {
	r := wire.NewReader(src)
	s, err := ReadClass(r, ClassOf(datatype))
	if err != nil {
		return "", 0, err
	}
	return s, r.Offset(), nil
}

// Check reports whether lexical is a valid lexical form for datatype.
func Check(datatype, lexical string) error {
	_, err := Append(nil, datatype, lexical)
	return err
}

// Canonical returns the lexical form a round trip through the wire format
// produces for lexical.
func Canonical(datatype, lexical string) (string, error) {
	b, err := Append(nil, datatype, lexical)
	if err != nil {
		return "", err
	}
	s, _, err := Decode(b, datatype)
	return s, err
}

// AppendClass is Append with the datatype already resolved to its class.
func AppendClass(dst []byte, c Class, lexical string) ([]byte, error) {
	switch c {
	case ClassBoolean:
		switch lexical {
		case "true":
			return append(dst, 1), nil
		case "false":
			return append(dst, 0), nil
		}
		return nil, malformed(c, lexical)
	case ClassInteger:
		n, ok := new(big.Int).SetString(lexical, 10)
		if !ok {
			return nil, malformed(c, lexical)
		}
		return wire.AppendBigVarint(dst, n), nil
	case ClassNonNegativeInteger:
		n, ok := new(big.Int).SetString(lexical, 10)
		if !ok {
			return nil, malformed(c, lexical)
		}
		if n.Sign() < 0 {
			return nil, outOfRange(c, lexical)
		}
		return wire.AppendBigUvarint(dst, n), nil
	case ClassDouble:
		f, err := parseFloat(c, lexical, 64)
		if err != nil {
			return nil, err
		}
		return binary.BigEndian.AppendUint64(dst, math.Float64bits(f)), nil
	case ClassFloat:
		f, err := parseFloat(c, lexical, 32)
		if err != nil {
			return nil, err
		}
		return binary.BigEndian.AppendUint32(dst, math.Float32bits(float32(f))), nil
	case ClassLong, ClassInt, ClassShort, ClassByte:
		w := c.width()
		n, err := strconv.ParseInt(lexical, 10, w*8)
		if err != nil {
			return nil, numError(c, lexical, err)
		}
		return appendFixed(dst, uint64(n), w), nil
	case ClassUnsignedLong, ClassUnsignedInt, ClassUnsignedShort, ClassUnsignedByte:
		w := c.width()
		if strings.HasPrefix(lexical, "-") {
			// "-0" is a valid lexical form of zero.
			if n, err := strconv.ParseInt(lexical, 10, 64); err == nil && n == 0 {
				return appendFixed(dst, 0, w), nil
			} else if err == nil || errors.Is(err, strconv.ErrRange) {
				return nil, outOfRange(c, lexical)
			}
			return nil, malformed(c, lexical)
		}
		n, err := strconv.ParseUint(strings.TrimPrefix(lexical, "+"), 10, w*8)
		if err != nil {
			return nil, numError(c, lexical, err)
		}
		return appendFixed(dst, n, w), nil
	case ClassHexBinary:
		b, err := hex.DecodeString(lexical)
		if err != nil {
			return nil, fmt.Errorf("%w: hexBinary %q: %v", ErrMalformed, lexical, err)
		}
		return wire.AppendBytes(dst, b), nil
	case ClassBase64Binary:
		b, err := base64.StdEncoding.DecodeString(lexical)
		if err != nil {
			return nil, fmt.Errorf("%w: base64Binary %q: %v", ErrMalformed, lexical, err)
		}
		return wire.AppendBytes(dst, b), nil
	case ClassJSON:
		b, err := cborjson.FromJSON(lexical)
		if err != nil {
			return nil, jsonError(err)
		}
		return wire.AppendBytes(dst, b), nil
	default:
		if !utf8.ValidString(lexical) {
			return nil, fmt.Errorf("%w: string is not valid UTF-8", ErrMalformed)
		}
		return wire.AppendString(dst, lexical), nil
	}
}

// ReadClass reads one literal of class c from r and returns its canonical
// lexical form.
func ReadClass(r *wire.Reader, c Class) (string, error) {
	switch c {
	case ClassBoolean:
		b, err := r.Byte()
		if err != nil {
			return "", wireError(err)
		}
		switch b {
		case 0:
			return "false", nil
		case 1:
			return "true", nil
		}
		return "", fmt.Errorf("%w: boolean byte 0x%02x", ErrMalformed, b)
	case ClassInteger:
		n, err := r.BigVarint()
		if err != nil {
			return "", wireError(err)
		}
		return n.String(), nil
	case ClassNonNegativeInteger:
		n, err := r.BigUvarint()
		if err != nil {
			return "", wireError(err)
		}
		return n.String(), nil
	case ClassDouble:
		b, err := r.Next(8)
		if err != nil {
			return "", wireError(err)
		}
		return formatFloat(math.Float64frombits(binary.BigEndian.Uint64(b)), 64)
	case ClassFloat:
		b, err := r.Next(4)
		if err != nil {
			return "", wireError(err)
		}
		return formatFloat(float64(math.Float32frombits(binary.BigEndian.Uint32(b))), 32)
	case ClassLong, ClassInt, ClassShort, ClassByte:
		w := c.width()
		b, err := r.Next(w)
		if err != nil {
			return "", wireError(err)
		}
		// sign-extend from the declared width
		shift := uint(64 - 8*w)
		n := int64(readFixed(b)<<shift) >> shift
		return strconv.FormatInt(n, 10), nil
	case ClassUnsignedLong, ClassUnsignedInt, ClassUnsignedShort, ClassUnsignedByte:
		b, err := r.Next(c.width())
		if err != nil {
			return "", wireError(err)
		}
		return strconv.FormatUint(readFixed(b), 10), nil
	case ClassHexBinary:
		b, err := r.Bytes()
		if err != nil {
			return "", wireError(err)
		}
		return strings.ToUpper(hex.EncodeToString(b)), nil
	case ClassBase64Binary:
		b, err := r.Bytes()
		if err != nil {
			return "", wireError(err)
		}
		return base64.StdEncoding.EncodeToString(b), nil
	case ClassJSON:
		b, err := r.Bytes()
		if err != nil {
			return "", wireError(err)
		}
		s, err := cborjson.ToJSON(b)
		if err != nil {
			return "", jsonError(err)
		}
		return s, nil
	default:
		b, err := r.Bytes()
		if err != nil {
			return "", wireError(err)
		}
		if !utf8.Valid(b) {
			return "", fmt.Errorf("%w: string is not valid UTF-8", ErrMalformed)
		}
		return string(b), nil
	}
}

func appendFixed(dst []byte, x uint64, w int) []byte {
	for i := w - 1; i >= 0; i-- {
		dst = append(dst, byte(x>>(8*uint(i))))
	}
	return dst
}

func readFixed(b []byte) uint64 {
	var x uint64
	for _, c := range b {
		x = x<<8 | uint64(c)
	}
	return x
}

// parseFloat accepts decimal and exponent notation plus the XSD special values
// INF, +INF and -INF. NaN is rejected in every spelling.
func parseFloat(c Class, lexical string, bits int) (float64, error) {
	switch lexical {
	case "INF", "+INF":
		return math.Inf(1), nil
	case "-INF":
		return math.Inf(-1), nil
	}
	// strconv also accepts "inf", "infinity", "nan" and hex floats; none of
	// them are decimal lexical forms.
	if strings.ContainsAny(lexical, "iInNxXpP_") {
		return 0, malformed(c, lexical)
	}
	f, err := strconv.ParseFloat(lexical, bits)
	if err != nil {
		return 0, numError(c, lexical, err)
	}
	if f == 0 && nonZeroMantissa(lexical) {
		return 0, outOfRange(c, lexical)
	}
	return f, nil
}

// nonZeroMantissa reports whether the digits before any exponent include a
// non-zero digit. strconv rounds underflow to zero without an error.
func nonZeroMantissa(lexical string) bool {
	if i := strings.IndexAny(lexical, "eE"); i >= 0 {
		lexical = lexical[:i]
	}
	return strings.ContainsAny(lexical, "123456789")
}

func formatFloat(f float64, bits int) (string, error) {
	switch {
	case math.IsNaN(f):
		return "", fmt.Errorf("%w: NaN is not a permitted value", ErrMalformed)
	case math.IsInf(f, 1):
		return "INF", nil
	case math.IsInf(f, -1):
		return "-INF", nil
	}
	return strconv.FormatFloat(f, 'g', -1, bits), nil
}

func numError(c Class, lexical string, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return outOfRange(c, lexical)
	}
	return malformed(c, lexical)
}

func outOfRange(c Class, lexical string) error {
	return fmt.Errorf("%w: %q for %s", ErrRange, lexical, c)
}

func malformed(c Class, lexical string) error {
	return fmt.Errorf("%w: %q is not a valid %s", ErrMalformed, lexical, c)
}

func wireError(err error) error {
	if errors.Is(err, wire.ErrTruncated) {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return fmt.Errorf("%w: %v", ErrRange, err)
}

func jsonError(err error) error {
	if errors.Is(err, cborjson.ErrRange) {
		return fmt.Errorf("%w: %v", ErrRange, err)
	}
	return fmt.Errorf("%w: %v", ErrMalformed, err)
}
