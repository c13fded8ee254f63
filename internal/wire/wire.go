// Package wire holds the LEB128 primitives shared by the literal codec and the
// instance codec. Writers append to a caller-owned slice; Reader walks a
// single cursor over an immutable buffer.
package wire

import (
	"encoding/binary"
	"errors"
	"math/big"
)

var (
	// ErrTruncated reports a read past the end of the buffer.
	ErrTruncated = errors.New("wire: truncated input")
	// ErrOverflow reports a varint that does not fit the requested width.
	ErrOverflow = errors.New("wire: varint overflows")
)

// AppendUvarint appends x as an unsigned LEB128 varint.
func AppendUvarint(dst []byte, x uint64) []byte { return binary.AppendUvarint(dst, x) }

// AppendVarint appends x as a zig-zag LEB128 varint.
func AppendVarint(dst []byte, x int64) []byte { return binary.AppendVarint(dst, x) }

// AppendBytes appends a varint length followed by b.
func AppendBytes(dst, b []byte) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(b)))
	return append(dst, b...)
}

// AppendString appends a varint byte length followed by s.
func AppendString(dst []byte, s string) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(s)))
	return append(dst, s...)
}

var mask7 = big.NewInt(0x7f)

// AppendBigUvarint appends a non-negative x as an unsigned LEB128 varint of
// arbitrary length. Values that fit in 64 bits produce the same bytes as
// AppendUvarint.
func AppendBigUvarint(dst []byte, x *big.Int) []byte {
	if x.IsUint64() {
		return binary.AppendUvarint(dst, x.Uint64())
	}
	z := new(big.Int).Set(x)
	g := new(big.Int)
	for {
		g.And(z, mask7)
		z.Rsh(z, 7)
		b := byte(g.Uint64())
		if z.Sign() == 0 {
			return append(dst, b)
		}
		dst = append(dst, b|0x80)
	}
}

// AppendBigVarint appends x as a zig-zag LEB128 varint of arbitrary length.
// Values that fit in 64 bits produce the same bytes as AppendVarint.
func AppendBigVarint(dst []byte, x *big.Int) []byte {
	if x.IsInt64() {
		return binary.AppendVarint(dst, x.Int64())
	}
	// n >= 0 -> 2n, n < 0 -> -2n-1
	z := new(big.Int).Lsh(x, 1)
	if x.Sign() < 0 {
		z.Neg(z)
		z.Sub(z, big.NewInt(1))
	}
	return AppendBigUvarint(dst, z)
}

// Reader is a forward-only cursor over an encoded buffer.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader positioned at the start of b.
func NewReader(b []byte) *Reader { return &Reader{buf: b} }

// Offset reports the cursor position.
func (r *Reader) Offset() int { return r.off }

// Len reports the number of unread bytes.
func (r *Reader) Len() int { return len(r.buf) - r.off }

// Uvarint reads an unsigned LEB128 varint.
func (r *Reader) Uvarint() (uint64, error) {
	x, n := binary.Uvarint(r.buf[r.off:])
	switch {
	case n == 0:
		return 0, ErrTruncated
	case n < 0:
		return 0, ErrOverflow
	}
	r.off += n
	return x, nil
}

// Varint reads a zig-zag LEB128 varint.
func (r *Reader) Varint() (int64, error) {
	x, n := binary.Varint(r.buf[r.off:])
	switch {
	case n == 0:
		return 0, ErrTruncated
	case n < 0:
		return 0, ErrOverflow
	}
	r.off += n
	return x, nil
}

// Int reads an unsigned varint that must fit a non-negative int.
func (r *Reader) Int() (int, error) {
	x, err := r.Uvarint()
	if err != nil {
		return 0, err
	}
	if x > uint64(maxInt) {
		return 0, ErrOverflow
	}
	return int(x), nil
}

const maxInt = int(^uint(0) >> 1)

// BigUvarint reads an unsigned LEB128 varint of arbitrary length.
func (r *Reader) BigUvarint() (*big.Int, error) {
	end := r.off
	for end < len(r.buf) && r.buf[end]&0x80 != 0 {
		end++
	}
	if end == len(r.buf) {
		return nil, ErrTruncated
	}
	group := r.buf[r.off : end+1]
	r.off = end + 1
	if len(group) <= 9 {
		var x uint64
		for i := len(group) - 1; i >= 0; i-- {
			x = x<<7 | uint64(group[i]&0x7f)
		}
		return new(big.Int).SetUint64(x), nil
	}
	z := new(big.Int)
	for i := len(group) - 1; i >= 0; i-- {
		z.Lsh(z, 7)
		z.Or(z, big.NewInt(int64(group[i]&0x7f)))
	}
	return z, nil
}

// BigVarint reads a zig-zag LEB128 varint of arbitrary length.
func (r *Reader) BigVarint() (*big.Int, error) {
	z, err := r.BigUvarint()
	if err != nil {
		return nil, err
	}
	odd := z.Bit(0) == 1
	z.Rsh(z, 1)
	if odd {
		// -(z+1) where z is already halved
		z.Add(z, big.NewInt(1))
		z.Neg(z)
	}
	return z, nil
}

// Byte reads a single byte.
func (r *Reader) Byte() (byte, error) {
	if r.off >= len(r.buf) {
		return 0, ErrTruncated
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

// Next returns the next n bytes without copying.
func (r *Reader) Next(n int) ([]byte, error) {
	if n < 0 || n > r.Len() {
		return nil, ErrTruncated
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// Bytes reads a varint length followed by that many bytes.
func (r *Reader) Bytes() ([]byte, error) {
	n, err := r.Uvarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(r.Len()) {
		return nil, ErrTruncated
	}
	return r.Next(int(n))
}
