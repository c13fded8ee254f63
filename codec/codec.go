// Package codec serializes tasl instances to a compact binary buffer and back.
//
// A buffer is the front-coded URI table (see URITableFrontCoded) followed by
// one block per schema label in canonical key order. A block is a varint
// element count followed by the elements, each encoded by walking its type:
// references as varint indices, URIs as varint ranks into the table,
// literals per their datatype, products as their components in key order and
// coproducts as a varint option rank followed by the payload. Identical
// instances always produce identical bytes.
package codec

import (
	"github.com/charmbracelet/log"

	"github.com/reoring/tasl"
)

// Codec encodes and decodes instances under a fixed set of Options. A Codec
// is safe for concurrent use.
type Codec struct {
	opt Options
	log *log.Logger
}

// New returns a Codec configured by opt.
func New(opt Options) *Codec {
	return &Codec{opt: opt, log: opt.logger()}
}

// Options returns the options c was built with.
func (c *Codec) Options() Options { return c.opt }

var std = New(DefaultOptions())

// Encode serializes inst under s with the default options.
func Encode(s *tasl.Schema, inst tasl.Instance) ([]byte, error) { return std.Encode(s, inst) }

// Decode parses data under s with the default options.
func Decode(s *tasl.Schema, data []byte) (tasl.Instance, error) { return std.Decode(s, data) }

// Encode serializes inst under s. Labels absent from inst encode as empty.
func (c *Codec) Encode(s *tasl.Schema, inst tasl.Instance) ([]byte, error) {
	return c.AppendEncode(nil, s, inst)
}

// AppendEncode appends the encoding of inst to dst and returns the extended
// slice. On error dst is not modified and nil is returned.
func (c *Codec) AppendEncode(dst []byte, s *tasl.Schema, inst tasl.Instance) ([]byte, error) {
	// Clip so a failed encode never writes into dst's spare capacity.
	out, err := c.encodeInstance(dst[:len(dst):len(dst)], s, inst)
	if err != nil {
		c.log.Debug("encode failed", "err", err)
		return nil, err
	}
	c.log.Debug("encoded instance", "labels", s.Len(), "values", inst.Count(), "bytes", len(out)-len(dst))
	return out, nil
}

// Decode parses data under s. The buffer must hold exactly one instance.
func (c *Codec) Decode(s *tasl.Schema, data []byte) (tasl.Instance, error) {
	inst, n, err := c.DecodePrefix(s, data)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		err := issueAt(nil, n, tasl.CodeTrailingData, "bytes remain after the last label")
		c.log.Debug("decode failed", "err", err)
		return nil, err
	}
	return inst, nil
}

// DecodePrefix parses one instance from the front of data and returns the
// number of bytes it consumed, leaving any remaining bytes to the caller.
func (c *Codec) DecodePrefix(s *tasl.Schema, data []byte) (tasl.Instance, int, error) {
	inst, n, err := c.decodeInstance(s, data)
	if err != nil {
		c.log.Debug("decode failed", "err", err)
		return nil, 0, err
	}
	c.log.Debug("decoded instance", "labels", s.Len(), "values", inst.Count(), "bytes", n)
	return inst, n, nil
}
