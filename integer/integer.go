// Package integer encodes integers in a caller-chosen number of bits.
//
// A Schema fixes the width and signedness of a field. The width is not
// written to the stream (except in economical mode, see below), so the
// decoder must be given the same Schema as the encoder.
//
// Values that do not fit the width are truncated to their low bits, the same
// as a conversion between Go integer types. Decoding a signed field sign
// extends it.
//
// Economical mode
//
// A Schema with Bits set to zero stores the smallest width that fits the
// value ahead of the value itself:
//
//	| width-1 (6 bits) | value (width bits) |
//
// so 7 unsigned costs 6+3 bits and -15 signed costs 6+5 bits.
package integer

import (
	"github.com/zeebo/errs"

	"github.com/knokko/bits/address"
	"github.com/knokko/bits/fault"
)

// Error is the class of errors returned by this package.
var Error = errs.Class("integer")

// prefixBits is the size of the width prefix in economical mode.
const prefixBits = 6

// Writer accepts the n low bits of a value.
type Writer interface {
	WriteBits(value uint64, n uint8) (err error)
}

// Reader produces n bits as the low bits of a value.
type Reader interface {
	ReadBits(n uint8) (value uint64, err error)
}

// Schema for an integer.
type Schema struct {
	// Bits is the field width, 1 to 64. Zero selects economical mode.
	Bits uint8

	Signed bool
}

// Fixed width schemas.
var (
	Int8   = Schema{Bits: 8, Signed: true}
	Int16  = Schema{Bits: 16, Signed: true}
	Int32  = Schema{Bits: 32, Signed: true}
	Int64  = Schema{Bits: 64, Signed: true}
	Char   = Schema{Bits: 16}
	Length = Schema{Bits: 32}
)

// Economical returns the self-sizing schema.
func Economical(signed bool) Schema {
	return Schema{Signed: signed}
}

// Validate reports whether the schema describes a usable field.
func (s Schema) Validate() (err error) {
	if s.Bits > 64 {
		return fault.Argument.New("width %d exceeds 64 bits", s.Bits)
	}

	return nil
}

// Size returns the number of bits value occupies under this schema.
func (s Schema) Size(value int64) int {
	if s.Bits != 0 {
		return int(s.Bits)
	}

	return prefixBits + int(s.width(value))
}

func (s Schema) width(value int64) uint8 {
	if s.Signed {
		return address.SignedWidth(value)
	}

	return address.Width(uint64(value))
}

// Encoder is an encoder.
type Encoder struct {
	schema Schema
	w      Writer
}

// NewEncoder returns a new encoder.
func NewEncoder(schema Schema, w Writer) *Encoder {
	return &Encoder{
		schema: schema,
		w:      w,
	}
}

// Encode writes value.
func (e *Encoder) Encode(value int64) (err error) {
	defer Error.WrapP(&err)

	err = e.schema.Validate()
	if err != nil {
		return err
	}

	width := e.schema.Bits
	if width == 0 {
		width = e.schema.width(value)

		err = e.w.WriteBits(uint64(width-1), prefixBits)
		if err != nil {
			return err
		}
	}

	return e.w.WriteBits(address.Truncate(value, width), width)
}

// Decoder is a decoder.
type Decoder struct {
	schema Schema
	r      Reader
}

// NewDecoder returns a new decoder.
func NewDecoder(schema Schema, r Reader) *Decoder {
	return &Decoder{
		schema: schema,
		r:      r,
	}
}

// Decode reads a value.
func (d *Decoder) Decode() (value int64, err error) {
	defer Error.WrapP(&err)

	err = d.schema.Validate()
	if err != nil {
		return 0, err
	}

	width := d.schema.Bits
	if width == 0 {
		prefix, err := d.r.ReadBits(prefixBits)
		if err != nil {
			return 0, err
		}

		width = uint8(prefix) + 1
	}

	raw, err := d.r.ReadBits(width)
	if err != nil {
		return 0, err
	}

	if d.schema.Signed {
		return address.SignExtend(raw, width), nil
	}

	return int64(raw), nil
}
